package models

import "time"

// CreditAccount meters one owner's generation allowance. Invariant:
// 0 <= Consumed <= Allowance, enforced by the storage layer.
type CreditAccount struct {
	OwnerID   string    `json:"owner_id"`
	Allowance int       `json:"allowance"`
	Consumed  int       `json:"consumed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Remaining returns the credits still available to spend.
func (a CreditAccount) Remaining() int {
	return a.Allowance - a.Consumed
}

// CreditsResponse is the payload for GET /api/credits.
type CreditsResponse struct {
	Allowance int `json:"allowance"`
	Consumed  int `json:"consumed"`
	Remaining int `json:"remaining"`
}
