package database

import (
	"context"
	"fmt"

	"codeforge/domain"
	"codeforge/models"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// EnsureAccount creates a credit account with the default allowance the
// first time an owner is seen. Existing accounts are left untouched.
func (db *DB) EnsureAccount(ctx context.Context, ownerID string, allowance int) error {
	query := `
		INSERT INTO credit_accounts (owner_id, allowance)
		VALUES ($1, $2)
		ON CONFLICT (owner_id) DO NOTHING
	`

	result, err := db.Pool.Exec(ctx, query, ownerID, allowance)
	if err != nil {
		return fmt.Errorf("failed to ensure credit account: %w", err)
	}
	if result.RowsAffected() > 0 {
		logrus.WithFields(logrus.Fields{
			"owner_id":  ownerID,
			"allowance": allowance,
		}).Info("Created credit account")
	}
	return nil
}

func (db *DB) GetAccount(ctx context.Context, ownerID string) (*models.CreditAccount, error) {
	query := `
		SELECT owner_id, allowance, consumed, updated_at
		FROM credit_accounts
		WHERE owner_id = $1
	`

	var account models.CreditAccount
	err := db.Pool.QueryRow(ctx, query, ownerID).Scan(
		&account.OwnerID,
		&account.Allowance,
		&account.Consumed,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &domain.NotFoundError{Message: "credit account not found"}
		}
		return nil, fmt.Errorf("failed to get credit account: %w", err)
	}

	return &account, nil
}

// Remaining returns allowance minus consumed for an owner.
func (db *DB) Remaining(ctx context.Context, ownerID string) (int, error) {
	account, err := db.GetAccount(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return account.Remaining(), nil
}

// ReserveAndCommit debits cost credits in a single conditional update.
// The guard `consumed + cost <= allowance` runs inside the UPDATE, so
// concurrent calls for the same owner can never overspend the allowance;
// the CHECK constraint backs this up at the schema level. On failure no
// state changes.
func (db *DB) ReserveAndCommit(ctx context.Context, ownerID string, cost int) error {
	if cost <= 0 {
		return &domain.ValidationError{Message: "credit cost must be positive"}
	}

	query := `
		UPDATE credit_accounts
		SET consumed = consumed + $2, updated_at = NOW()
		WHERE owner_id = $1 AND consumed + $2 <= allowance
	`

	result, err := db.Pool.Exec(ctx, query, ownerID, cost)
	if err != nil {
		return fmt.Errorf("failed to debit credits: %w", err)
	}

	if result.RowsAffected() == 0 {
		account, getErr := db.GetAccount(ctx, ownerID)
		if getErr != nil {
			return getErr
		}
		return &domain.InsufficientCreditsError{
			Required:  cost,
			Remaining: account.Remaining(),
		}
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"cost":     cost,
	}).Info("Debited credits")
	return nil
}

// AddCredits raises an owner's allowance, e.g. after a plan upgrade
// handled by the billing collaborator.
func (db *DB) AddCredits(ctx context.Context, ownerID string, amount int) error {
	if amount <= 0 {
		return &domain.ValidationError{Message: "credit amount must be positive"}
	}

	query := `
		UPDATE credit_accounts
		SET allowance = allowance + $2, updated_at = NOW()
		WHERE owner_id = $1
	`

	result, err := db.Pool.Exec(ctx, query, ownerID, amount)
	if err != nil {
		return fmt.Errorf("failed to add credits: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "credit account not found"}
	}

	return nil
}
