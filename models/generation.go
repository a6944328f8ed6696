package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ModelTier is a named generation-service configuration with an
// associated credit cost.
type ModelTier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
}

// ModelTiers is the catalog of selectable tiers, cheapest last. The
// frontend renders this list verbatim from GET /api/ai/models.
var ModelTiers = []ModelTier{
	{
		ID:          "grok-4-latest",
		Name:        "Grok 4 (Frontier)",
		Description: "Deep reasoning",
		Credits:     3,
	},
	{
		ID:          "grok-4-1-fast-reasoning",
		Name:        "Grok 4 Fast Reasoning",
		Description: "Agentic workflows",
		Credits:     2,
	},
	{
		ID:          "grok-4-1-fast-non-reasoning",
		Name:        "Grok 4 Fast",
		Description: "High-throughput",
		Credits:     1,
	},
}

// TierByID looks up a model tier by its identifier.
func TierByID(id string) (ModelTier, bool) {
	for _, tier := range ModelTiers {
		if tier.ID == id {
			return tier, true
		}
	}
	return ModelTier{}, false
}

// TaskCodeGeneration is the only task classification the workspace
// currently submits.
const TaskCodeGeneration = "code_generation"

// GenerateRequest is one prompt-to-code request. Ephemeral: it exists
// only for the duration of a single session submission.
type GenerateRequest struct {
	ProjectID string `json:"project_id"`
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	TaskType  string `json:"task_type"`
}

// Validate rejects blank prompts and missing fields before any log or
// ledger mutation happens.
func (r GenerateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.Prompt, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Model, validation.Required),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// GenerateResponse is returned to the client after a completed
// generation round trip.
type GenerateResponse struct {
	Response    string `json:"response"`
	ModelUsed   string `json:"model_used"`
	CreditsUsed int    `json:"credits_used"`
	File        string `json:"file"`
}
