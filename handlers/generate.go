package handlers

import (
	"net/http"

	"codeforge/config"
	"codeforge/database"
	"codeforge/domain"
	"codeforge/models"
	"codeforge/workspace"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultModel is used when a generation request names no tier,
// matching the workspace's default selection.
const DefaultModel = "grok-4-1-fast-reasoning"

// ListModels is public: the model tier catalog with per-tier credit
// costs.
func ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": models.ModelTiers})
}

// Generate runs one prompt-to-code session round trip for the caller's
// project.
func Generate(db *database.DB, sessions *workspace.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &domain.ValidationError{Message: err.Error()})
			return
		}
		if req.Model == "" {
			req.Model = DefaultModel
		}

		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			respondError(c, &domain.ValidationError{Message: "invalid project ID"})
			return
		}

		ctx := c.Request.Context()
		owner := ownerID(c)
		if _, err := ownedProject(ctx, db, projectID, owner); err != nil {
			respondError(c, err)
			return
		}
		if err := db.EnsureAccount(ctx, owner, cfg.DefaultAllowance); err != nil {
			respondError(c, err)
			return
		}

		resp, err := sessions.Session(projectID).Submit(ctx, owner, req.Prompt, req.Model)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// Conversation returns the project's session history; an unopened
// workspace has an empty one.
func Conversation(db *database.DB, sessions *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if _, err := ownedProject(c.Request.Context(), db, projectID, ownerID(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"messages": sessions.Conversation(projectID)})
	}
}

// CloseSession discards the project's workspace session and its
// conversation history.
func CloseSession(db *database.DB, sessions *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if _, err := ownedProject(c.Request.Context(), db, projectID, ownerID(c)); err != nil {
			respondError(c, err)
			return
		}

		sessions.Close(projectID)
		c.JSON(http.StatusOK, gin.H{"message": "session closed"})
	}
}

// Credits reports the caller's allowance, consumption and remainder.
func Credits(db *database.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner := ownerID(c)

		if err := db.EnsureAccount(ctx, owner, cfg.DefaultAllowance); err != nil {
			respondError(c, err)
			return
		}

		account, err := db.GetAccount(ctx, owner)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.CreditsResponse{
			Allowance: account.Allowance,
			Consumed:  account.Consumed,
			Remaining: account.Remaining(),
		})
	}
}
