package handlers

import (
	"context"
	"net/http"

	"codeforge/database"
	"codeforge/domain"
	"codeforge/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Publisher is the external deployment service.
type Publisher interface {
	Deploy(ctx context.Context, projectID uuid.UUID) (string, error)
}

// Deploy publishes a project. Idempotent: redeploying overwrites the
// recorded URL and keeps status deployed. On failure the project record
// is left untouched and the error is surfaced, never retried here.
func Deploy(db *database.DB, publisher Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		ctx := c.Request.Context()
		project, err := ownedProject(ctx, db, projectID, ownerID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if project.Files.Len() == 0 {
			respondError(c, &domain.ValidationError{Message: "project has no files to deploy"})
			return
		}

		deployedURL, err := publisher.Deploy(ctx, projectID)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := db.SetDeployed(ctx, projectID, deployedURL); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"deployed_url": deployedURL,
			"status":       models.StatusDeployed,
		})
	}
}
