package handlers

import (
	"context"
	"net/http"

	"codeforge/database"
	"codeforge/domain"
	"codeforge/models"
	"codeforge/workspace"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func CreateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &domain.ValidationError{Message: err.Error()})
			return
		}

		ctx := c.Request.Context()
		project, err := db.CreateProject(ctx, ownerID(c), req.Name, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func ListProjects(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projects, err := db.ListProjects(ctx, ownerID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func GetProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		project, err := ownedProject(c.Request.Context(), db, projectID, ownerID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(db *database.DB, sessions *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		ctx := c.Request.Context()
		if _, err := ownedProject(ctx, db, projectID, ownerID(c)); err != nil {
			respondError(c, err)
			return
		}

		if err := db.DeleteProject(ctx, projectID); err != nil {
			respondError(c, err)
			return
		}
		sessions.Close(projectID)

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

// ReplaceFiles stores exactly the submitted file map, in its key order,
// discarding any files not present in it.
func ReplaceFiles(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := projectIDParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		var files models.FileMap
		if err := c.ShouldBindJSON(&files); err != nil {
			respondError(c, &domain.ValidationError{Message: err.Error()})
			return
		}

		ctx := c.Request.Context()
		if _, err := ownedProject(ctx, db, projectID, ownerID(c)); err != nil {
			respondError(c, err)
			return
		}

		if err := db.ReplaceFiles(ctx, projectID, files); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "files saved",
			"count":   files.Len(),
		})
	}
}

// ownedProject fetches a project and hides its existence from anyone
// but the owner.
func ownedProject(ctx context.Context, db *database.DB, projectID uuid.UUID, owner string) (*models.Project, error) {
	project, err := db.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != owner {
		logrus.WithFields(logrus.Fields{
			"project_id": projectID,
			"owner_id":   owner,
		}).Warn("Cross-owner project access denied")
		return nil, &domain.NotFoundError{Message: "project not found"}
	}
	return project, nil
}
