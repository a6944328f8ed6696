package handlers

import (
	"errors"
	"net/http"

	"codeforge/domain"
	"codeforge/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError maps domain errors to their HTTP status; anything else
// is a 500 with a generic body so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode(), gin.H{"error": httpErr.Error()})
		return
	}

	logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func ownerID(c *gin.Context) string {
	return c.GetString(middleware.OwnerIDKey)
}

func projectIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Message: "invalid project ID"}
	}
	return id, nil
}
