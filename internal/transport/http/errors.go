package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub/internal/client"
	"learnhub/internal/editor"
)

// writeError maps the editor/client error taxonomy onto HTTP. Backend
// failures surface the server's own message when it sent one.
func writeError(c *gin.Context, err error) {
	var be *client.BackendError
	switch {
	case errors.Is(err, editor.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, editor.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, editor.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"error": "This action is destructive and needs confirmation", "confirm_required": true})
	case errors.Is(err, editor.ErrSessionClosed):
		c.JSON(http.StatusGone, gin.H{"error": "Editing session is closed"})
	case errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrSectionNotFound),
		errors.Is(err, editor.ErrLessonNotFound),
		errors.Is(err, editor.ErrNoDraft):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, client.ErrNoToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.Is(err, client.ErrBadResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Backend returned an unexpected response", "code": "bad_backend_response"})
	case errors.As(err, &be):
		msg := be.Message
		if msg == "" {
			msg = "Something went wrong, please try again"
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func identityFrom(c *gin.Context) editor.Identity {
	return editor.Identity{
		UserID: c.GetString("userId"),
		Token:  c.GetString("accessToken"),
	}
}
