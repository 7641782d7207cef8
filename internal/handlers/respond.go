package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/apperr"
	"github.com/soumya813/SwaadGharKa/internal/middleware"
)

// respondError is the single place application errors become HTTP responses.
// Clients always get a message and a machine-checkable kind; internals stay
// in the server log.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		actorID := uint(0)
		if actor, ok := middleware.GetActor(c); ok {
			actorID = actor.ID
		}
		log.Printf("ERROR %s %s actor=%d at=%s: %v", c.Request.Method, c.FullPath(), actorID, time.Now().Format(time.RFC3339), err)
	}

	body := gin.H{
		"success": false,
		"message": apperr.MessageOf(err),
		"code":    apperr.KindOf(err),
	}
	if retryAfter := apperr.RetryAfterOf(err); retryAfter > 0 {
		body["retry_after"] = retryAfter
	}
	c.JSON(status, body)
}
