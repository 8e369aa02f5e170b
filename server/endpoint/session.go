package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/shellkit/session"
)

// Session returns a handler that reports the current auth session state.
// The response never carries token material, only derived state: whether
// the provider is active, whether a user is signed in, and claim
// metadata for the current token when one is present.
func Session(svc *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"auth_active":   session.IsAuthActive(),
			"authenticated": svc.Authenticated(),
			"subscribers":   svc.Subscribers(),
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		}

		claims, err := svc.CurrentClaims()
		if err == nil && claims != nil {
			body["claims"] = gin.H{
				"subject":    claims.Subject,
				"issuer":     claims.Issuer,
				"expires_at": claims.ExpiresAt.UTC().Format(time.RFC3339),
				"expired":    claims.Expired(time.Now()),
			}
		}

		c.JSON(http.StatusOK, body)
	}
}
