package middleware

import (
	"net/http"
	"strings"

	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const actorContextKey = "actor"

// AuthMiddleware verifies the bearer token and resolves the stored user
// behind it into the request's actor. The lookup happens per request so
// admin deactivation takes effect immediately rather than at token
// expiry.
func AuthMiddleware(jwtSecret string, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveActor(c, jwtSecret, users)
		if !ok {
			c.Abort()
			return
		}

		c.Set("user_id", actor.ID)
		c.Set("role", string(actor.Role))
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves an actor when a token is present but
// lets anonymous requests through. Used on the SOS create path, which
// must work for someone without an account.
func OptionalAuthMiddleware(jwtSecret string, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractToken(c) == "" {
			c.Next()
			return
		}

		actor, ok := resolveActor(c, jwtSecret, users)
		if !ok {
			c.Abort()
			return
		}

		c.Set("user_id", actor.ID)
		c.Set("role", string(actor.Role))
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func resolveActor(c *gin.Context, jwtSecret string, users *services.UserService) (*services.Actor, bool) {
	token := extractToken(c)
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization token")
		return nil, false
	}

	claims, err := utils.ValidateToken(token, jwtSecret)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrMsgInvalidToken)
		return nil, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrMsgInvalidToken)
		return nil, false
	}

	actor, err := users.ResolveActor(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return nil, false
	}

	return actor, true
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Websocket clients cannot set headers from the browser; they pass
	// the token as a query parameter instead.
	return c.Query("token")
}

// GetActor pulls the resolved actor off the gin context. Nil when the
// request came in anonymously through the optional middleware.
func GetActor(c *gin.Context) *services.Actor {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*services.Actor)
	if !ok {
		return nil
	}
	return actor
}
