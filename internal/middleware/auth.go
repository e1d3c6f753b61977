package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	"github.com/BruksfildServices01/barber-backoffice/internal/config"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/logger"
)

const (
	ContextProfileID      = "profileID"
	ContextOrganizationID = "organizationID"
	ContextUserRole       = "userRole"
)

// AuthMiddleware verifies the bearer token, then resolves the caller's current
// role and activation from sessions. Claims other than identity are ignored.
func AuthMiddleware(cfg *config.Config, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		profileID, ok1 := claims["sub"].(float64)
		organizationID, ok2 := claims["organizationId"].(float64)
		if !ok1 || !ok2 || profileID <= 0 || organizationID <= 0 {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Request = c.Request.WithContext(
			logger.WithActor(c.Request.Context(), uint(organizationID), uint(profileID)),
		)

		session, err := sessions.Lookup(c.Request.Context(), uint(organizationID), uint(profileID))
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			abortUnauthorized(c, "invalid_token_payload")
			return
		case err != nil:
			httperr.FromError(c, err)
			c.Abort()
			return
		case !session.IsActive:
			httperr.FromError(c, httperr.ErrBusiness("account_inactive"))
			c.Abort()
			return
		}

		c.Set(ContextProfileID, uint(profileID))
		c.Set(ContextOrganizationID, uint(organizationID))
		c.Set(ContextUserRole, session.Role)

		c.Next()
	}
}

// RequireAdmin blocks non-admin actors. Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Actor(c).IsAdmin() {
			httperr.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor reads the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) authz.Actor {
	return authz.Actor{
		OrganizationID: c.GetUint(ContextOrganizationID),
		ProfileID:      c.GetUint(ContextProfileID),
		Role:           c.GetString(ContextUserRole),
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Sessão inválida. Faça login novamente.")
	c.Abort()
}
