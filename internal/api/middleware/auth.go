package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthContextKey = "subject"
	BearerPrefix   = "Bearer "
)

// TokenValidator is the part of the token service the request gate needs
type TokenValidator interface {
	Validate(token string) bool
	SubjectOf(token string) string
}

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying the authenticated subject
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the authenticated subject stored in ctx
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}

// Authenticate attaches the token subject to the request when the
// Authorization header carries a valid bearer token. Requests without one
// continue unauthenticated; RequireIdentity decides whether they may pass.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader(AuthHeaderKey), BearerPrefix)
		if ok && token != "" && tokens.Validate(token) {
			if subject := tokens.SubjectOf(token); subject != "" {
				c.Set(AuthContextKey, subject)
				c.Request = c.Request.WithContext(WithSubject(c.Request.Context(), subject))
			}
		}

		c.Next()
	}
}

// RequireIdentity rejects requests without an authenticated subject unless
// their path starts with one of publicPrefixes.
func RequireIdentity(publicPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if _, ok := GetSubject(c); !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Full authentication is required to access this resource",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSubject retrieves the authenticated subject from the gin context
func GetSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(AuthContextKey)
	return subject, subject != ""
}
