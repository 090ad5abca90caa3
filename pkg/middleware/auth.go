package middleware

import (
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// AuthMode selects how trigger requests carry the shared secret.
type AuthMode string

const (
	// AuthModeBearer expects "Authorization: Bearer <secret>".
	AuthModeBearer AuthMode = "bearer"
	// AuthModeBody expects the raw request body to equal the secret.
	AuthModeBody AuthMode = "body"
)

// MaxSecretBodyBytes caps the request body read in AuthModeBody.
const MaxSecretBodyBytes = 256

// ParseAuthMode maps a configuration value to an AuthMode. Empty means bearer.
func ParseAuthMode(value string) (AuthMode, error) {
	switch AuthMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", AuthModeBearer:
		return AuthModeBearer, nil
	case AuthModeBody:
		return AuthModeBody, nil
	default:
		return "", fmt.Errorf("unknown auth mode %q (want %q or %q)", value, AuthModeBearer, AuthModeBody)
	}
}

// SecretAuthMiddleware returns the guard for the given mode. A process uses
// exactly one mode for all protected routes.
func SecretAuthMiddleware(mode AuthMode, secret string) gin.HandlerFunc {
	if mode == AuthModeBody {
		return BodySecretMiddleware(secret)
	}
	return BearerAuthMiddleware(secret)
}

// BearerAuthMiddleware validates the bearer token against the shared secret.
func BearerAuthMiddleware(secret string) gin.HandlerFunc {
	expected := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization header"})
			return
		}

		scheme, token, ok := strings.Cut(auth, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		c.Next()
	}
}

// BodySecretMiddleware treats the whole request body as the credential.
// Oversized or non-UTF-8 bodies are malformed requests (400); a well-formed
// body that does not match is a wrong credential (401).
func BodySecretMiddleware(secret string) gin.HandlerFunc {
	expected := []byte(secret)
	return func(c *gin.Context) {
		if c.Request.ContentLength > MaxSecretBodyBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxSecretBodyBytes+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		if len(body) > MaxSecretBodyBytes {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request body too large"})
			return
		}
		if !utf8.Valid(body) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request body is not valid UTF-8"})
			return
		}

		if subtle.ConstantTimeCompare(body, expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret."})
			return
		}

		c.Next()
	}
}
