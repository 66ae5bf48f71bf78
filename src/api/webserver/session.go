package webserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "df_session"

	ctxUserID = "userID"
	ctxJTI    = "jti"
)

// SessionStore is the liveness record behind issued tokens; a token is
// only honoured while its jti is present. Backed by Redis in production.
type SessionStore interface {
	Put(ctx context.Context, jti string, userID uint64, ttl time.Duration) error
	Get(ctx context.Context, jti string) (uint64, error)
	Delete(ctx context.Context, jti string) error
}

func issueJWT(userID uint64, secret []byte, ttl time.Duration) (token, jti string, err error) {
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return token, jti, err
}

// SessionMiddleware resolves the principal from the session cookie or a
// bearer token and short-circuits with 401 before any handler runs.
func SessionMiddleware(secret []byte, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			tokenStr, _ = c.Cookie(sessionCookie)
		}
		if tokenStr == "" {
			abortUnauthorized(c)
			return
		}

		tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !tok.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}
		jti, _ := claims["jti"].(string)
		if jti == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := sessions.Get(c.Request.Context(), jti)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxJTI, jti)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return h[7:]
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
}

func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(uint64)
	return id
}
