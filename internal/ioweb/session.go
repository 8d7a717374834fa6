package ioweb

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	cookieName = "gndash_session"
	sessionKey = "session_id"
)

// tokens signs and verifies session cookies. The subject of a token is
// the session ID.
type tokens struct {
	secret []byte
	ttl    time.Duration
}

func newTokens(secret string, ttl time.Duration) *tokens {
	key := []byte(secret)
	if secret == "" {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
		slog.Warn("Session secret is not set, sessions will not survive a restart")
	}
	return &tokens{secret: key, ttl: ttl}
}

func (t *tokens) issue(sessionID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	res, err := token.SignedString(t.secret)
	if err != nil {
		return "", TokenError(err)
	}
	return res, nil
}

func (t *tokens) parse(s string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(s, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", TokenError(err)
	}
	if _, err = uuid.Parse(claims.Subject); err != nil {
		return "", TokenError(err)
	}
	return claims.Subject, nil
}

// session attaches a session ID to every request. A missing or invalid
// cookie starts a new session. The cookie is renewed on every request.
func (s *Server) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if cookie, err := c.Cookie(cookieName); err == nil {
			id, err = s.tokens.parse(cookie)
			if err != nil {
				slog.Debug("Invalid session cookie", "error", err)
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		token, err := s.tokens.issue(id, time.Now())
		if err != nil {
			failErr(c, err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, token, int(s.tokens.ttl.Seconds()),
			"/", "", false, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
