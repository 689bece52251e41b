package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alimgiray/kickfarter/pkg/config"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie  = "session"
	sessionKey     = "session"
	sessionTimeout = 24 * time.Hour
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionMiddleware loads the session cookie into the context and slides its
// expiry forward on every successful response
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData := getSessionFromCookie(c)
		c.Set(sessionKey, sessionData)

		if sessionData == nil {
			c.Next()
			return
		}

		writer := &sessionWriter{
			ResponseWriter: c.Writer,
			refresh: func() {
				// login and logout replace the session; leave their cookie alone
				if GetSession(c) != sessionData {
					return
				}
				extended := *sessionData
				extended.ExpiresAt = time.Now().Add(sessionTimeout)
				if err := writeSessionCookie(c, &extended); err != nil {
					c.Error(err)
				}
			},
		}
		c.Writer = writer

		c.Next()

		writer.beforeWrite()
		c.Writer = writer.ResponseWriter
	}
}

// sessionWriter re-issues the session cookie right before the response
// headers go out, unless the response is an error
type sessionWriter struct {
	gin.ResponseWriter
	refresh func()
	checked bool
}

func (w *sessionWriter) beforeWrite() {
	if w.checked || w.Written() {
		return
	}
	w.checked = true
	if w.Status() < http.StatusBadRequest {
		w.refresh()
	}
}

func (w *sessionWriter) Write(data []byte) (int, error) {
	w.beforeWrite()
	return w.ResponseWriter.Write(data)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.beforeWrite()
	return w.ResponseWriter.WriteString(s)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.beforeWrite()
	w.ResponseWriter.WriteHeaderNow()
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}

	// Split cookie value (signature.data)
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	if !verifySignature(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// SetSession creates a new session cookie for a logged in user
func SetSession(c *gin.Context, userID, email, name string, isAdmin bool) error {
	sessionData := &SessionData{
		UserID:    userID,
		Email:     email,
		Name:      name,
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(sessionTimeout),
	}

	if err := writeSessionCookie(c, sessionData); err != nil {
		return err
	}

	c.Set(sessionKey, sessionData)
	return nil
}

func writeSessionCookie(c *gin.Context, sessionData *SessionData) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	signature := createSignature(encodedData)

	c.SetCookie(sessionCookie, signature+"."+encodedData, int(sessionTimeout.Seconds()), "/", "", false, true)
	return nil
}

// ClearSession removes the session cookie
func ClearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Set(sessionKey, (*SessionData)(nil))
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}
