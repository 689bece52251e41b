package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/kickfarter/pkg/config"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, config.Load())
	logger.SetOutput(io.Discard)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	return router
}

func encodeSession(sessionData SessionData) string {
	data, _ := json.Marshal(sessionData)
	encodedData := base64.URLEncoding.EncodeToString(data)
	return createSignature(encodedData) + "." + encodedData
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	return nil
}

func decodeSession(t *testing.T, value string) SessionData {
	t.Helper()
	parts := strings.Split(value, ".")
	require.Len(t, parts, 2, "Cookie should have signature and data parts")
	assert.True(t, verifySignature(parts[1], parts[0]), "Cookie signature should be valid")

	decodedData, err := base64.URLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var sessionData SessionData
	require.NoError(t, json.Unmarshal(decodedData, &sessionData))
	return sessionData
}

func testSession() SessionData {
	return SessionData{
		UserID:    "test-user",
		Email:     "test@example.com",
		Name:      "Tess",
		IsAdmin:   true,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
}

func TestSessionExtension(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/test", func(c *gin.Context) {
		session := GetSession(c)
		require.NotNil(t, session)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})

	sessionData := testSession()
	cookieValue := encodeSession(sessionData)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookieValue})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-user")

	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie, "Session cookie should be re-issued")
	assert.NotEqual(t, cookieValue, cookie.Value)

	extended := decodeSession(t, cookie.Value)
	assert.Equal(t, sessionData.UserID, extended.UserID)
	assert.Equal(t, sessionData.Email, extended.Email)
	assert.Equal(t, sessionData.Name, extended.Name)
	assert.True(t, extended.IsAdmin)
	assert.True(t, extended.ExpiresAt.After(time.Now().Add(23*time.Hour)), "Session expiry should be extended")
}

func TestSessionExtensionOnError(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "test error"})
	})

	req, _ := http.NewRequest("GET", "/error", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: encodeSession(testSession())})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"), "Set-Cookie header should not be present on error responses")
}

func TestSessionExtensionWithoutBody(t *testing.T) {
	router := newTestRouter(t)
	router.POST("/touch", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest("POST", "/touch", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: encodeSession(testSession())})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotNil(t, sessionCookieFrom(t, w))
}

func TestSessionExtensionWithoutSession(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/test", func(c *gin.Context) {
		assert.Nil(t, GetSession(c))
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"), "Set-Cookie header should not be present when no session exists")
}

func TestRejectedSessions(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/test", func(c *gin.Context) {
		if GetSession(c) != nil {
			c.String(http.StatusOK, "in")
			return
		}
		c.String(http.StatusOK, "out")
	})

	expired := testSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	valid := encodeSession(testSession())
	parts := strings.Split(valid, ".")
	forged := SessionData{UserID: "intruder", ExpiresAt: time.Now().Add(time.Hour)}
	forgedData, _ := json.Marshal(forged)

	tests := []struct {
		name  string
		value string
	}{
		{name: "expired", value: encodeSession(expired)},
		{name: "tampered data", value: parts[0] + "." + base64.URLEncoding.EncodeToString(forgedData)},
		{name: "no signature", value: parts[1]},
		{name: "garbage", value: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tt.value})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, "out", w.Body.String())
			assert.Nil(t, sessionCookieFrom(t, w))
		})
	}
}

func TestLogoutIsNotUndone(t *testing.T) {
	router := newTestRouter(t)
	router.POST("/logout", func(c *gin.Context) {
		ClearSession(c)
		c.JSON(http.StatusOK, gin.H{"message": "bye"})
	})

	req, _ := http.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: encodeSession(testSession())})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], "Max-Age=0")
}

func TestSetSession(t *testing.T) {
	router := newTestRouter(t)
	router.POST("/login", func(c *gin.Context) {
		require.NoError(t, SetSession(c, "user-1", "user@example.com", "User", false))
		assert.Equal(t, "user-1", GetSession(c).UserID)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBufferString(""))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookie := sessionCookieFrom(t, w)
	require.NotNil(t, cookie)
	sessionData := decodeSession(t, cookie.Value)
	assert.Equal(t, "user@example.com", sessionData.Email)
	assert.False(t, sessionData.IsAdmin)
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})

	t.Run("anonymous", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/private", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logged in", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/private", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: encodeSession(testSession())})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "secret", w.Body.String())
	})
}
