package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	router := newTestRouter(t)
	hook := test.NewLocal(logger.GetLogger())
	t.Cleanup(hook.Reset)

	router.Use(RequestLogger())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	tests := []struct {
		path   string
		status int
		level  logrus.Level
	}{
		{path: "/ok", status: http.StatusOK, level: logrus.InfoLevel},
		{path: "/missing", status: http.StatusNotFound, level: logrus.WarnLevel},
		{path: "/boom", status: http.StatusInternalServerError, level: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: encodeSession(testSession())})
			router.ServeHTTP(httptest.NewRecorder(), req)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.path, entry.Data["path"])
			assert.Equal(t, tt.status, entry.Data["status"])
			assert.Equal(t, "test-user", entry.Data["user_id"])
		})
	}
}
