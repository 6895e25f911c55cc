package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:80", "198.51.100.4"},
		{"bad forwarded falls through", map[string]string{"X-Forwarded-For": "nonsense"}, "192.0.2.9:1234", "192.0.2.9"},
		{"remote addr", nil, "192.0.2.9:1234", "192.0.2.9"},
		{"unparseable remote", nil, "???", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c.Request = req

			assert.Equal(t, tt.want, ExtractClientIP(c))
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("192.168.1.1"))
	assert.True(t, IsPrivateIP("::1"))
	assert.False(t, IsPrivateIP("8.8.8.8"))
	assert.False(t, IsPrivateIP("not-an-ip"))
}
