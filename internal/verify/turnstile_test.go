package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyUnconfiguredPasses(t *testing.T) {
	ts := NewTurnstile("")
	assert.False(t, ts.Enabled())
	assert.True(t, ts.Verify(context.Background(), "anything", ""))
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"success verdict", `{"success": true}`, true},
		{"failure verdict", `{"success": false}`, false},
		{"garbage body", `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "sekrit", r.Form.Get("secret"))
				assert.Equal(t, "tok", r.Form.Get("response"))
				assert.Equal(t, "203.0.113.9", r.Form.Get("remoteip"))
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			ts := NewTurnstile("sekrit")
			ts.verifyURL = server.URL
			assert.Equal(t, tt.want, ts.Verify(context.Background(), "tok", "203.0.113.9"))
		})
	}
}

func TestVerifyUpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	ts := NewTurnstile("sekrit")
	ts.verifyURL = server.URL
	assert.False(t, ts.Verify(context.Background(), "tok", ""))
}
