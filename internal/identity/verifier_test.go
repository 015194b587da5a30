package identity

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newVerifier(t *testing.T, baseURL string) *HTTPVerifier {
	t.Helper()
	v, err := NewHTTPVerifier(baseURL, "provider-key", 2*time.Second, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return v
}

func TestVerify_Success(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		require.Equal(t, "provider-key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-42","email":"u@example.com"}`))
	}))
	defer provider.Close()

	subject, err := newVerifier(t, provider.URL).Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "user-42", subject)
}

func TestVerify_FailuresCollapseToUnauthorized(t *testing.T) {
	validToken := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer rejecting.Close()

	unreachable := httptest.NewServer(nil)
	unreachable.Close() // closed on purpose

	tests := []struct {
		name    string
		baseURL string
		token   string
	}{
		{"empty token", rejecting.URL, ""},
		{"malformed token", rejecting.URL, "not-a-jwt"},
		{"expired token", rejecting.URL, expiredToken},
		{"provider rejects", rejecting.URL, validToken},
		{"provider unreachable", unreachable.URL, validToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newVerifier(t, tt.baseURL).Verify(context.Background(), tt.token)
			require.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestVerify_EmptySubjectRejected(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":""}`))
	}))
	defer provider.Close()

	_, err := newVerifier(t, provider.URL).Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

// Expired-before-network is observable: the provider must never be called.
func TestVerify_ExpiredSkipsProvider(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	called := false
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"id":"user-42"}`))
	}))
	defer provider.Close()

	_, err := newVerifier(t, provider.URL).Verify(context.Background(), expired)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, called)
}

func FuzzPrecheck(f *testing.F) {
	f.Add("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1In0.sig")
	f.Add("..")
	f.Add("")
	f.Add("a.b")

	v, err := NewHTTPVerifier("http://localhost:0", "", time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		// Must never panic, whatever the input.
		_ = v.precheck(raw)
	})
}
