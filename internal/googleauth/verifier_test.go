package googleauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubVerifier(t *testing.T, clientID string, handler http.HandlerFunc) *TokenInfoVerifier {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := NewTokenInfoVerifier(clientID)
	v.endpoint = server.URL
	return v
}

func TestVerify_Success(t *testing.T) {
	v := newStubVerifier(t, "client-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "raw-id-token", r.URL.Query().Get("id_token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"aud": "client-1",
			"sub": "google-sub-1",
			"email": "user@example.com",
			"email_verified": "true",
			"name": "Test User",
			"picture": "https://example.com/avatar.png"
		}`))
	})

	identity, err := v.Verify(context.Background(), "raw-id-token")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", identity.Subject)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.Equal(t, "Test User", identity.Name)
	assert.Equal(t, "https://example.com/avatar.png", identity.AvatarURL)
	assert.True(t, identity.EmailVerified)
}

func TestVerify_RejectedToken(t *testing.T) {
	v := newStubVerifier(t, "client-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := v.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerify_WrongAudience(t *testing.T) {
	v := newStubVerifier(t, "client-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"aud": "someone-else", "sub": "google-sub-1"}`))
	})

	_, err := v.Verify(context.Background(), "raw-id-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerify_EmptyToken(t *testing.T) {
	v := NewTokenInfoVerifier("client-1")

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
