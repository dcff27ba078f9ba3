package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeURLCarriesPKCEParams(t *testing.T) {
	client := NewClient("client-id", "http://localhost:5000/callback", 0)

	raw := client.AuthorizeURL("state123", "challenge456")
	parsed, err := url.Parse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "/authorize", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state123", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "challenge456", q.Get("code_challenge"))
	assert.Equal(t, AuthorizeScope, q.Get("scope"))
}

func TestExchangeCodePostsFormAndReturnsBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "the-verifier", r.PostForm.Get("code_verifier"))
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "at",
			"refresh_token": "rt",
		})
	}))
	defer upstream.Close()

	client := NewClient("client-id", "http://localhost:5000/callback", time.Second)
	client.AccountsURL = upstream.URL

	body, err := client.ExchangeCode(context.Background(), "the-code", "the-verifier")
	assert.NoError(t, err)

	var tokens map[string]string
	assert.NoError(t, json.Unmarshal(body, &tokens))
	assert.Equal(t, "at", tokens["access_token"])
	assert.Equal(t, "rt", tokens["refresh_token"])
}

func TestExchangeCodeRejectionIsExchangeError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer upstream.Close()

	client := NewClient("client-id", "redirect", time.Second)
	client.AccountsURL = upstream.URL

	_, err := client.ExchangeCode(context.Background(), "bad", "bad")
	assert.ErrorIs(t, err, ErrUpstreamExchange)
}

func TestRefreshPostsRefreshGrant(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "old-token", r.PostForm.Get("refresh_token"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh"})
	}))
	defer upstream.Close()

	client := NewClient("client-id", "redirect", time.Second)
	client.AccountsURL = upstream.URL

	body, err := client.Refresh(context.Background(), "old-token")
	assert.NoError(t, err)
	assert.Contains(t, string(body), "fresh")
}

func TestGetForwardsAuthorizationAndStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "beatles", r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer upstream.Close()

	client := NewClient("client-id", "redirect", time.Second)
	client.APIURL = upstream.URL

	status, body, err := client.Get(context.Background(), "/v1/search",
		url.Values{"q": {"beatles"}}, "Bearer token-abc")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, string(body), "rate limited")
}

func TestTimeoutSurfacesAsUpstreamTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer upstream.Close()

	client := NewClient("client-id", "redirect", 20*time.Millisecond)
	client.APIURL = upstream.URL

	_, _, err := client.Get(context.Background(), "/v1/me", nil, "Bearer t")
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
}
