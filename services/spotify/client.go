package spotify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"

	// Scopes the web player client needs; kept in sync with the frontend.
	AuthorizeScope = "streaming user-read-email user-read-private user-read-playback-state user-modify-playback-state"
)

var (
	// ErrUpstreamExchange means Spotify rejected a token exchange or refresh.
	ErrUpstreamExchange = errors.New("upstream token exchange failed")
	// ErrUpstreamTimeout means an upstream call exceeded the client timeout.
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)

// Client talks to the Spotify accounts service and Web API. It is
// stateless: every call carries its own credentials, nothing is cached
// and nothing is retried.
type Client struct {
	ClientID    string
	RedirectURL string
	AccountsURL string
	APIURL      string

	httpClient *http.Client
}

func NewClient(clientID, redirectURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		ClientID:    clientID,
		RedirectURL: redirectURL,
		AccountsURL: defaultAccountsURL,
		APIURL:      defaultAPIURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// AuthorizeURL builds the external authorization redirect target with the
// state and PKCE challenge embedded.
func (c *Client) AuthorizeURL(state, challenge string) string {
	params := url.Values{
		"response_type":         {"code"},
		"client_id":             {c.ClientID},
		"scope":                 {AuthorizeScope},
		"redirect_uri":          {c.RedirectURL},
		"state":                 {state},
		"code_challenge_method": {"S256"},
		"code_challenge":        {challenge},
	}
	return c.AccountsURL + "/authorize?" + params.Encode()
}

// ExchangeCode swaps an authorization code plus its PKCE verifier for a
// token pair. The returned body is Spotify's JSON, passed through verbatim.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) ([]byte, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.RedirectURL},
		"client_id":     {c.ClientID},
		"code_verifier": {verifier},
	}
	return c.postToken(ctx, form)
}

// Refresh trades a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) ([]byte, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.ClientID},
	}
	return c.postToken(ctx, form)
}

func (c *Client) postToken(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.AccountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUpstreamExchange
	}
	return body, nil
}

// Get forwards a GET to the Web API with the caller's Authorization header
// and returns the upstream status and body untouched.
func (c *Client) Get(ctx context.Context, path string, query url.Values, authorization string) (int, []byte, error) {
	target := c.APIURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func wrapTransportError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrUpstreamTimeout
	}
	return err
}
