package linkedin

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"socialcatalyst/apperrors"
	"socialcatalyst/clients"
)

const (
	defaultOAuthBaseURL = "https://www.linkedin.com"
	defaultAPIBaseURL   = "https://api.linkedin.com"

	restliProtocolVersion = "2.0.0"
	userAgent             = "SocialCatalyst/1.0"
)

// Fixed scope set requested on every authorization: identity + posting.
var oauthScopes = []string{"openid", "profile", "w_member_social", "email"}

// LinkedInClient implements the clients.LinkedInClient interface.
//
// Calls to the LinkedIn REST API go through an ordered transport fallback
// chain: a strict primary client first, then a client with relaxed TLS
// verification for environments with intercepting proxies. The first
// transport to complete a request wins; the chain only advances on
// transport-level failures, never on HTTP error statuses.
type LinkedInClient struct {
	clientID     string
	clientSecret string
	redirectURI  string

	oauthBaseURL string
	apiBaseURL   string

	// tokenClient performs OAuth token endpoint calls. Token exchange is
	// fatal on any failure, so it gets no fallback chain.
	tokenClient *http.Client
	transports  []*http.Client
}

// NewLinkedInClient creates a new LinkedIn client with the provided app configuration
func NewLinkedInClient(clientID, clientSecret, redirectURI string) clients.LinkedInClient {
	primary := &http.Client{Timeout: 30 * time.Second}
	relaxed := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			// Some corporate networks re-sign TLS; the last-resort transport
			// tolerates that instead of shelling out to an external process.
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		},
	}

	return &LinkedInClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		oauthBaseURL: defaultOAuthBaseURL,
		apiBaseURL:   defaultAPIBaseURL,
		tokenClient:  primary,
		transports:   []*http.Client{primary, relaxed},
	}
}

// newClientWithTransports builds a client with an explicit transport chain.
// Used by tests to exercise the fallback behaviour.
func newClientWithTransports(clientID, clientSecret, redirectURI string, transports []*http.Client) *LinkedInClient {
	return &LinkedInClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		oauthBaseURL: defaultOAuthBaseURL,
		apiBaseURL:   defaultAPIBaseURL,
		tokenClient:  transports[0],
		transports:   transports,
	}
}

// AuthorizationURL builds the provider authorization URL embedding the given
// state token and the fixed scope set.
func (c *LinkedInClient) AuthorizationURL(state string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {c.clientID},
		"redirect_uri":  {c.redirectURI},
		"state":         {state},
		"scope":         {strings.Join(oauthScopes, " ")},
	}
	return c.oauthBaseURL + "/oauth/v2/authorization?" + params.Encode()
}

// ExchangeCodeForTokens exchanges an OAuth authorization code for tokens.
// There is no transport fallback here: a failed exchange is fatal for the
// attempt and the caller restarts the whole flow.
func (c *LinkedInClient) ExchangeCodeForTokens(
	ctx context.Context,
	code string,
) (*clients.LinkedInTokenResponse, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	return c.postTokenRequest(ctx, data)
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *LinkedInClient) RefreshAccessToken(
	ctx context.Context,
	refreshToken string,
) (*clients.LinkedInTokenResponse, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	return c.postTokenRequest(ctx, data)
}

func (c *LinkedInClient) postTokenRequest(
	ctx context.Context,
	data url.Values,
) (*clients.LinkedInTokenResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		c.oauthBaseURL+"/oauth/v2/accessToken",
		bytes.NewBufferString(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.tokenClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &clients.ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp clients.LinkedInTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("no access token in response")
	}

	return &tokenResp, nil
}

// GetUserInfo resolves the external profile identity for an access token.
func (c *LinkedInClient) GetUserInfo(
	ctx context.Context,
	accessToken string,
) (*clients.LinkedInUserInfo, error) {
	headers := map[string]string{
		"Authorization":             "Bearer " + accessToken,
		"X-Restli-Protocol-Version": restliProtocolVersion,
		"Accept":                    "application/json",
		"User-Agent":                userAgent,
	}

	body, statusCode, err := c.doWithFallback(ctx, "GET", c.apiBaseURL+"/v2/userinfo", headers, nil)
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, &clients.ProviderError{StatusCode: statusCode, Body: string(body)}
	}

	var userInfo clients.LinkedInUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	return &userInfo, nil
}

// ugcPostRequest is the LinkedIn ugcPosts creation payload
type ugcPostRequest struct {
	Author          string                    `json:"author"`
	LifecycleState  string                    `json:"lifecycleState"`
	SpecificContent map[string]ugcShareDetail `json:"specificContent"`
	Visibility      map[string]string         `json:"visibility"`
}

type ugcShareDetail struct {
	ShareCommentary    ugcText `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
}

type ugcText struct {
	Text string `json:"text"`
}

// CreatePost publishes a text post on behalf of the given author URN.
func (c *LinkedInClient) CreatePost(
	ctx context.Context,
	accessToken, authorURN, text string,
) (*clients.LinkedInPostResponse, error) {
	postData := ugcPostRequest{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]ugcShareDetail{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    ugcText{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	payload, err := json.Marshal(postData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post payload: %w", err)
	}

	headers := map[string]string{
		"Authorization":             "Bearer " + accessToken,
		"Content-Type":              "application/json",
		"X-Restli-Protocol-Version": restliProtocolVersion,
		"User-Agent":                userAgent,
	}

	body, statusCode, err := c.doWithFallback(ctx, "POST", c.apiBaseURL+"/v2/ugcPosts", headers, payload)
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusCreated && statusCode != http.StatusOK {
		return nil, &clients.ProviderError{StatusCode: statusCode, Body: string(body)}
	}

	var postResp clients.LinkedInPostResponse
	if err := json.Unmarshal(body, &postResp); err != nil {
		return nil, fmt.Errorf("failed to decode post response: %w", err)
	}

	return &postResp, nil
}

// doWithFallback attempts the request through each transport in order. The
// first transport that completes the HTTP round trip wins, whatever the
// status code. If every transport fails, the last error is surfaced wrapped
// as a transport-exhausted failure.
func (c *LinkedInClient) doWithFallback(
	ctx context.Context,
	method, requestURL string,
	headers map[string]string,
	payload []byte,
) ([]byte, int, error) {
	var lastErr error

	for i, httpClient := range c.transports {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			if i < len(c.transports)-1 {
				log.Printf("⚠️ Transport %d failed for %s %s, trying fallback: %v", i+1, method, requestURL, err)
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, apperrors.Wrap(
		apperrors.KindTransportExhausted,
		fmt.Sprintf("all %d transport methods failed for %s %s", len(c.transports), method, requestURL),
		lastErr,
	)
}
