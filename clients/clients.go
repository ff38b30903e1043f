package clients

import (
	"context"
	"fmt"
)

// LinkedInTokenResponse is the provider's token endpoint response for both
// the authorization-code exchange and the refresh grant.
type LinkedInTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// LinkedInUserInfo is the provider's OpenID Connect userinfo response.
// Sub is the stable external profile identifier; it may be absent when the
// app lacks the identity product approval.
type LinkedInUserInfo struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// LinkedInPostResponse is the provider's ugcPosts creation response. A
// response without an ID means the post was not confirmed.
type LinkedInPostResponse struct {
	ID string `json:"id"`
}

// LinkedInClient defines the interface for outbound LinkedIn API calls
type LinkedInClient interface {
	AuthorizationURL(state string) string
	ExchangeCodeForTokens(ctx context.Context, code string) (*LinkedInTokenResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*LinkedInTokenResponse, error)
	GetUserInfo(ctx context.Context, accessToken string) (*LinkedInUserInfo, error)
	CreatePost(ctx context.Context, accessToken, authorURN, text string) (*LinkedInPostResponse, error)
}

// ProviderError is a non-2xx response from the LinkedIn API. The status code
// and body are kept so callers can classify the failure.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("LinkedIn API error: status %d, body: %s", e.StatusCode, e.Body)
}
