package linkedin

import (
	"context"
	"fmt"

	"socialcatalyst/clients"
)

// MockLinkedInClient implements LinkedInClient interface for testing
type MockLinkedInClient struct {
	// OAuth operations
	MockAuthorizationURL      func(state string) string
	MockExchangeCodeForTokens func(ctx context.Context, code string) (*clients.LinkedInTokenResponse, error)
	MockRefreshAccessToken    func(ctx context.Context, refreshToken string) (*clients.LinkedInTokenResponse, error)

	// Profile operations
	MockGetUserInfo func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error)

	// Post operations
	MockCreatePost func(ctx context.Context, accessToken, authorURN, text string) (*clients.LinkedInPostResponse, error)
}

// NewMockLinkedInClient creates a new mock LinkedIn client
func NewMockLinkedInClient() *MockLinkedInClient {
	return &MockLinkedInClient{}
}

// AuthorizationURL implements LinkedInClient interface for testing
func (m *MockLinkedInClient) AuthorizationURL(state string) string {
	if m.MockAuthorizationURL != nil {
		return m.MockAuthorizationURL(state)
	}

	// Default mock response
	return fmt.Sprintf("https://www.linkedin.com/oauth/v2/authorization?state=%s", state)
}

// ExchangeCodeForTokens implements LinkedInClient interface for testing
func (m *MockLinkedInClient) ExchangeCodeForTokens(
	ctx context.Context,
	code string,
) (*clients.LinkedInTokenResponse, error) {
	if m.MockExchangeCodeForTokens != nil {
		return m.MockExchangeCodeForTokens(ctx, code)
	}

	// Default mock response for testing
	return &clients.LinkedInTokenResponse{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    3600,
		Scope:        "openid profile w_member_social email",
	}, nil
}

// RefreshAccessToken implements LinkedInClient interface for testing
func (m *MockLinkedInClient) RefreshAccessToken(
	ctx context.Context,
	refreshToken string,
) (*clients.LinkedInTokenResponse, error) {
	if m.MockRefreshAccessToken != nil {
		return m.MockRefreshAccessToken(ctx, refreshToken)
	}

	// Default mock response
	return &clients.LinkedInTokenResponse{
		AccessToken:  "refreshed-access-token",
		RefreshToken: refreshToken,
		ExpiresIn:    3600,
	}, nil
}

// GetUserInfo implements LinkedInClient interface for testing
func (m *MockLinkedInClient) GetUserInfo(
	ctx context.Context,
	accessToken string,
) (*clients.LinkedInUserInfo, error) {
	if m.MockGetUserInfo != nil {
		return m.MockGetUserInfo(ctx, accessToken)
	}

	// Default mock response
	return &clients.LinkedInUserInfo{
		Sub:        "li-member-123",
		Name:       "Test Member",
		GivenName:  "Test",
		FamilyName: "Member",
		Email:      "test.member@example.com",
	}, nil
}

// CreatePost implements LinkedInClient interface for testing
func (m *MockLinkedInClient) CreatePost(
	ctx context.Context,
	accessToken, authorURN, text string,
) (*clients.LinkedInPostResponse, error) {
	if m.MockCreatePost != nil {
		return m.MockCreatePost(ctx, accessToken, authorURN, text)
	}

	// Default mock response
	return &clients.LinkedInPostResponse{
		ID: "urn:li:share:9876543210",
	}, nil
}
