package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialcatalyst/apperrors"
	"socialcatalyst/clients"
	linkedinclient "socialcatalyst/clients/linkedin"
	"socialcatalyst/models"
	"socialcatalyst/services"
	advocacysvc "socialcatalyst/services/advocacy"
	contentsvc "socialcatalyst/services/content"
	employeesvc "socialcatalyst/services/employees"
)

const (
	testStateSecret = "test-state-secret"
	testEmployeeID  = "e_01G0EZ1XTM37C5X11SQTDNCTM1"
	testContentID   = "c_01G0EZ1XTM37C5X11SQTDNCTM2"
)

// passthroughTxManager executes transaction functions directly.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) BeginTransaction(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func (passthroughTxManager) CommitTransaction(ctx context.Context) error   { return nil }
func (passthroughTxManager) RollbackTransaction(ctx context.Context) error { return nil }

type testFixture struct {
	useCase   *LinkedInUseCase
	client    *linkedinclient.MockLinkedInClient
	employees *employeesvc.MockEmployeesService
	content   *contentsvc.MockContentService
	advocacy  *advocacysvc.MockAdvocacyService
}

func newTestFixture() *testFixture {
	client := linkedinclient.NewMockLinkedInClient()
	employees := new(employeesvc.MockEmployeesService)
	content := new(contentsvc.MockContentService)
	advocacy := new(advocacysvc.MockAdvocacyService)

	useCase := NewLinkedInUseCase(
		client, employees, content, advocacy, passthroughTxManager{}, testStateSecret)

	return &testFixture{
		useCase:   useCase,
		client:    client,
		employees: employees,
		content:   content,
		advocacy:  advocacy,
	}
}

func disconnectedEmployee() *models.Employee {
	return &models.Employee{
		ID:           testEmployeeID,
		EmployeeCode: "EMP001",
		FirstName:    "Jordan",
		LastName:     "Doe",
		Email:        "jordan@example.com",
		Role:         models.EmployeeRoleEmployee,
	}
}

func connectedEmployee(expiry time.Time) *models.Employee {
	employee := disconnectedEmployee()
	employee.LinkedInConnection = models.LinkedInConnection{
		LinkedInConnected:    true,
		LinkedInProfileID:    "li-member-42",
		LinkedInProfileURL:   "https://linkedin.com/in/li-member-42",
		LinkedInAccessToken:  "access-token-abc",
		LinkedInRefreshToken: "refresh-token-abc",
		LinkedInTokenExpiry:  &expiry,
	}
	return employee
}

func approvedContent() *models.Content {
	approver := testEmployeeID
	approvedAt := time.Now().Add(-24 * time.Hour)
	return &models.Content{
		ID:          testContentID,
		Title:       "Product launch",
		Description: "We shipped something new",
		Category:    "product",
		Tags:        []string{"golang", "cloud"},
		IsApproved:  true,
		ApprovedBy:  &approver,
		ApprovedAt:  &approvedAt,
	}
}

func TestBeginAuthorization(t *testing.T) {
	t.Run("issues URL with signed state", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)

		intent, err := f.useCase.BeginAuthorization(context.Background(), testEmployeeID)
		require.NoError(t, err)
		assert.Contains(t, intent.AuthorizationURL, intent.State)

		employeeID, err := f.useCase.states.Decode(intent.State, time.Now())
		require.NoError(t, err)
		assert.Equal(t, testEmployeeID, employeeID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.None[*models.Employee](), nil)

		_, err := f.useCase.BeginAuthorization(context.Background(), testEmployeeID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestCompleteAuthorization(t *testing.T) {
	validState := func(f *testFixture) string {
		return f.useCase.states.Encode(testEmployeeID, time.Now())
	}

	t.Run("missing code or state", func(t *testing.T) {
		f := newTestFixture()

		_, err := f.useCase.CompleteAuthorization(context.Background(), "", "some-state")
		assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))

		_, err = f.useCase.CompleteAuthorization(context.Background(), "auth-code", "")
		assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
	})

	t.Run("unverifiable state", func(t *testing.T) {
		f := newTestFixture()

		_, err := f.useCase.CompleteAuthorization(context.Background(), "auth-code", "forged-state")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInvalidRequest, apperrors.KindOf(err))
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.None[*models.Employee](), nil)

		_, err := f.useCase.CompleteAuthorization(context.Background(), "auth-code", validState(f))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("happy path persists a full connection", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)
		f.client.MockExchangeCodeForTokens = func(ctx context.Context, code string) (*clients.LinkedInTokenResponse, error) {
			assert.Equal(t, "abc", code)
			return &clients.LinkedInTokenResponse{AccessToken: "T1", RefreshToken: "R1", ExpiresIn: 3600}, nil
		}
		f.client.MockGetUserInfo = func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error) {
			assert.Equal(t, "T1", accessToken)
			return &clients.LinkedInUserInfo{Sub: "P1"}, nil
		}

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		result, err := f.useCase.CompleteAuthorization(context.Background(), "abc", validState(f))
		require.NoError(t, err)
		assert.Equal(t, testEmployeeID, result.EmployeeID)
		assert.Equal(t, "https://linkedin.com/in/P1", result.ProfileURL)

		require.NotNil(t, persisted)
		assert.True(t, persisted.LinkedInConnected)
		assert.Equal(t, "P1", persisted.LinkedInProfileID)
		assert.Equal(t, "T1", persisted.LinkedInAccessToken)
		assert.Equal(t, "R1", persisted.LinkedInRefreshToken)
		assert.True(t, persisted.Identity().IsResolved())
		require.NotNil(t, persisted.LinkedInTokenExpiry)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *persisted.LinkedInTokenExpiry, time.Minute)
		require.NotNil(t, persisted.LinkedInLastSync)
		assert.ElementsMatch(t, []string{"openid", "profile", "w_member_social", "email"},
			[]string(persisted.LinkedInPermissions))
	})

	t.Run("token exchange failure is fatal", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)
		f.client.MockExchangeCodeForTokens = func(ctx context.Context, code string) (*clients.LinkedInTokenResponse, error) {
			return nil, &clients.ProviderError{StatusCode: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`}
		}

		_, err := f.useCase.CompleteAuthorization(context.Background(), "expired", validState(f))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindTokenExchangeFailed, apperrors.KindOf(err))
		f.employees.AssertNotCalled(t, "UpdateLinkedInConnection", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("identity lookup 403 maps to insufficient scope", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)
		f.client.MockGetUserInfo = func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error) {
			return nil, &clients.ProviderError{StatusCode: http.StatusForbidden, Body: "product not approved"}
		}

		_, err := f.useCase.CompleteAuthorization(context.Background(), "abc", validState(f))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInsufficientScope, apperrors.KindOf(err))
	})

	t.Run("identity lookup 401 maps to token revoked", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)
		f.client.MockGetUserInfo = func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error) {
			return nil, &clients.ProviderError{StatusCode: http.StatusUnauthorized, Body: "revoked"}
		}

		_, err := f.useCase.CompleteAuthorization(context.Background(), "abc", validState(f))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindTokenRevoked, apperrors.KindOf(err))
	})

	t.Run("missing subject degrades to placeholder identity", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)
		f.client.MockGetUserInfo = func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error) {
			return &clients.LinkedInUserInfo{Name: "Jordan Doe"}, nil
		}

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		_, err := f.useCase.CompleteAuthorization(context.Background(), "abc", validState(f))
		require.NoError(t, err)

		require.NotNil(t, persisted)
		assert.True(t, persisted.LinkedInConnected)
		assert.True(t, strings.HasPrefix(persisted.LinkedInProfileID, "temp_"))
		assert.False(t, persisted.Identity().IsResolved())
		assert.NotEmpty(t, persisted.LinkedInAccessToken)
	})

	t.Run("healthy connection is never overwritten", func(t *testing.T) {
		f := newTestFixture()
		existing := connectedEmployee(time.Now().Add(time.Hour))
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(existing), nil)

		result, err := f.useCase.CompleteAuthorization(context.Background(), "second-code", validState(f))
		require.NoError(t, err)
		assert.Equal(t, existing.LinkedInProfileURL, result.ProfileURL)
		f.employees.AssertNotCalled(t, "UpdateLinkedInConnection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEnsureFreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("no connection", func(t *testing.T) {
		f := newTestFixture()

		_, err := f.useCase.EnsureFreshToken(ctx, disconnectedEmployee())
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNoConnection, apperrors.KindOf(err))
	})

	t.Run("fresh token is returned without a network call", func(t *testing.T) {
		f := newTestFixture()
		f.client.MockRefreshAccessToken = func(ctx context.Context, refreshToken string) (*clients.LinkedInTokenResponse, error) {
			t.Fatal("refresh must not be called for a fresh token")
			return nil, nil
		}
		employee := connectedEmployee(time.Now().Add(time.Hour))

		token, err := f.useCase.EnsureFreshToken(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, "access-token-abc", token)
	})

	t.Run("token inside the refresh buffer is refreshed", func(t *testing.T) {
		f := newTestFixture()
		employee := connectedEmployee(time.Now().Add(2 * time.Minute))
		f.client.MockRefreshAccessToken = func(ctx context.Context, refreshToken string) (*clients.LinkedInTokenResponse, error) {
			assert.Equal(t, "refresh-token-abc", refreshToken)
			return &clients.LinkedInTokenResponse{AccessToken: "rotated-token", RefreshToken: "rotated-refresh", ExpiresIn: 3600}, nil
		}

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		token, err := f.useCase.EnsureFreshToken(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, "rotated-token", token)

		require.NotNil(t, persisted)
		assert.Equal(t, "rotated-token", persisted.LinkedInAccessToken)
		assert.Equal(t, "rotated-refresh", persisted.LinkedInRefreshToken)
		require.NotNil(t, persisted.LinkedInTokenExpiry)
		assert.True(t, persisted.LinkedInTokenExpiry.After(time.Now()))
	})

	t.Run("provider omitting refresh token keeps the old one", func(t *testing.T) {
		f := newTestFixture()
		employee := connectedEmployee(time.Now().Add(-time.Minute))
		f.client.MockRefreshAccessToken = func(ctx context.Context, refreshToken string) (*clients.LinkedInTokenResponse, error) {
			return &clients.LinkedInTokenResponse{AccessToken: "rotated-token", ExpiresIn: 3600}, nil
		}

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		_, err := f.useCase.EnsureFreshToken(ctx, employee)
		require.NoError(t, err)
		assert.Equal(t, "refresh-token-abc", persisted.LinkedInRefreshToken)
	})

	t.Run("refresh failure marks the connection disconnected", func(t *testing.T) {
		f := newTestFixture()
		employee := connectedEmployee(time.Now().Add(-time.Minute))
		f.client.MockRefreshAccessToken = func(ctx context.Context, refreshToken string) (*clients.LinkedInTokenResponse, error) {
			return nil, &clients.ProviderError{StatusCode: http.StatusBadRequest, Body: "invalid_grant"}
		}

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		_, err := f.useCase.EnsureFreshToken(ctx, employee)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindRefreshFailed, apperrors.KindOf(err))

		require.NotNil(t, persisted)
		assert.False(t, persisted.LinkedInConnected)
		assert.False(t, employee.LinkedInConnected)
	})

	t.Run("expired without refresh token requires reauthorization", func(t *testing.T) {
		f := newTestFixture()
		employee := connectedEmployee(time.Now().Add(-time.Minute))
		employee.LinkedInRefreshToken = ""

		_, err := f.useCase.EnsureFreshToken(ctx, employee)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindReauthorizationRequired, apperrors.KindOf(err))
		f.employees.AssertNotCalled(t, "UpdateLinkedInConnection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestShareContent(t *testing.T) {
	ctx := context.Background()

	setupHealthyEmployee := func(f *testFixture) *models.Employee {
		employee := connectedEmployee(time.Now().Add(time.Hour))
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).Return(mo.Some(employee), nil)
		return employee
	}

	t.Run("not connected", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(disconnectedEmployee()), nil)

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotConnected, apperrors.KindOf(err))
	})

	t.Run("content not found", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).
			Return(mo.None[*models.Content](), nil)

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindContentNotFound, apperrors.KindOf(err))
	})

	t.Run("unapproved content fails even with a healthy connection", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		content := approvedContent()
		content.IsApproved = false
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(content), nil)

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotApproved, apperrors.KindOf(err))
		f.advocacy.AssertNotCalled(t, "GetRecentSuccessfulShare",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recent successful share is rate limited with next allowed time", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)

		sharedAt := time.Now().Add(-30 * time.Minute)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.Some(&models.AdvocacyRecord{
				EmployeeID:      testEmployeeID,
				ContentID:       testContentID,
				ExternalPostURL: "https://www.linkedin.com/feed/update/urn:li:share:1",
				CreatedAt:       sharedAt,
			}), nil)

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindRateLimited, apperrors.KindOf(err))

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		require.NotNil(t, appErr.NextAllowedAt)
		assert.WithinDuration(t, sharedAt.Add(time.Hour), *appErr.NextAllowedAt, time.Second)
	})

	t.Run("confirmed post records share, points and counters", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.None[*models.AdvocacyRecord](), nil)

		var postedText string
		f.client.MockCreatePost = func(ctx context.Context, accessToken, authorURN, text string) (*clients.LinkedInPostResponse, error) {
			assert.Equal(t, "access-token-abc", accessToken)
			assert.Equal(t, "urn:li:person:li-member-42", authorURN)
			postedText = text
			return &clients.LinkedInPostResponse{ID: "urn:li:share:777"}, nil
		}

		var createdParams services.CreateShareRecordParams
		f.advocacy.On("CreateShareRecord", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				createdParams = args.Get(1).(services.CreateShareRecordParams)
			}).
			Return(&models.AdvocacyRecord{ID: "a_01G0EZ1XTM37C5X11SQTDNCTM3"}, nil)
		f.employees.On("AddPoints", mock.Anything, testEmployeeID, models.SharePointValue).Return(nil)
		f.content.On("RecordShareIncrement", mock.Anything, testContentID).Return(nil)

		result, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "My personal take")
		require.NoError(t, err)
		assert.Equal(t, "urn:li:share:777", result.PostID)
		assert.Equal(t, "https://www.linkedin.com/feed/update/urn:li:share:777", result.PostURL)
		assert.Equal(t, models.SharePointValue, result.PointsAwarded)
		require.NotNil(t, result.Record)

		assert.True(t, strings.HasPrefix(postedText, "My personal take"))
		assert.Contains(t, postedText, "Product launch")
		assert.Contains(t, postedText, "We shipped something new")
		assert.Contains(t, postedText, "#SocialCatalyst #EmployeeAdvocacy #Innovation")
		assert.Contains(t, postedText, "#golang")
		assert.Contains(t, postedText, "#cloud")

		assert.Equal(t, "urn:li:share:777", createdParams.ExternalPostID)
		assert.Equal(t, models.SharePointValue, createdParams.PointsAwarded)
		f.employees.AssertExpectations(t)
		f.content.AssertExpectations(t)
		f.advocacy.AssertExpectations(t)
	})

	t.Run("response without post id confirms nothing", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.None[*models.AdvocacyRecord](), nil)
		f.client.MockCreatePost = func(ctx context.Context, accessToken, authorURN, text string) (*clients.LinkedInPostResponse, error) {
			return &clients.LinkedInPostResponse{}, nil
		}

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindPostNotConfirmed, apperrors.KindOf(err))
		f.advocacy.AssertNotCalled(t, "CreateShareRecord", mock.Anything, mock.Anything)
		f.employees.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revoked token during posting", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.None[*models.AdvocacyRecord](), nil)
		f.client.MockCreatePost = func(ctx context.Context, accessToken, authorURN, text string) (*clients.LinkedInPostResponse, error) {
			return nil, &clients.ProviderError{StatusCode: http.StatusUnauthorized, Body: "REVOKED_ACCESS_TOKEN"}
		}

		_, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindTokenRevoked, apperrors.KindOf(err))
	})

	t.Run("bookkeeping failure after a confirmed post still succeeds", func(t *testing.T) {
		f := newTestFixture()
		setupHealthyEmployee(f)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.None[*models.AdvocacyRecord](), nil)
		f.advocacy.On("CreateShareRecord", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("database unavailable"))

		result, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.NoError(t, err)
		assert.NotEmpty(t, result.PostID)
		assert.Nil(t, result.Record)
	})

	t.Run("sharing still works with a placeholder identity", func(t *testing.T) {
		f := newTestFixture()
		employee := connectedEmployee(time.Now().Add(time.Hour))
		employee.LinkedInProfileID = "temp_" + testEmployeeID + "_1700000000000"
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).Return(mo.Some(employee), nil)
		f.content.On("GetContentByID", mock.Anything, testContentID).Return(mo.Some(approvedContent()), nil)
		f.advocacy.On("GetRecentSuccessfulShare",
			mock.Anything, testEmployeeID, testContentID, models.PlatformLinkedIn, mock.Anything).
			Return(mo.None[*models.AdvocacyRecord](), nil)
		f.advocacy.On("CreateShareRecord", mock.Anything, mock.Anything).
			Return(&models.AdvocacyRecord{ID: "a_01G0EZ1XTM37C5X11SQTDNCTM4"}, nil)
		f.employees.On("AddPoints", mock.Anything, testEmployeeID, models.SharePointValue).Return(nil)
		f.content.On("RecordShareIncrement", mock.Anything, testContentID).Return(nil)

		result, err := f.useCase.ShareContent(ctx, testEmployeeID, testContentID, "")
		require.NoError(t, err)
		assert.NotEmpty(t, result.PostID)
	})
}

func TestDisconnect(t *testing.T) {
	t.Run("clears every connection field", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.Some(connectedEmployee(time.Now().Add(time.Hour))), nil)

		var persisted *models.LinkedInConnection
		f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
			Run(func(args mock.Arguments) {
				persisted = args.Get(2).(*models.LinkedInConnection)
			}).
			Return(nil)

		require.NoError(t, f.useCase.Disconnect(context.Background(), testEmployeeID))

		require.NotNil(t, persisted)
		assert.Equal(t, models.LinkedInConnection{}, *persisted)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newTestFixture()
		f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
			Return(mo.None[*models.Employee](), nil)

		err := f.useCase.Disconnect(context.Background(), testEmployeeID)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestInspectConnection(t *testing.T) {
	f := newTestFixture()
	employee := connectedEmployee(time.Now().Add(-time.Hour))
	f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).Return(mo.Some(employee), nil)

	report, err := f.useCase.InspectConnection(context.Background(), testEmployeeID)
	require.NoError(t, err)

	assert.True(t, report.IsConnected)
	assert.True(t, report.HasAccessToken)
	assert.True(t, report.HasRefreshToken)
	assert.True(t, report.TokenExpired)
	assert.True(t, report.IdentityResolved)
	assert.True(t, report.Healthy)
	assert.Equal(t, "li-member-42", report.ProfileID)
}

func TestGetStatusNeverReturnsForUnknownEmployee(t *testing.T) {
	f := newTestFixture()
	f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).
		Return(mo.None[*models.Employee](), nil)

	_, err := f.useCase.GetStatus(context.Background(), testEmployeeID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestEndToEndAuthorizationFlow(t *testing.T) {
	f := newTestFixture()
	employee := disconnectedEmployee()
	f.employees.On("GetEmployeeByID", mock.Anything, testEmployeeID).Return(mo.Some(employee), nil)
	f.client.MockExchangeCodeForTokens = func(ctx context.Context, code string) (*clients.LinkedInTokenResponse, error) {
		require.Equal(t, "abc", code)
		return &clients.LinkedInTokenResponse{AccessToken: "T1", ExpiresIn: 3600}, nil
	}
	f.client.MockGetUserInfo = func(ctx context.Context, accessToken string) (*clients.LinkedInUserInfo, error) {
		return &clients.LinkedInUserInfo{Sub: "P1"}, nil
	}

	var persisted *models.LinkedInConnection
	f.employees.On("UpdateLinkedInConnection", mock.Anything, testEmployeeID, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(2).(*models.LinkedInConnection)
		}).
		Return(nil)

	intent, err := f.useCase.BeginAuthorization(context.Background(), testEmployeeID)
	require.NoError(t, err)

	result, err := f.useCase.CompleteAuthorization(context.Background(), "abc", intent.State)
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, result.EmployeeID)
	require.NotNil(t, persisted)
	assert.True(t, persisted.LinkedInConnected)
	assert.Equal(t, "P1", persisted.LinkedInProfileID)
	assert.Equal(t, "T1", persisted.LinkedInAccessToken)
	assert.Contains(t, persisted.LinkedInProfileURL, "P1")
}
