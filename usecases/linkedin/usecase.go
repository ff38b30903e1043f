package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"socialcatalyst/activitynotif"
	"socialcatalyst/apperrors"
	"socialcatalyst/clients"
	"socialcatalyst/models"
	"socialcatalyst/services"
	"socialcatalyst/utils"
)

const (
	// tokenRefreshBuffer refreshes tokens slightly before their recorded
	// expiry so an in-flight request never posts with a stale token.
	tokenRefreshBuffer = 5 * time.Minute

	// shareCooldown is the minimum gap between successful shares of the
	// same content by the same employee on the same platform.
	shareCooldown = time.Hour

	defaultHistoryLimit = 20

	campaignHashtags = "#SocialCatalyst #EmployeeAdvocacy #Innovation"

	postURLFormat = "https://www.linkedin.com/feed/update/%s"
)

// grantedScopes is the fixed permission set recorded on every connection.
var grantedScopes = []string{"openid", "profile", "w_member_social", "email"}

// LinkedInUseCase owns the per-employee LinkedIn connection lifecycle:
// authorization, callback completion, token refresh, sharing, disconnect.
type LinkedInUseCase struct {
	linkedinClient   clients.LinkedInClient
	employeesService services.EmployeesService
	contentService   services.ContentService
	advocacyService  services.AdvocacyService
	txManager        services.TransactionManager
	states           *stateCodec
}

func NewLinkedInUseCase(
	linkedinClient clients.LinkedInClient,
	employeesService services.EmployeesService,
	contentService services.ContentService,
	advocacyService services.AdvocacyService,
	txManager services.TransactionManager,
	stateSecret string,
) *LinkedInUseCase {
	return &LinkedInUseCase{
		linkedinClient:   linkedinClient,
		employeesService: employeesService,
		contentService:   contentService,
		advocacyService:  advocacyService,
		txManager:        txManager,
		states:           newStateCodec(stateSecret),
	}
}

// AuthorizationIntent is the outcome of starting an authorization flow.
type AuthorizationIntent struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// CompletionResult is the outcome of a completed authorization callback.
type CompletionResult struct {
	EmployeeID string `json:"employee_id"`
	ProfileURL string `json:"profile_url"`
}

// ShareResult is the outcome of a confirmed content share.
type ShareResult struct {
	PostID        string                 `json:"post_id"`
	PostURL       string                 `json:"post_url"`
	PointsAwarded int                    `json:"points_awarded"`
	Record        *models.AdvocacyRecord `json:"record,omitempty"`
}

// ConnectionHealthReport is the admin-facing view of a connection's health.
// It reports token presence, never token values.
type ConnectionHealthReport struct {
	EmployeeID       string     `json:"employee_id"`
	IsConnected      bool       `json:"is_connected"`
	HasAccessToken   bool       `json:"has_access_token"`
	HasRefreshToken  bool       `json:"has_refresh_token"`
	TokenExpiry      *time.Time `json:"token_expiry,omitempty"`
	TokenExpired     bool       `json:"token_expired"`
	ProfileID        string     `json:"profile_id,omitempty"`
	IdentityResolved bool       `json:"identity_resolved"`
	Healthy          bool       `json:"healthy"`
	LastSync         *time.Time `json:"last_sync,omitempty"`
}

// BeginAuthorization issues an authorization URL with a signed state token
// bound to the employee. Nothing is persisted.
func (u *LinkedInUseCase) BeginAuthorization(
	ctx context.Context,
	employeeID string,
) (*AuthorizationIntent, error) {
	log.Printf("📋 Starting LinkedIn authorization for employee: %s", employeeID)

	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}
	employee := maybeEmployee.MustGet()

	state := u.states.Encode(employee.ID, time.Now())
	authURL := u.linkedinClient.AuthorizationURL(state)

	log.Printf("📋 Completed successfully - issued authorization URL for employee: %s", employee.ID)
	return &AuthorizationIntent{AuthorizationURL: authURL, State: state}, nil
}

// CompleteAuthorization handles the provider callback: validates the state,
// exchanges the code, resolves the external identity and persists the
// connection. A healthy existing connection is never overwritten.
func (u *LinkedInUseCase) CompleteAuthorization(
	ctx context.Context,
	code, state string,
) (*CompletionResult, error) {
	log.Printf("📋 Starting to complete LinkedIn authorization")

	if code == "" || state == "" {
		return nil, apperrors.New(apperrors.KindInvalidRequest, "code and state are required")
	}

	employeeID, err := u.states.Decode(state, time.Now())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidRequest, "invalid state token", err)
	}

	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}
	employee := maybeEmployee.MustGet()

	tokens, err := u.linkedinClient.ExchangeCodeForTokens(ctx, code)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTokenExchangeFailed, "failed to exchange authorization code", err)
	}
	log.Printf("🔑 Obtained LinkedIn tokens for employee: %s", employee.ID)

	identity, err := u.resolveIdentity(ctx, employee.ID, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	// Duplicate callback deliveries must not clobber a good connection.
	if employee.IsHealthy() {
		log.Printf("✅ Employee %s already has a healthy LinkedIn connection, keeping it", employee.ID)
		return &CompletionResult{
			EmployeeID: employee.ID,
			ProfileURL: employee.LinkedInProfileURL,
		}, nil
	}

	now := time.Now()
	expiry := now.Add(time.Duration(tokens.ExpiresIn) * time.Second)
	conn := &models.LinkedInConnection{
		LinkedInConnected:    true,
		LinkedInProfileID:    identity.ID,
		LinkedInProfileURL:   identity.ProfileURL(),
		LinkedInAccessToken:  tokens.AccessToken,
		LinkedInRefreshToken: tokens.RefreshToken,
		LinkedInTokenExpiry:  &expiry,
		LinkedInPermissions:  grantedScopes,
		LinkedInLastSync:     &now,
	}

	if err := u.employeesService.UpdateLinkedInConnection(ctx, employee.ID, conn); err != nil {
		return nil, fmt.Errorf("failed to persist LinkedIn connection: %w", err)
	}

	log.Printf("📋 Completed successfully - connected LinkedIn for employee: %s", employee.ID)
	return &CompletionResult{EmployeeID: employee.ID, ProfileURL: conn.LinkedInProfileURL}, nil
}

// resolveIdentity resolves the external profile ID for a fresh access token.
// A usable response without a subject degrades to a placeholder identity so
// posting still works; provider rejections are classified and fatal.
func (u *LinkedInUseCase) resolveIdentity(
	ctx context.Context,
	employeeID, accessToken string,
) (models.Identity, error) {
	userInfo, err := u.linkedinClient.GetUserInfo(ctx, accessToken)
	if err != nil {
		var providerErr *clients.ProviderError
		if errors.As(err, &providerErr) {
			switch providerErr.StatusCode {
			case http.StatusForbidden:
				return models.Identity{}, apperrors.Wrap(
					apperrors.KindInsufficientScope,
					"LinkedIn app is missing a required product grant", err)
			case http.StatusUnauthorized:
				return models.Identity{}, apperrors.Wrap(
					apperrors.KindTokenRevoked,
					"access token was rejected right after exchange", err)
			}
		}
		return models.Identity{}, fmt.Errorf("failed to resolve LinkedIn identity: %w", err)
	}

	if userInfo.Sub == "" {
		identity := models.NewPlaceholderIdentity(employeeID, time.Now())
		log.Printf("⚠️ LinkedIn userinfo returned no subject for employee %s, storing placeholder identity: %s",
			employeeID, identity.ID)
		return identity, nil
	}

	return models.NewResolvedIdentity(userInfo.Sub), nil
}

// EnsureFreshToken returns an access token that is valid for at least the
// refresh buffer, refreshing and persisting it when needed. A failed refresh
// marks the connection disconnected so the employee re-authorizes.
func (u *LinkedInUseCase) EnsureFreshToken(ctx context.Context, employee *models.Employee) (string, error) {
	conn := &employee.LinkedInConnection
	if conn.LinkedInAccessToken == "" {
		return "", apperrors.New(apperrors.KindNoConnection, "no LinkedIn connection for employee")
	}

	if conn.LinkedInTokenExpiry != nil && time.Now().Add(tokenRefreshBuffer).Before(*conn.LinkedInTokenExpiry) {
		return conn.LinkedInAccessToken, nil
	}

	if conn.LinkedInRefreshToken == "" {
		return "", apperrors.New(
			apperrors.KindReauthorizationRequired,
			"LinkedIn token expired and no refresh token is stored")
	}

	log.Printf("🔄 Refreshing LinkedIn token for employee: %s", employee.ID)
	tokens, err := u.linkedinClient.RefreshAccessToken(ctx, conn.LinkedInRefreshToken)
	if err != nil {
		disconnected := *conn
		disconnected.LinkedInConnected = false
		if persistErr := u.employeesService.UpdateLinkedInConnection(ctx, employee.ID, &disconnected); persistErr != nil {
			log.Printf("⚠️ Failed to mark employee %s disconnected after refresh failure: %v", employee.ID, persistErr)
		}
		conn.LinkedInConnected = false
		return "", apperrors.Wrap(apperrors.KindRefreshFailed, "failed to refresh LinkedIn token", err)
	}

	refreshToken := tokens.RefreshToken
	if refreshToken == "" {
		// Some grants omit a rotated refresh token; keep the old one.
		refreshToken = conn.LinkedInRefreshToken
	}

	expiry := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	conn.LinkedInAccessToken = tokens.AccessToken
	conn.LinkedInRefreshToken = refreshToken
	conn.LinkedInTokenExpiry = &expiry

	if err := u.employeesService.UpdateLinkedInConnection(ctx, employee.ID, conn); err != nil {
		return "", fmt.Errorf("failed to persist refreshed LinkedIn token: %w", err)
	}

	log.Printf("✅ Refreshed LinkedIn token for employee: %s", employee.ID)
	return tokens.AccessToken, nil
}

// RefreshExpiringTokens walks every connected employee and refreshes tokens
// that are inside the refresh buffer. Per-employee failures are counted, not
// fatal, so one bad connection never stalls the sweep.
func (u *LinkedInUseCase) RefreshExpiringTokens(ctx context.Context) (refreshed, failed int, err error) {
	employees, listErr := u.employeesService.ListEmployees(ctx)
	if listErr != nil {
		return 0, 0, fmt.Errorf("failed to list employees: %w", listErr)
	}

	for _, employee := range employees {
		conn := employee.LinkedInConnection
		if !conn.LinkedInConnected || conn.LinkedInAccessToken == "" || conn.LinkedInRefreshToken == "" {
			continue
		}
		if conn.LinkedInTokenExpiry != nil && time.Now().Add(tokenRefreshBuffer).Before(*conn.LinkedInTokenExpiry) {
			continue
		}

		if _, refreshErr := u.EnsureFreshToken(ctx, employee); refreshErr != nil {
			log.Printf("❌ Failed to refresh LinkedIn token for employee %s: %v", employee.ID, refreshErr)
			failed++
			continue
		}
		refreshed++
	}

	return refreshed, failed, nil
}

// ShareContent posts approved content to LinkedIn on behalf of the employee.
// Preconditions are checked in a fixed order, each with its own failure kind.
func (u *LinkedInUseCase) ShareContent(
	ctx context.Context,
	employeeID, contentID, customMessage string,
) (*ShareResult, error) {
	log.Printf("📋 Starting to share content %s for employee: %s", contentID, employeeID)

	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}
	employee := maybeEmployee.MustGet()

	if !employee.LinkedInConnected || employee.LinkedInAccessToken == "" {
		return nil, apperrors.New(apperrors.KindNotConnected, "LinkedIn account is not connected")
	}

	maybeContent, err := u.contentService.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	if !maybeContent.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindContentNotFound, "content not found: %s", contentID)
	}
	content := maybeContent.MustGet()

	if !content.IsApproved {
		return nil, apperrors.New(apperrors.KindNotApproved, "content is not approved for sharing")
	}

	since := time.Now().Add(-shareCooldown)
	maybeRecent, err := u.advocacyService.GetRecentSuccessfulShare(
		ctx, employee.ID, content.ID, models.PlatformLinkedIn, since)
	if err != nil {
		return nil, fmt.Errorf("failed to check share cooldown: %w", err)
	}
	if maybeRecent.IsPresent() {
		nextAllowedAt := maybeRecent.MustGet().CreatedAt.Add(shareCooldown)
		return nil, apperrors.RateLimited("content was already shared within the last hour", nextAllowedAt)
	}

	accessToken, err := u.EnsureFreshToken(ctx, employee)
	if err != nil {
		return nil, err
	}

	shareText := buildShareText(customMessage, content)
	identity := employee.Identity()

	post, err := u.linkedinClient.CreatePost(ctx, accessToken, identity.URN(), shareText)
	if err != nil {
		var providerErr *clients.ProviderError
		if errors.As(err, &providerErr) {
			switch providerErr.StatusCode {
			case http.StatusUnauthorized:
				return nil, apperrors.Wrap(apperrors.KindTokenRevoked, "LinkedIn rejected the access token", err)
			case http.StatusForbidden:
				return nil, apperrors.Wrap(
					apperrors.KindInsufficientScope, "LinkedIn rejected the post for missing permissions", err)
			}
		}
		return nil, fmt.Errorf("failed to create LinkedIn post: %w", err)
	}
	if post.ID == "" {
		return nil, apperrors.New(apperrors.KindPostNotConfirmed, "LinkedIn did not return a post id")
	}

	postURL := fmt.Sprintf(postURLFormat, post.ID)
	log.Printf("✅ LinkedIn post confirmed for employee %s: %s", employee.ID, post.ID)

	var record *models.AdvocacyRecord
	bookkeepingErr := u.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := u.advocacyService.CreateShareRecord(txCtx, services.CreateShareRecordParams{
			EmployeeID:      employee.ID,
			ContentID:       content.ID,
			Platform:        models.PlatformLinkedIn,
			ShareText:       shareText,
			ExternalPostID:  post.ID,
			ExternalPostURL: postURL,
			PointsAwarded:   models.SharePointValue,
		})
		if err != nil {
			return err
		}
		if err := u.employeesService.AddPoints(txCtx, employee.ID, models.SharePointValue); err != nil {
			return err
		}
		if err := u.contentService.RecordShareIncrement(txCtx, content.ID); err != nil {
			return err
		}
		record = created
		return nil
	})
	if bookkeepingErr != nil {
		// The remote post already happened and cannot be undone; report
		// success and log the inconsistency.
		log.Printf("⚠️ LinkedIn post %s succeeded but local bookkeeping failed for employee %s: %v",
			post.ID, employee.ID, bookkeepingErr)
	}

	activitynotif.New(employee.ID, fmt.Sprintf("%s %s shared %q on LinkedIn",
		employee.FirstName, employee.LastName, content.Title))

	log.Printf("📋 Completed successfully - shared content %s for employee: %s", content.ID, employee.ID)
	return &ShareResult{
		PostID:        post.ID,
		PostURL:       postURL,
		PointsAwarded: models.SharePointValue,
		Record:        record,
	}, nil
}

// Disconnect clears every connection field unconditionally.
func (u *LinkedInUseCase) Disconnect(ctx context.Context, employeeID string) error {
	log.Printf("📋 Starting to disconnect LinkedIn for employee: %s", employeeID)

	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}

	cleared := &models.LinkedInConnection{}
	if err := u.employeesService.UpdateLinkedInConnection(ctx, employeeID, cleared); err != nil {
		return fmt.Errorf("failed to clear LinkedIn connection: %w", err)
	}

	log.Printf("🗑️ Disconnected LinkedIn for employee: %s", employeeID)
	return nil
}

// ForceDisconnect is the administrative variant of Disconnect, used to clear
// another employee's broken connection.
func (u *LinkedInUseCase) ForceDisconnect(ctx context.Context, adminID, employeeID string) error {
	log.Printf("🔐 Admin %s force-disconnecting LinkedIn for employee: %s", adminID, employeeID)
	return u.Disconnect(ctx, employeeID)
}

// GetStatus returns the employee's connection without secret fields exposed
// downstream (the API model strips tokens).
func (u *LinkedInUseCase) GetStatus(ctx context.Context, employeeID string) (*models.LinkedInConnection, error) {
	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}

	conn := maybeEmployee.MustGet().LinkedInConnection
	return &conn, nil
}

// InspectConnection builds the admin health report for an employee's
// connection.
func (u *LinkedInUseCase) InspectConnection(
	ctx context.Context,
	employeeID string,
) (*ConnectionHealthReport, error) {
	log.Printf("📋 Starting to inspect LinkedIn connection for employee: %s", employeeID)

	maybeEmployee, err := u.employeesService.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !maybeEmployee.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "employee not found: %s", employeeID)
	}
	employee := maybeEmployee.MustGet()
	conn := employee.LinkedInConnection

	expired := conn.LinkedInTokenExpiry != nil && conn.LinkedInTokenExpiry.Before(time.Now())

	report := &ConnectionHealthReport{
		EmployeeID:       employee.ID,
		IsConnected:      conn.LinkedInConnected,
		HasAccessToken:   conn.LinkedInAccessToken != "",
		HasRefreshToken:  conn.LinkedInRefreshToken != "",
		TokenExpiry:      conn.LinkedInTokenExpiry,
		TokenExpired:     expired,
		ProfileID:        conn.LinkedInProfileID,
		IdentityResolved: conn.Identity().IsResolved(),
		Healthy:          conn.IsHealthy(),
		LastSync:         conn.LinkedInLastSync,
	}

	log.Printf("📋 Completed successfully - inspected connection for employee: %s, healthy: %t",
		employee.ID, report.Healthy)
	return report, nil
}

// GetShareHistory returns the employee's recent LinkedIn shares.
func (u *LinkedInUseCase) GetShareHistory(
	ctx context.Context,
	employeeID string,
	limit int,
) ([]*models.AdvocacyRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return u.advocacyService.ListSharesByEmployee(ctx, employeeID, models.PlatformLinkedIn, limit)
}

// buildShareText renders the post body: optional custom message, title,
// description, campaign hashtags plus content tags.
func buildShareText(customMessage string, content *models.Content) string {
	parts := []string{}
	if customMessage != "" {
		parts = append(parts, customMessage)
	}
	parts = append(parts, content.Title)
	if content.Description != "" {
		parts = append(parts, content.Description)
	}

	hashtags := campaignHashtags
	if tagLine := utils.FormatHashtags(content.Tags); tagLine != "" {
		hashtags += " " + tagLine
	}
	parts = append(parts, hashtags)

	return strings.Join(parts, "\n\n")
}

// EngagementUpdate carries platform-reported engagement counters for one
// share record. Counters are absolute values, not increments.
type EngagementUpdate struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Clicks   int `json:"clicks"`
	Reach    int `json:"reach"`
}

func (u EngagementUpdate) engagements() int {
	return u.Likes + u.Comments + u.Shares
}

// UpdateShareEngagement syncs reported engagement counters onto a share
// record and rolls the difference into the content's performance totals.
// Callers may only update their own records unless they hold the admin role.
func (u *LinkedInUseCase) UpdateShareEngagement(
	ctx context.Context,
	caller *models.Employee,
	recordID string,
	update EngagementUpdate,
) (*models.AdvocacyRecord, error) {
	log.Printf("📋 Starting to update engagement for share record: %s", recordID)

	if update.Likes < 0 || update.Comments < 0 || update.Shares < 0 || update.Clicks < 0 || update.Reach < 0 {
		return nil, apperrors.New(apperrors.KindInvalidRequest, "engagement counters cannot be negative")
	}

	maybeRecord, err := u.advocacyService.GetShareRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get share record: %w", err)
	}
	if !maybeRecord.IsPresent() {
		return nil, apperrors.Newf(apperrors.KindNotFound, "share record not found: %s", recordID)
	}
	record := maybeRecord.MustGet()

	if record.EmployeeID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "not allowed to update another employee's share record")
	}

	// Record counters are replaced with the reported values; content totals
	// accumulate. Syncing the difference keeps repeated reports from double
	// counting.
	engagementDelta := update.engagements() - (record.Likes + record.Comments + record.Shares)

	err = u.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := u.advocacyService.UpdateEngagement(
			txCtx, record.ID, update.Likes, update.Comments, update.Shares, update.Clicks); err != nil {
			return err
		}
		return u.contentService.AddEngagement(txCtx, record.ContentID, engagementDelta, update.Reach)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update engagement: %w", err)
	}

	record.Likes = update.Likes
	record.Comments = update.Comments
	record.Shares = update.Shares
	record.Clicks = update.Clicks

	log.Printf("📋 Completed successfully - updated engagement for share record: %s", record.ID)
	return record, nil
}
