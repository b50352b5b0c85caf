package http

import (
	"fmt"
	"net/http"
	"time"

	"partner-portal-api/res/auth"
	"partner-portal-api/res/store"
	"partner-portal-api/sys/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
)

const userDisplayNamePlaceholderDefault string = "User"

type authResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthWithProvider exchanges a Google OAuth2 authorization code for an
// access/refresh token pair, registering the user on first sign-in.
func (h *Handler) AuthWithProvider(c *gin.Context) {
	if middleware.GetCurrentUser(c) != nil {
		respondError(c, http.StatusForbidden, "access forbidden, session already associated with a user")
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	ctx := c.Request.Context()

	// 1. Social identity validation

	userMetadata, err := h.Auth.AuthorizationWithGoogle(ctx, req.Code)
	if err != nil || userMetadata == nil {
		h.Logger.Printf("Error authorizing Google access code: %s", err)
		respondError(c, http.StatusBadRequest, "invalid request, error authorizing google access code")
		return
	}

	// 2. Detect existing user

	var finalUserID string

	associatedUser, err := h.Store.Users().GetByGoogleIdentity(ctx, userMetadata.Identifier)
	if err != nil {
		h.Logger.Printf("Error retrieving user through google identifier: %s", err)
	}

	if associatedUser != nil { // user already registered, this is a login
		finalUserID = associatedUser.ID
	} else { // no existing user associated with the social identity, register one
		userID := fmt.Sprintf("%s_%s", "user", xid.New().String())
		userName := userDisplayNamePlaceholderDefault
		if userMetadata.DisplayName != nil && len(*userMetadata.DisplayName) > 0 {
			userName = *userMetadata.DisplayName
		}

		newUser, err := h.Store.Users().Create(ctx, userID, userName, userMetadata.Email, store.UserRoleStaff, &userMetadata.Identifier)
		if err != nil {
			h.Logger.Printf("Error creating user: %s", err)
			respondError(c, http.StatusInternalServerError, "error creating user")
			return
		}

		finalUserID = newUser.ID
	}

	result, err := h.issueTokenPair(c, finalUserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error creating auth session")
		return
	}

	respondOK(c, result)
}

// AuthWithRefreshToken rotates a refresh token into a new token pair. The
// presented token must match a stored session; sessions past the refresh
// lifespan are purged on every call.
func (h *Handler) AuthWithRefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	ctx := c.Request.Context()

	// 1. Validate refresh token and associated session/user

	var claims auth.RefreshTokenClaims
	err := h.Auth.ValidateToken(req.RefreshToken, &claims)
	if err != nil {
		h.Logger.Printf("Error validating refresh token: %s", err)
		respondError(c, http.StatusUnauthorized, "invalid request, refresh token expired or malformed")
		return
	}

	user, err := h.Store.Users().Get(ctx, claims.UserID)
	if err != nil || user == nil {
		h.Logger.Printf("Error retrieving user associated with the refresh token: %s", err)
		respondError(c, http.StatusUnauthorized, "invalid request, refresh token expired or malformed")
		return
	}

	err = h.Store.AuthSessions().DeleteExpired(ctx, time.Now().Add(-auth.RefreshTokenLifespanInHours*time.Hour))
	if err != nil {
		h.Logger.Printf("Error removing expired refresh session: %s", err)
		respondError(c, http.StatusInternalServerError, "error creating auth session")
		return
	}

	currentRefreshSession, err := h.Store.AuthSessions().Get(ctx, claims.RefreshTokenValue)
	if err != nil || currentRefreshSession == nil {
		h.Logger.Printf("Error retrieving refresh session: %s", err)
		respondError(c, http.StatusUnauthorized, "invalid request, refresh token expired or malformed")
		return
	}

	// 2. Replace the consumed session with a fresh one

	if err := h.Store.AuthSessions().Delete(ctx, []string{currentRefreshSession.ID}); err != nil {
		h.Logger.Printf("Error removing consumed refresh session: %s", err)
	}

	result, err := h.issueTokenPair(c, user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "error creating auth session")
		return
	}

	respondOK(c, result)
}

// SignOut drops every refresh session of the current user.
func (h *Handler) SignOut(c *gin.Context) {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		respondError(c, http.StatusForbidden, "access forbidden")
		return
	}

	if err := h.Store.AuthSessions().DeleteAllByUser(c.Request.Context(), currentUser.ID); err != nil {
		h.Logger.Printf("Error removing refresh sessions on sign-out: %s", err)
		respondError(c, http.StatusInternalServerError, "error ending auth sessions")
		return
	}

	respondOK(c, gin.H{"signedOut": true})
}

// issueTokenPair creates and stores a refresh session, then wraps both the
// refresh and access tokens as JWTs.
func (h *Handler) issueTokenPair(c *gin.Context, userID string) (*authResult, error) {
	ctx := c.Request.Context()

	refreshTokenValue := fmt.Sprintf("%s:%s", "auth_refresh_tok", xid.New().String())

	refreshSession, err := h.Store.AuthSessions().Create(ctx, refreshTokenValue, userID)
	if err != nil {
		h.Logger.Printf("Error creating refresh session: %s", err)
		return nil, err
	}

	refreshToken, err := h.Auth.GenerateRefreshToken(userID, refreshSession.ID)
	if err != nil {
		h.Logger.Printf("Error generating refresh token: %s", err)
		return nil, err
	}

	accessToken, err := h.Auth.GenerateAccessToken(userID)
	if err != nil {
		h.Logger.Printf("Error generating access token: %s", err)
		return nil, err
	}

	return &authResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
