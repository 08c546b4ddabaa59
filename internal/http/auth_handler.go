package api

import (
	"encoding/json"
	"net/http"

	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
)

type registerRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
}

// issueTokenPair signs both token classes for u. Used by register and login.
func (h *Handler) issueTokenPair(u *user.User) (access, refresh string, err error) {
	access, err = h.tokens.IssueAccess(u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err = h.tokens.IssueRefresh(u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// @Summary     Register a new user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      registerRequest  true  "Registration data"
// @Success     201      {object}  response
// @Failure     400      {object}  response
// @Failure     500      {object}  response
// @Router      /api/auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	u, err := h.userSvc.Register(r.Context(), user.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	access, refresh, err := h.issueTokenPair(u)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Registration successful", map[string]any{
		"user":         u.Account(),
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      loginRequest  true  "Credentials"
// @Success     200      {object}  response
// @Failure     400      {object}  response
// @Failure     401      {object}  response
// @Router      /api/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	access, refresh, err := h.issueTokenPair(u)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusOK, "Login successful", map[string]any{
		"user":         u.Account(),
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// @Summary     Refresh access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      refreshRequest  true  "Refresh token"
// @Success     200      {object}  response
// @Failure     400      {object}  response
// @Failure     401      {object}  response
// @Router      /api/auth/refresh [post]
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}
	if req.RefreshToken == "" {
		errorResponse(w, apperr.BadRequest("Refresh token is required", nil))
		return
	}

	claims, err := h.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		errorResponse(w, apperr.Unauthorized("Invalid or expired refresh token", err))
		return
	}

	// The refresh token is not rotated; only a fresh access token is issued.
	access, err := h.tokens.IssueAccess(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"accessToken": access,
	})
}

// @Summary     Get own profile
// @Tags        auth
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  response
// @Failure     401  {object}  response
// @Failure     404  {object}  response
// @Router      /api/auth/profile [get]
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := userIDFromCtx(r)
	if id == "" {
		errorResponse(w, apperr.Unauthorized("Not authenticated", nil))
		return
	}

	u, err := h.userSvc.GetByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"user": u.Profile(),
	})
}

// @Summary     Update own profile
// @Tags        auth
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      updateProfileRequest  true  "Profile fields"
// @Success     200      {object}  response
// @Failure     401      {object}  response
// @Failure     500      {object}  response
// @Router      /api/auth/profile [put]
func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := userIDFromCtx(r)
	if id == "" {
		errorResponse(w, apperr.Unauthorized("Not authenticated", nil))
		return
	}

	// Only first name, last name and bio are read; any role, email or
	// username values in the body are ignored.
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("Invalid request body", err))
		return
	}

	u, err := h.userSvc.UpdateProfile(r.Context(), id, user.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeData(w, http.StatusOK, "Profile updated successfully", map[string]any{
		"user": u.Profile(),
	})
}
