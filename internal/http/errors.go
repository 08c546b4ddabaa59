package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), response{
		Success: false,
		Message: appErr.Message,
	})
}

// mapError is the single place domain errors become client-facing status
// codes and messages. Anything unrecognized degrades to a generic 500.
func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("Internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("Email, username, and password are required", err)
	case errors.Is(err, user.ErrMissingCredentials):
		return apperr.BadRequest("Email and password are required", err)
	case errors.Is(err, user.ErrAlreadyExists):
		return apperr.BadRequest("User with this email or username already exists", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("Invalid email or password", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("Account is deactivated", err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("User not found", err)
	case errors.Is(err, token.ErrInvalidToken):
		return apperr.Unauthorized("Invalid or expired token", err)
	case errors.Is(err, blog.ErrMissingFields):
		return apperr.BadRequest("Title and content are required", err)
	case errors.Is(err, blog.ErrPostNotFound):
		return apperr.NotFound("Post not found", err)
	case errors.Is(err, category.ErrNameRequired):
		return apperr.BadRequest("Category name is required", err)
	case errors.Is(err, category.ErrAlreadyExists):
		return apperr.BadRequest("Category already exists", err)
	case errors.Is(err, tag.ErrNameRequired):
		return apperr.BadRequest("Tag name is required", err)
	case errors.Is(err, tag.ErrAlreadyExists):
		return apperr.BadRequest("Tag already exists", err)
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("Resource not found", err)
	default:
		return apperr.Internal("Internal server error", err)
	}
}
