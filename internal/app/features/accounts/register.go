// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandleRegister creates the local record for a user the identity provider
// already knows. The display name is the combined first and last name.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.ClerkUserID == "" {
		respond.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Role != "" && !models.ValidRegistrationRole(req.Role) {
		respond.Error(w, http.StatusBadRequest, "Invalid role selected")
		return
	}

	var roles []string
	if req.Role != "" {
		roles = []string{req.Role}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		ClerkUserID: req.ClerkUserID,
		Email:       req.Email,
		Name:        req.FirstName + " " + req.LastName,
		Roles:       roles,
	})
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrDuplicateUser):
		respond.Error(w, http.StatusBadRequest, "User already registered")
		return
	case errors.Is(err, userstore.ErrDuplicateEmail):
		respond.Error(w, http.StatusBadRequest, "A user with this email already exists")
		return
	default:
		h.Log.Error("register failed", zap.String("clerk_user_id", req.ClerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}
