// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/identity"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
)

// HandleLogin confirms the user with the identity provider, stamps the local
// last-login time, and echoes the locally held role and status. The provider
// owns credentials; this service never sees them.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil || req.ClerkUserID == "" {
		respond.Error(w, http.StatusBadRequest, "Clerk User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	providerUser, err := h.Identity.User(ctx, req.ClerkUserID)
	if errors.Is(err, identity.ErrUserNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("identity provider lookup failed", zap.String("clerk_user_id", req.ClerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	local, err := h.Users.GetByClerkID(ctx, req.ClerkUserID)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.String("clerk_user_id", req.ClerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.Users.TouchLastLogin(ctx, req.ClerkUserID); err != nil {
		// The login itself succeeded; a missed stamp is not worth failing it.
		h.Log.Warn("failed to stamp last login", zap.String("clerk_user_id", req.ClerkUserID), zap.Error(err))
	}

	email := local.Email
	if email == "" {
		email = providerUser.PrimaryEmail()
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]any{
			"id":     local.ClerkUserID,
			"email":  email,
			"name":   local.Name,
			"role":   local.Roles,
			"status": local.Status,
		},
	})
}
