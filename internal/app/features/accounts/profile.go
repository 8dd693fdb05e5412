// internal/app/features/accounts/profile.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
)

// HandleProfile resolves {id} as either a native id or a provider user id.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		respond.Error(w, http.StatusBadRequest, "User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.FindByAnyID(ctx, raw)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("profile lookup failed", zap.String("id", raw), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"user": user})
}

// HandleDetails is the strict provider-id lookup.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	clerkUserID := chi.URLParam(r, "id")
	if clerkUserID == "" {
		respond.Error(w, http.StatusBadRequest, "Clerk User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByClerkID(ctx, clerkUserID)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("details lookup failed", zap.String("clerk_user_id", clerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"user": user})
}
