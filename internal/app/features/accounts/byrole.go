// internal/app/features/accounts/byrole.go
package accounts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandleUsersByRole lists every user whose role set contains {role}.
func (h *Handler) HandleUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	if !models.ValidRole(role) {
		respond.Error(w, http.StatusBadRequest, "Invalid role.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		h.Log.Error("list by role failed", zap.String("role", role), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch users by role.")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"users": users})
}
