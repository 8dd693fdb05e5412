// internal/app/features/accounts/status.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
)

// HandleStatus returns the account status alone. The route requires a valid
// bearer token but no particular role.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.Log.Error("status lookup failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch user status.")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"status": user.Status})
}
