// internal/app/features/accounts/update.go
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
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandleUpdate patches the supplied fields and leaves the rest alone.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req updateRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := userstore.Update{Name: req.Name, Status: req.Status}

	for _, role := range req.Role {
		if !models.ValidRole(role) {
			respond.Error(w, http.StatusBadRequest, "Invalid role")
			return
		}
	}
	upd.Roles = []string(req.Role)

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		respond.Error(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.AssignedRegionID != nil {
		regionID, err := primitive.ObjectIDFromHex(*req.AssignedRegionID)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid regionId format")
			return
		}
		upd.AssignedRegionID = &regionID
	}
	if req.AssignedRegionLevel != nil {
		if !models.ValidRegionLevel(*req.AssignedRegionLevel) {
			respond.Error(w, http.StatusBadRequest, "Invalid region level")
			return
		}
		upd.AssignedRegionLevel = req.AssignedRegionLevel
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.ApplyUpdate(ctx, id, upd)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.Log.Error("update failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User details updated successfully.",
		"user":    user,
	})
}
