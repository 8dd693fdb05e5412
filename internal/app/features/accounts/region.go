// internal/app/features/accounts/region.go
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandleAssignRegion sets the coverage region for a reporter or editor.
// The body's regionType is the assignment granularity (state, district, city,
// locality), distinct from the capitalized subscription vocabulary.
func (h *Handler) HandleAssignRegion(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req regionRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RegionID == "" || req.RegionType == "" {
		respond.Error(w, http.StatusBadRequest, "Region ID and type are required.")
		return
	}
	if !models.ValidRegionLevel(req.RegionType) {
		respond.Error(w, http.StatusBadRequest, "Invalid region type")
		return
	}
	regionID, err := primitive.ObjectIDFromHex(req.RegionID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid regionId format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.AssignRegion(ctx, id, regionID, req.RegionType)
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrRegionRoleRequired):
		respond.Error(w, http.StatusForbidden, "Only reporters or editors can be assigned regions.")
		return
	case errors.Is(err, userstore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	default:
		h.Log.Error("assign region failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	roleWord := models.RoleReporter
	if user.HasRole(models.RoleEditor) {
		roleWord = models.RoleEditor
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Region assigned to %s successfully.", roleWord),
		"user":    user,
	})
}
