// internal/app/features/accounts/moderate.go
//
// Admin moderation: promotion and the approve/reject workflow. Both routes sit
// behind the admin gate.
package accounts

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandlePromote grants an additional role. The target keeps every role it
// already holds; a promoted reader stays a reader too.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidPromotionRole(req.Role) {
		respond.Error(w, http.StatusBadRequest, "Invalid role provided")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Promote(ctx, id, req.Role)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("promote failed", zap.String("user_id", req.UserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User promoted successfully",
		"user":    user,
	})
}

// HandleApproveReject moves a user between the approved and reject statuses.
func (h *Handler) HandleApproveReject(w http.ResponseWriter, r *http.Request) {
	var req approveRejectRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var status, message string
	switch req.Action {
	case "approve":
		status, message = models.StatusApproved, "User approved successfully"
	case "reject":
		status, message = models.StatusReject, "User rejected successfully"
	default:
		respond.Error(w, http.StatusBadRequest, "Invalid action. Use 'approve' or 'reject'")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.SetStatus(ctx, id, status)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("approve/reject failed", zap.String("user_id", req.UserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": message,
		"user":    user,
	})
}
