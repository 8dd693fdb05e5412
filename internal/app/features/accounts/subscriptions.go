// internal/app/features/accounts/subscriptions.go
package accounts

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// HandleSubscribe adds a region subscription for the user named in the body.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidRegionType(req.RegionType) {
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

	user, err := h.Users.Subscribe(ctx, req.ClerkUserID, regionID, req.RegionType)
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, userstore.ErrAlreadySubscribed):
		respond.Error(w, http.StatusBadRequest, "User is already subscribed to this region")
		return
	default:
		h.Log.Error("subscribe failed", zap.String("clerk_user_id", req.ClerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User subscribed to region successfully",
		"user":    user,
	})
}

// HandleUnsubscribe drops the matching subscription for the user whose
// provider id is in the path.
func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	clerkUserID := chi.URLParam(r, "id")

	var req regionRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RegionID == "" || req.RegionType == "" {
		respond.Error(w, http.StatusBadRequest, "Region ID and type are required.")
		return
	}
	regionID, err := primitive.ObjectIDFromHex(req.RegionID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid regionId format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subs, err := h.Users.Unsubscribe(ctx, clerkUserID, regionID, req.RegionType)
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found.")
		return
	case errors.Is(err, userstore.ErrNotSubscribed):
		respond.Error(w, http.StatusBadRequest, "Region not found in subscriptions.")
		return
	default:
		h.Log.Error("unsubscribe failed", zap.String("clerk_user_id", clerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error.")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message":       "Unsubscribed from region successfully.",
		"subscriptions": subs,
	})
}

// HandleSubscriptionStatus reports whether the user is subscribed to the
// (regionId, regionType) pair passed as query parameters.
func (h *Handler) HandleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	clerkUserID := chi.URLParam(r, "id")
	regionID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("regionId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid regionId format")
		return
	}
	regionType := r.URL.Query().Get("regionType")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Users.FindSubscription(ctx, clerkUserID, regionID, regionType)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("subscription status failed", zap.String("clerk_user_id", clerkUserID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if sub == nil {
		respond.JSON(w, http.StatusOK, map[string]any{
			"subscribed": false,
			"message":    "User is not subscribed to this region.",
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"subscribed": true,
		"message":    "User is subscribed to this region.",
		"regionId":   sub.RegionID,
		"regionType": sub.RegionType,
	})
}

type subscriptionSummary struct {
	RegionID     primitive.ObjectID `json:"regionId"`
	RegionType   string             `json:"regionType"`
	SubscribedAt time.Time          `json:"subscribedAt"`
}

// HandleSubscriptions lists the user's subscriptions as a bare array.
func (h *Handler) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subs, err := h.Users.SubscriptionsByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("subscriptions lookup failed", zap.String("user_id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	out := make([]subscriptionSummary, 0, len(subs))
	for _, s := range subs {
		out = append(out, subscriptionSummary{
			RegionID:     s.RegionID,
			RegionType:   s.RegionType,
			SubscribedAt: s.SubscribedAt,
		})
	}
	respond.JSON(w, http.StatusOK, out)
}
