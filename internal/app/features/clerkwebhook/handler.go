// internal/app/features/clerkwebhook/handler.go
//
// Inbound sync from the identity provider. The provider is the source of
// truth for who exists and what their email and name are; this adapter folds
// its user.created / user.updated / user.deleted events into the local users
// collection.
package clerkwebhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/respond"
	"github.com/regionpress/accounthub/internal/app/system/timeouts"
)

// Handler is the feature-level handler for provider webhooks. Verifier is nil
// when no signing secret is configured; deliveries are then refused outright.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Verifier Verifier
}

func NewHandler(db *mongo.Database, verifier Verifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Verifier: verifier,
	}
}

func ack(w http.ResponseWriter, status int, success bool, message string) {
	respond.JSON(w, status, map[string]any{
		"success": success,
		"message": message,
	})
}

// HandleClerkWebhook verifies and applies one provider delivery.
func (h *Handler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	if h.Verifier == nil {
		h.Log.Error("webhook delivery refused: no signing secret configured")
		ack(w, http.StatusInternalServerError, false, "Error: Webhook signing secret is not configured")
		return
	}

	if r.Header.Get("svix-id") == "" ||
		r.Header.Get("svix-timestamp") == "" ||
		r.Header.Get("svix-signature") == "" {
		ack(w, http.StatusBadRequest, false, "Error: Missing svix headers")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		ack(w, http.StatusBadRequest, false, "Error: Could not read payload")
		return
	}

	if err := h.Verifier.Verify(payload, r.Header); err != nil {
		h.Log.Warn("webhook verification failed", zap.Error(err))
		ack(w, http.StatusBadRequest, false, "Webhook verification failed")
		return
	}

	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		ack(w, http.StatusBadRequest, false, "Error: Invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.apply(ctx, evt); err != nil {
		if errors.Is(err, errMissingEmail) {
			ack(w, http.StatusBadRequest, false, "Error: Email not found in the payload")
			return
		}
		if errors.Is(err, userstore.ErrInvalidRole) {
			ack(w, http.StatusBadRequest, false, "Error: Invalid role in the payload")
			return
		}
		h.Log.Error("webhook processing failed",
			zap.String("event_type", evt.Type),
			zap.String("clerk_user_id", evt.Data.ID),
			zap.Error(err))
		ack(w, http.StatusInternalServerError, false, "Error processing webhook")
		return
	}

	ack(w, http.StatusOK, true, "Webhook received and processed successfully")
}

var errMissingEmail = errors.New("email not found in payload")

func (h *Handler) apply(ctx context.Context, evt Event) error {
	switch evt.Type {
	case eventUserCreated:
		if evt.Data.PrimaryEmail() == "" {
			return errMissingEmail
		}
		created, err := h.Users.SyncCreated(ctx, userstore.IdentityUser{
			ClerkUserID: evt.Data.ID,
			Email:       evt.Data.PrimaryEmail(),
			Name:        evt.Data.FullName(),
			Roles:       evt.Data.Role,
		})
		if err != nil {
			return err
		}
		if created {
			h.Log.Info("user created from webhook", zap.String("clerk_user_id", evt.Data.ID))
		}
		return nil

	case eventUserUpdated:
		if evt.Data.PrimaryEmail() == "" {
			return errMissingEmail
		}
		return h.Users.SyncUpdated(ctx, userstore.IdentityUser{
			ClerkUserID: evt.Data.ID,
			Email:       evt.Data.PrimaryEmail(),
			Name:        evt.Data.FullName(),
			Roles:       evt.Data.Role,
		})

	case eventUserDeleted:
		deleted, err := h.Users.SyncDeleted(ctx, evt.Data.ID)
		if err != nil {
			return err
		}
		if deleted {
			h.Log.Info("user deleted from webhook", zap.String("clerk_user_id", evt.Data.ID))
		}
		return nil
	}

	// Unknown event types are acknowledged so the provider stops retrying.
	return nil
}
