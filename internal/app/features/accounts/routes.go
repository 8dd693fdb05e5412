// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"

	"github.com/regionpress/accounthub/internal/app/system/authgate"
)

// Routes mounts all account routes under the path where the caller mounts it.
// Typically: r.Mount("/api/v1/users", accounts.Routes(handler, gate))
func Routes(h *Handler, gate *authgate.Gate) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Lookups
	r.Get("/profile/{id}", h.HandleProfile)
	r.Get("/details/{id}", h.HandleDetails)
	r.Get("/role/{role}", h.HandleUsersByRole)

	// Moderation (admin only)
	r.With(gate.RequireRole("admin")).Post("/promote", h.HandlePromote)
	r.With(gate.RequireRole("admin")).Post("/approve-reject", h.HandleApproveReject)

	// Subscriptions
	r.Post("/subscribe", h.HandleSubscribe)
	r.Patch("/{id}/unsubscribe", h.HandleUnsubscribe)
	r.Get("/{id}/subscription-status", h.HandleSubscriptionStatus)
	r.Get("/{id}/subscriptions", h.HandleSubscriptions)

	// Account maintenance
	r.Patch("/{id}", h.HandleUpdate)
	r.Patch("/{id}/assign-region", h.HandleAssignRegion)
	r.With(gate.RequireAuth).Get("/{id}/status", h.HandleStatus)

	return r
}
