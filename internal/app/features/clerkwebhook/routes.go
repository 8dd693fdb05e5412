// internal/app/features/clerkwebhook/routes.go
package clerkwebhook

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the webhook endpoint under the path where the caller mounts
// it. Typically: r.Mount("/api/v1/webhook", clerkwebhook.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/clerk", h.HandleClerkWebhook)
	return r
}
