// internal/app/features/clerkwebhook/event.go
package clerkwebhook

import (
	"strings"

	"github.com/regionpress/accounthub/internal/domain/models"
)

// Event types this adapter acts on. Anything else is acknowledged and
// dropped.
const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

// Event is the provider's webhook envelope.
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the user fields this service consumes.
type EventData struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	EmailAddresses []eventEmail    `json:"email_addresses"`
	Role           models.RoleList `json:"role"`
}

type eventEmail struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first email the payload carries, or "".
func (d *EventData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName joins the name parts, tolerating a missing one.
func (d *EventData) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
