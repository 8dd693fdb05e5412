// Package identity talks to the hosted identity provider that owns
// authentication for this platform. The service never sees credentials;
// login verifies that the provider knows the user, then the local record
// supplies role and status.
package identity

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when the provider has no user with the given id.
var ErrUserNotFound = errors.New("identity provider has no user with this id")

// EmailAddress is one address on a provider user record.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// User is the subset of the provider's user object this service reads.
type User struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
}

// PrimaryEmail returns the address the provider marks primary, falling back
// to the first listed address.
func (u *User) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID != "" && e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

// Client fetches user records from the identity provider.
type Client interface {
	User(ctx context.Context, id string) (*User, error)
}
