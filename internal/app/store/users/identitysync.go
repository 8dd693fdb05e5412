// internal/app/store/users/identitysync.go
//
// Webhook-driven sync with the external identity provider. The provider owns
// clerk_user_id, email, and the name parts; local role and status survive
// provider updates unless the event explicitly carries roles.
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/regionpress/accounthub/internal/app/system/normalize"
	"github.com/regionpress/accounthub/internal/domain/models"
)

// IdentityUser is the slice of a provider event this store consumes.
type IdentityUser struct {
	ClerkUserID string
	Email       string
	Name        string
	Roles       []string // empty means "not carried by the event"
}

// SyncCreated creates a local record for a provider-created user. A record
// that already exists (including one created concurrently) is left untouched;
// the bool reports whether a record was created.
func (s *Store) SyncCreated(ctx context.Context, in IdentityUser) (bool, error) {
	if _, err := s.GetByClerkID(ctx, in.ClerkUserID); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	_, err := s.Create(ctx, models.User{
		ClerkUserID: in.ClerkUserID,
		Email:       in.Email,
		Name:        in.Name,
		Roles:       in.Roles,
	})
	if errors.Is(err, ErrDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SyncUpdated patches email and name from the provider. Roles are replaced
// only when the event carries them; status is never touched. A missing local
// record is a silent no-op.
func (s *Store) SyncUpdated(ctx context.Context, in IdentityUser) error {
	name := normalize.Name(in.Name)
	set := bson.M{
		"email":      normalize.Email(in.Email),
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": time.Now().UTC(),
	}
	if len(in.Roles) > 0 {
		for _, r := range in.Roles {
			if !models.ValidRole(r) {
				return ErrInvalidRole
			}
		}
		set["role"] = in.Roles
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"clerk_user_id": in.ClerkUserID}, bson.M{"$set": set})
	return err
}

// SyncDeleted removes the record for a provider-deleted user. The bool
// reports whether a record was removed; an unknown id is a no-op.
func (s *Store) SyncDeleted(ctx context.Context, clerkUserID string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"clerk_user_id": clerkUserID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
