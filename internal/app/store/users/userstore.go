// Package userstore owns every read and write against the users collection.
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/regionpress/accounthub/internal/app/system/normalize"
	"github.com/regionpress/accounthub/internal/domain/models"
)

var (
	// ErrNotFound is returned when no user matches the given identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a clerk user id is already registered.
	ErrDuplicateUser = errors.New("a user with this clerk id is already registered")
	// ErrDuplicateEmail is returned when the email belongs to another user.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrAlreadySubscribed is returned when the (region, type) pair is already
	// in the user's subscription list.
	ErrAlreadySubscribed = errors.New("user is already subscribed to this region")
	// ErrNotSubscribed is returned when no subscription matched the pair.
	ErrNotSubscribed = errors.New("region not found in subscriptions")
	// ErrRegionRoleRequired is returned when a region is assigned to a user
	// who is neither a reporter nor an editor.
	ErrRegionRoleRequired = errors.New("only reporters or editors can be assigned regions")
	// ErrInvalidRole is returned when a role is outside the known set; callers
	// that forward untrusted payloads treat it as malformed input.
	ErrInvalidRole = errors.New(`role must be "reader"|"reporter"|"editor"|"admin"`)

	errMissingClerkID = errors.New("clerk user id is required")
	errMissingEmail   = errors.New("email is required")
	errMissingName    = errors.New("name is required")
	errBadStatus      = errors.New(`status must be "pending"|"approved"|"reject"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing and validating fields.
// An empty role set defaults to {reader, reporter}; an empty status to
// approved. Duplicate clerk ids and emails map to the sentinel errors.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.ClerkUserID = strings.TrimSpace(u.ClerkUserID)
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	if len(u.Roles) == 0 {
		u.Roles = models.DefaultRoles()
	}
	if u.Status == "" {
		u.Status = models.StatusApproved
	}
	if u.Subscriptions == nil {
		u.Subscriptions = []models.Subscription{}
	}

	switch {
	case u.ClerkUserID == "":
		return models.User{}, errMissingClerkID
	case u.Email == "":
		return models.User{}, errMissingEmail
	case u.Name == "":
		return models.User{}, errMissingName
	}
	for _, r := range u.Roles {
		if !models.ValidRole(r) {
			return models.User{}, ErrInvalidRole
		}
	}
	if !models.ValidStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, s.dupError(ctx, u.ClerkUserID)
		}
		return models.User{}, err
	}
	return u, nil
}

// dupError decides which unique index a duplicate-key error came from.
func (s *Store) dupError(ctx context.Context, clerkUserID string) error {
	err := s.c.FindOne(ctx, bson.M{"clerk_user_id": clerkUserID}).Err()
	switch {
	case err == nil:
		return ErrDuplicateUser
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrDuplicateEmail
	default:
		return err
	}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// GetByClerkID loads a user by the identity provider's id.
func (s *Store) GetByClerkID(ctx context.Context, clerkUserID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"clerk_user_id": clerkUserID}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByAnyID resolves raw as either a native ObjectID hex or a clerk user
// id. Hex-shaped input matches on either field; anything else matches on
// clerk_user_id alone.
func (s *Store) FindByAnyID(ctx context.Context, raw string) (*models.User, error) {
	filter := bson.M{"clerk_user_id": raw}
	if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
		filter = bson.M{"$or": bson.A{
			bson.M{"_id": oid},
			bson.M{"clerk_user_id": raw},
		}}
	}

	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Promote grants role to the user. The role set is additive: promoting a
// reader to reporter leaves reader in place.
func (s *Store) Promote(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"role": role},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

// SetStatus moves the user to the given account status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.User, error) {
	if !models.ValidStatus(status) {
		return nil, errBadStatus
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
}

// Update holds the fields a partial update may touch. Nil fields are left
// untouched.
type Update struct {
	Name                *string
	Roles               []string
	Status              *string
	AssignedRegionID    *primitive.ObjectID
	AssignedRegionLevel *string
}

// ApplyUpdate patches the given fields and returns the updated user.
func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if len(upd.Roles) > 0 {
		for _, r := range upd.Roles {
			if !models.ValidRole(r) {
				return nil, ErrInvalidRole
			}
		}
		set["role"] = upd.Roles
	}
	if upd.Status != nil {
		if !models.ValidStatus(*upd.Status) {
			return nil, errBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.AssignedRegionID != nil {
		set["assigned_region_id"] = *upd.AssignedRegionID
	}
	if upd.AssignedRegionLevel != nil {
		set["assigned_region_level"] = *upd.AssignedRegionLevel
	}

	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// AssignRegion sets the coverage region for a reporter or editor. The role
// guard is part of the update filter, so a concurrent role change cannot slip
// an assignment onto a reader.
func (s *Store) AssignRegion(ctx context.Context, id primitive.ObjectID, regionID primitive.ObjectID, level string) (*models.User, error) {
	u, err := s.findOneAndUpdate(ctx,
		bson.M{"_id": id, "role": bson.M{"$in": bson.A{models.RoleEditor, models.RoleReporter}}},
		bson.M{"$set": bson.M{
			"assigned_region_id":    regionID,
			"assigned_region_level": level,
			"updated_at":            time.Now().UTC(),
		}})
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing user from a role mismatch.
		if _, getErr := s.GetByID(ctx, id); getErr == nil {
			return nil, ErrRegionRoleRequired
		}
		return nil, ErrNotFound
	}
	return u, err
}

// ListByRole returns every user whose role set contains role, ordered by
// folded name.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": role},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// TouchLastLogin stamps last_login_at for the given clerk user id.
func (s *Store) TouchLastLogin(ctx context.Context, clerkUserID string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"clerk_user_id": clerkUserID},
		bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
