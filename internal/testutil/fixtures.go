package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/regionpress/accounthub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user document directly. Roles defaults to
// {reader, reporter} when nil; status defaults to approved.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, clerkUserID string, roles []string) models.User {
	f.t.Helper()

	if roles == nil {
		roles = models.DefaultRoles()
	}
	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		ClerkUserID:   clerkUserID,
		Name:          name,
		NameCI:        text.Fold(name),
		Email:         email,
		Roles:         roles,
		Status:        models.StatusApproved,
		Subscriptions: []models.Subscription{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts a user holding only the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email, clerkUserID string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, clerkUserID, []string{models.RoleAdmin})
}

// CreateSubscribedUser inserts a user already subscribed to the given regions.
func (f *Fixtures) CreateSubscribedUser(ctx context.Context, name, email, clerkUserID string, subs []models.Subscription) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, name, email, clerkUserID, nil)
	if len(subs) == 0 {
		return user
	}

	if _, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		map[string]any{"$set": map[string]any{"subscriptions": subs}}); err != nil {
		f.t.Fatalf("failed to set test subscriptions: %v", err)
	}
	user.Subscriptions = subs
	return user
}
