// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation is idempotent; problems are
aggregated so startup can fail fast with everything that is wrong.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureUsers sets up the users collection:
//   - clerk_user_id unique: one local record per provider identity
//   - email unique: duplicate registration surfaces as a dup-key error
//   - role+status: serves the by-role listing and moderation queries
//
// Subscription-pair uniqueness is NOT an index here; Mongo cannot enforce
// uniqueness of array element pairs within a single document, so the user
// store guards subscription pushes with a filtered update instead.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clerk_user_id", Value: 1}},
			Options: options.Index().SetName("uniq_clerk_user_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("role_status"),
		},
	})
	return err
}
