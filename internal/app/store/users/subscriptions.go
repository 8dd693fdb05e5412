// internal/app/store/users/subscriptions.go
package userstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/regionpress/accounthub/internal/domain/models"
)

// Subscribe appends a (region, type) subscription for the user with the given
// clerk id. The push is guarded by the update filter, so two concurrent
// subscribes for the same pair cannot both land: the losing call sees the
// entry already present and gets ErrAlreadySubscribed.
func (s *Store) Subscribe(ctx context.Context, clerkUserID string, regionID primitive.ObjectID, regionType string) (*models.User, error) {
	sub := models.Subscription{
		RegionID:     regionID,
		RegionType:   regionType,
		SubscribedAt: time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"clerk_user_id": clerkUserID,
			"subscriptions": bson.M{"$not": bson.M{"$elemMatch": bson.M{
				"region_id":   regionID,
				"region_type": regionType,
			}}},
		},
		bson.M{
			"$push": bson.M{"subscriptions": sub},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		// Either the user does not exist or the pair is already present.
		if _, err := s.GetByClerkID(ctx, clerkUserID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadySubscribed
	}

	return s.GetByClerkID(ctx, clerkUserID)
}

// Unsubscribe removes the matching subscription entry. ErrNotSubscribed is
// returned when the user exists but no entry matched the pair. The pair is
// part of the update filter: the $set stamp would otherwise count as a
// modification even when $pull removed nothing.
func (s *Store) Unsubscribe(ctx context.Context, clerkUserID string, regionID primitive.ObjectID, regionType string) ([]models.Subscription, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"clerk_user_id": clerkUserID,
			"subscriptions": bson.M{"$elemMatch": bson.M{
				"region_id":   regionID,
				"region_type": regionType,
			}},
		},
		bson.M{
			"$pull": bson.M{"subscriptions": bson.M{
				"region_id":   regionID,
				"region_type": regionType,
			}},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Either the user does not exist or the pair is not in the list.
		if _, err := s.GetByClerkID(ctx, clerkUserID); err != nil {
			return nil, err
		}
		return nil, ErrNotSubscribed
	}

	u, err := s.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}
	return u.Subscriptions, nil
}

// FindSubscription reports the user's subscription matching the pair, or nil
// when the user is not subscribed. ErrNotFound when the user is absent.
func (s *Store) FindSubscription(ctx context.Context, clerkUserID string, regionID primitive.ObjectID, regionType string) (*models.Subscription, error) {
	u, err := s.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}
	return u.FindSubscription(regionID, regionType), nil
}

// SubscriptionsByID returns the full subscription list for a native id.
func (s *Store) SubscriptionsByID(ctx context.Context, id primitive.ObjectID) ([]models.Subscription, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Subscriptions == nil {
		return []models.Subscription{}, nil
	}
	return u.Subscriptions, nil
}
