// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role tags a user can hold. A user holds a *set* of roles; registration and
// identity-provider sync default new users to {reader, reporter}.
const (
	RoleReader   = "reader"
	RoleReporter = "reporter"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

// Account statuses. New accounts start approved; the approve/reject workflow
// moves reporters between pending, approved, and reject.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusReject   = "reject"
)

// Region granularities for coverage assignment (lowercase) and for
// subscriptions (capitalized, matching the public API vocabulary).
const (
	RegionLevelState    = "state"
	RegionLevelDistrict = "district"
	RegionLevelCity     = "city"
	RegionLevelLocality = "locality"

	RegionTypeState    = "State"
	RegionTypeDistrict = "District"
	RegionTypeCity     = "City"
	RegionTypeLocality = "Locality"
)

// DefaultRoles returns the role set assigned when none is supplied.
func DefaultRoles() []string {
	return []string{RoleReader, RoleReporter}
}

// ValidRole reports whether role is one of the four known tags.
func ValidRole(role string) bool {
	switch role {
	case RoleReader, RoleReporter, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// ValidRegistrationRole reports whether a self-registering user may pick role.
// Editor is promotion-only.
func ValidRegistrationRole(role string) bool {
	switch role {
	case RoleReader, RoleReporter, RoleAdmin:
		return true
	}
	return false
}

// ValidPromotionRole reports whether role can be granted through promotion.
func ValidPromotionRole(role string) bool {
	switch role {
	case RoleReporter, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// ValidStatus reports whether status is a known account status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusReject:
		return true
	}
	return false
}

// ValidRegionLevel reports whether level is a known assignment granularity.
func ValidRegionLevel(level string) bool {
	switch level {
	case RegionLevelState, RegionLevelDistrict, RegionLevelCity, RegionLevelLocality:
		return true
	}
	return false
}

// ValidRegionType reports whether t is a known subscription granularity.
func ValidRegionType(t string) bool {
	switch t {
	case RegionTypeState, RegionTypeDistrict, RegionTypeCity, RegionTypeLocality:
		return true
	}
	return false
}

// Subscription is a user's standing interest in one region. Entries are
// unique per (RegionID, RegionType) pair within a user document.
type Subscription struct {
	RegionID     primitive.ObjectID `bson:"region_id" json:"regionId"`
	RegionType   string             `bson:"region_type" json:"regionType"`
	SubscribedAt time.Time          `bson:"subscribed_at" json:"subscribedAt"`
	ExpiresAt    *time.Time         `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}

// User is one end-user account. ClerkUserID is the identity provider's
// identifier and the join key for webhook sync; it never changes once set.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClerkUserID string             `bson:"clerk_user_id" json:"clerkUserId"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email       string             `bson:"email" json:"email"`
	Roles       []string           `bson:"role" json:"role"`
	Status      string             `bson:"status" json:"status"`

	AssignedRegionID    *primitive.ObjectID `bson:"assigned_region_id,omitempty" json:"assignedRegionId,omitempty"`
	AssignedRegionLevel string              `bson:"assigned_region_level,omitempty" json:"assignedRegionLevel,omitempty"`

	Subscriptions []Subscription `bson:"subscriptions" json:"subscriptions"`

	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// HasRole reports whether the user's role set contains role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FindSubscription returns the subscription matching the (regionID, regionType)
// pair, or nil if the user is not subscribed.
func (u *User) FindSubscription(regionID primitive.ObjectID, regionType string) *Subscription {
	for i := range u.Subscriptions {
		s := &u.Subscriptions[i]
		if s.RegionID == regionID && s.RegionType == regionType {
			return s
		}
	}
	return nil
}
