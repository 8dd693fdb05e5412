// internal/app/features/accounts/types.go
package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/regionpress/accounthub/internal/domain/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	ClerkUserID string `json:"clerkUserId"`
	Role        string `json:"role"`
}

type loginRequest struct {
	ClerkUserID string `json:"clerkUserId"`
}

type promoteRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type approveRejectRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

type subscribeRequest struct {
	ClerkUserID string `json:"clerkUserId"`
	RegionID    string `json:"regionId"`
	RegionType  string `json:"regionType"`
}

type regionRequest struct {
	RegionID   string `json:"regionId"`
	RegionType string `json:"regionType"`
}

type updateRequest struct {
	Name                *string         `json:"name"`
	Role                models.RoleList `json:"role"`
	Status              *string         `json:"status"`
	AssignedRegionID    *string         `json:"assignedRegionId"`
	AssignedRegionLevel *string         `json:"assignedRegionLevel"`
}

func decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
