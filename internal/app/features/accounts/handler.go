// internal/app/features/accounts/handler.go
package accounts

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/regionpress/accounthub/internal/app/store/users"
	"github.com/regionpress/accounthub/internal/app/system/identity"
)

// Handler is the feature-level handler for user accounts.
// It holds the DB handle, the user store, the identity-provider client, and
// the logger provided by DBDeps / Startup.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Identity identity.Client
}

func NewHandler(db *mongo.Database, idc identity.Client, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Identity: idc,
	}
}
