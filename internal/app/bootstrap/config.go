// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AccountHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, clerk_secret_key, etc.
//   - Environment variables: ACCOUNTHUB_MONGO_URI, ACCOUNTHUB_CLERK_SECRET_KEY, etc.
//   - Command-line flags: --mongo_uri, --clerk_secret_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "account_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Identity provider
	{Name: "clerk_api_url", Default: "https://api.clerk.com/v1", Desc: "Identity provider backend API base URL"},
	{Name: "clerk_secret_key", Default: "", Desc: "Identity provider backend API secret key"},

	// Webhook verification
	{Name: "webhook_signing_secret", Default: "", Desc: "Svix signing secret for provider webhooks"},

	// Bearer-token gate
	{Name: "auth_jwt_secret", Default: "", Desc: "HS256 secret for bearer tokens on protected routes"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ACCOUNTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		ClerkAPIURL:    appValues.String("clerk_api_url"),
		ClerkSecretKey: appValues.String("clerk_secret_key"),

		WebhookSigningSecret: appValues.String("webhook_signing_secret"),

		AuthJWTSecret: appValues.String("auth_jwt_secret"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// AccountHub validates the MongoDB URI format to catch configuration errors
// early, and requires the secrets that protected routes depend on. The
// webhook signing secret may be absent; deliveries are then refused at the
// endpoint rather than at startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ClerkSecretKey == "" {
		return fmt.Errorf("clerk_secret_key is required (login delegates to the identity provider)")
	}
	if appCfg.AuthJWTSecret == "" {
		return fmt.Errorf("auth_jwt_secret is required (protected routes verify bearer tokens)")
	}
	if appCfg.WebhookSigningSecret == "" {
		logger.Warn("webhook_signing_secret is not set; provider webhook deliveries will be refused")
	}

	return nil
}
