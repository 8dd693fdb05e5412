// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: core handles ports, TLS,
// logging level, and the like.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity provider (Clerk) configuration
	ClerkAPIURL    string // Base URL of the provider's backend API
	ClerkSecretKey string // Secret key for the provider's backend API

	// Webhook signature verification
	WebhookSigningSecret string // Svix signing secret from the provider dashboard

	// Bearer-token gate for protected routes
	AuthJWTSecret string // HS256 signing secret shared with the session layer
}
