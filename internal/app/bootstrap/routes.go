// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/regionpress/accounthub/internal/app/features/accounts"
	clerkwebhookfeature "github.com/regionpress/accounthub/internal/app/features/clerkwebhook"
	healthfeature "github.com/regionpress/accounthub/internal/app/features/health"
	"github.com/regionpress/accounthub/internal/app/system/authgate"
	"github.com/regionpress/accounthub/internal/app/system/identity"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. AccountHub mounts the health endpoint,
// the account API, and the identity-provider webhook adapter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	gate := authgate.New(appCfg.AuthJWTSecret, logger)
	idc := identity.NewClerkClient(appCfg.ClerkAPIURL, appCfg.ClerkSecretKey)

	// A missing signing secret leaves the verifier nil; the webhook handler
	// then refuses deliveries instead of accepting them unverified.
	var verifier clerkwebhookfeature.Verifier
	if appCfg.WebhookSigningSecret != "" {
		v, err := clerkwebhookfeature.NewSvixVerifier(appCfg.WebhookSigningSecret)
		if err != nil {
			logger.Error("webhook verifier init failed", zap.Error(err))
			return nil, err
		}
		verifier = v
	} else {
		logger.Warn("no webhook signing secret configured; webhook deliveries will be refused")
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account API
	accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, idc, logger)
	r.Mount("/api/v1/users", accountsfeature.Routes(accountsHandler, gate))

	// Identity-provider webhook adapter
	webhookHandler := clerkwebhookfeature.NewHandler(deps.MongoDatabase, verifier, logger)
	r.Mount("/api/v1/webhook", clerkwebhookfeature.Routes(webhookHandler))

	return r, nil
}
