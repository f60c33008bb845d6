// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/brainhive/brainhive/internal/app/features/admin"
	authfeature "github.com/brainhive/brainhive/internal/app/features/auth"
	groupsfeature "github.com/brainhive/brainhive/internal/app/features/groups"
	healthfeature "github.com/brainhive/brainhive/internal/app/features/health"
	materialsfeature "github.com/brainhive/brainhive/internal/app/features/materials"
	notifyfeature "github.com/brainhive/brainhive/internal/app/features/notify"
	profilefeature "github.com/brainhive/brainhive/internal/app/features/profile"
	userstore "github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/mailer"
	"github.com/brainhive/brainhive/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. BrainHive builds the token manager and
// the per-request authenticator, then registers every feature's routes on
// one flat chi router, matching the paths the existing clients call.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.TokenTTL)

	authenticator := auth.NewAuthenticator(tokens, logger)

	// Fetch fresh account state on every authenticated request, so
	// suspensions take effect immediately regardless of token validity.
	authenticator.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthfeature.Register(r, healthfeature.NewHandler(deps.MongoClient))

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Registration and login
	authfeature.Register(r, authfeature.NewHandler(deps.MongoDatabase, tokens, logger))

	// Signed-in user profile
	profilefeature.Register(r, profilefeature.NewHandler(deps.MongoDatabase, logger), authenticator)

	// Group aggregate: listing, creation, membership, moderation, messages
	groupsfeature.Register(r, groupsfeature.NewHandler(deps.MongoDatabase, logger), authenticator)

	// File materials
	materialsHandler, err := materialsfeature.NewHandler(deps.MongoDatabase, appCfg.MaxUploadBytes, logger)
	if err != nil {
		logger.Error("materials handler init failed", zap.Error(err))
		return nil, err
	}
	materialsfeature.Register(r, materialsHandler, authenticator)

	// Admin user directory
	adminfeature.Register(r, adminfeature.NewHandler(deps.MongoDatabase, logger), authenticator)

	// Group announcement email
	notifyfeature.Register(r, notifyfeature.NewHandler(deps.MongoDatabase, mail, appCfg.SiteName, logger), authenticator)

	return r, nil
}
