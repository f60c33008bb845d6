// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, request size limits); AppConfig is everything specific to
// BrainHive: the Mongo connection, token signing, SMTP transport, and
// upload limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the driver pool

	// Bearer token configuration
	JWTSecret string        // HMAC signing secret (must be strong in production)
	JWTIssuer string        // Issuer claim stamped on every token
	TokenTTL  time.Duration // Token lifetime (default 15m)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// SiteName appears in outbound email signatures.
	SiteName string

	// MaxUploadBytes caps a single material upload.
	MaxUploadBytes int64
}
