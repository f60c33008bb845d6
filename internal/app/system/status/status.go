// internal/app/system/status/status.go

// Package status defines the lifecycle values stored on user and group
// documents. Keeping them in one place prevents drift between stores,
// handlers and tests.
package status

// User account statuses.
const (
	Active    = "active"
	Suspended = "suspended"
)

// Group moderation statuses. New groups start as Pending; admins move them
// to Approved or Rejected (no transition guard, re-transition is allowed).
const (
	Pending  = "pending"
	Approved = "approved"
	Rejected = "rejected"
)

// IsValidUser reports whether s is a valid user account status.
func IsValidUser(s string) bool {
	return s == Active || s == Suspended
}

// IsValidGroup reports whether s is a valid group moderation status.
func IsValidGroup(s string) bool {
	return s == Pending || s == Approved || s == Rejected
}
