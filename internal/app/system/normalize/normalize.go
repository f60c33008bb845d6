// internal/app/system/normalize/normalize.go

// Package normalize provides input normalizers applied before validation
// and storage.
package normalize

import "strings"

// Name trims leading/trailing whitespace and collapses internal runs of
// whitespace to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Email trims surrounding whitespace. Case is preserved: emails are unique
// and compared exactly as stored.
func Email(s string) string {
	return strings.TrimSpace(s)
}

// Text trims surrounding whitespace from free-form text such as message
// bodies and descriptions.
func Text(s string) string {
	return strings.TrimSpace(s)
}
