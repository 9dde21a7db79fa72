package repository

import "context"

// TemplateSource provides the invoice template. Every Load returns a fresh copy
// the caller may keep.
type TemplateSource interface {
	Load(ctx context.Context) ([]byte, error)
	// Location describes where the template comes from, for logs.
	Location() string
}
