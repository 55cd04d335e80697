package services

import (
	"context"
	"io"
	"net/url"
)

// Backend is the slice of the upstream client the services use. Narrowing it
// to an interface keeps the services testable without a live backend.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	Send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error
	Fetch(ctx context.Context, path string) ([]byte, string, error)
}
