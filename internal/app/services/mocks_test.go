package services

import (
	"context"
	"io"
	"net/url"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a testify mock of the Backend interface.
type MockBackend struct {
	mock.Mock
}

var _ Backend = (*MockBackend)(nil)

func (m *MockBackend) Get(ctx context.Context, path string, query url.Values, out any) error {
	args := m.Called(ctx, path, query, out)
	return args.Error(0)
}

func (m *MockBackend) Post(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockBackend) Put(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body, out)
	return args.Error(0)
}

func (m *MockBackend) Delete(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	return args.Error(0)
}

func (m *MockBackend) Send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	args := m.Called(ctx, method, path, query, body, contentType, out)
	return args.Error(0)
}

func (m *MockBackend) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}
