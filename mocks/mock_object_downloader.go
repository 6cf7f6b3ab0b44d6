package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectDownloader is a mock implementation of port.ObjectDownloader.
type MockObjectDownloader struct {
	mock.Mock
}

func (m *MockObjectDownloader) Download(ctx context.Context, bucket, key string, dst io.WriterAt) (int64, error) {
	args := m.Called(ctx, bucket, key, dst)
	return args.Get(0).(int64), args.Error(1)
}
