package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ainoggo/internal/port"
)

// MockImageStager is a mock implementation of port.ImageStager.
type MockImageStager struct {
	mock.Mock
}

func (m *MockImageStager) Stage(ctx context.Context, src port.ImageSource) (*port.StagedImage, error) {
	args := m.Called(ctx, src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StagedImage), args.Error(1)
}

func (m *MockImageStager) Remove(img *port.StagedImage) {
	m.Called(img)
}
