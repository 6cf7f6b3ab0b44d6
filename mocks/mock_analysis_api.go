package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ainoggo/internal/domain"
)

// MockAnalysisAPI is a mock implementation of port.AnalysisAPI.
type MockAnalysisAPI struct {
	mock.Mock
}

func (m *MockAnalysisAPI) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisAPI) SubmitQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResult), args.Error(1)
}
