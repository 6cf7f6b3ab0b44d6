package port

import (
	"context"

	"ainoggo/internal/domain"
)

// AnalysisAPI abstracts the remote document-analysis and legal-query backend.
type AnalysisAPI interface {
	AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	SubmitQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error)
}
