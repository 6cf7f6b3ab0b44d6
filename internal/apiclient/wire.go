package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"

	"ainoggo/internal/domain"
)

// analyzeResponse models the /api/document/analyze response body.
type analyzeResponse struct {
	Success      *bool  `json:"success"`
	DocumentType string `json:"document_type"`
	Analysis     *struct {
		ExtractedText   string `json:"extracted_text"`
		ContentAnalysis struct {
			DocumentType string   `json:"document_type"`
			KeyElements  []string `json:"key_elements"`
		} `json:"content_analysis"`
		IdentifiedIssues  []string `json:"identified_issues"`
		Recommendations   []string `json:"recommendations"`
		GeminiRawAnalysis string   `json:"gemini_raw_analysis"`
	} `json:"analysis"`
}

// queryResponse models the /api/query response body.
type queryResponse struct {
	Success  *bool  `json:"success"`
	Question string `json:"question"`
	CaseType string `json:"case_type"`
	Answer   string `json:"answer"`
}

type queryRequest struct {
	Question string `json:"question"`
	CaseType string `json:"case_type"`
}

// DecodeAnalysisResponse maps an analyze response body onto the flat domain result.
func DecodeAnalysisResponse(body []byte) (*domain.AnalysisResult, error) {
	var resp analyzeResponse
	if err := decodeStrictJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.Success == nil {
		return nil, errors.New("missing success field")
	}
	if resp.Analysis == nil {
		return nil, errors.New("missing analysis object")
	}

	a := resp.Analysis
	docType := resp.DocumentType
	if docType == "" {
		docType = a.ContentAnalysis.DocumentType
	}
	return &domain.AnalysisResult{
		Success:          *resp.Success,
		DocumentType:     docType,
		ExtractedText:    a.ExtractedText,
		KeyElements:      a.ContentAnalysis.KeyElements,
		IdentifiedIssues: a.IdentifiedIssues,
		Recommendations:  a.Recommendations,
		RawAnalysis:      a.GeminiRawAnalysis,
	}, nil
}

// DecodeQueryResponse maps a query response body onto the domain result.
func DecodeQueryResponse(body []byte) (*domain.QueryResult, error) {
	var resp queryResponse
	if err := decodeStrictJSON(body, &resp); err != nil {
		return nil, err
	}
	if resp.Success == nil {
		return nil, errors.New("missing success field")
	}
	return &domain.QueryResult{
		Success:  *resp.Success,
		Question: resp.Question,
		CaseType: resp.CaseType,
		Answer:   resp.Answer,
	}, nil
}

// decodeStrictJSON requires body to hold exactly one JSON object.
func decodeStrictJSON(body []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errors.New("empty body")
	}
	if trimmed[0] != '{' {
		return errors.New("body is not a JSON object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON object")
	}
	return nil
}
