package domain

// DocumentTypeGeneral is the only document type tag the client sends.
const DocumentTypeGeneral = "general"

// AnalysisRequest carries an image to be analyzed.
type AnalysisRequest struct {
	FileName     string
	ContentType  string
	Image        []byte
	DocumentType string
}

// AnalysisResult is the flattened outcome of a document analysis.
type AnalysisResult struct {
	Success          bool     `json:"success"`
	DocumentType     string   `json:"document_type"`
	ExtractedText    string   `json:"extracted_text"`
	KeyElements      []string `json:"key_elements"`
	IdentifiedIssues []string `json:"identified_issues"`
	Recommendations  []string `json:"recommendations"`
	RawAnalysis      string   `json:"raw_analysis"`
}

// QueryRequest is a legal question tagged with a case category.
type QueryRequest struct {
	Question string   `json:"question"`
	CaseType CaseType `json:"case_type"`
}

// QueryResult is the backend's answer to a legal question.
type QueryResult struct {
	Success  bool   `json:"success"`
	Question string `json:"question"`
	CaseType string `json:"case_type"`
	Answer   string `json:"answer"`
}
