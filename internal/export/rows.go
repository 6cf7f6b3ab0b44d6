package export

import (
	"strconv"

	"ainoggo/internal/domain"
)

// columns defines the header row shared by every export format.
var columns = []string{"Section", "Value"}

// Row is one labelled line of an exported result.
type Row struct {
	Section string
	Value   string
}

// AnalysisRows flattens a document analysis. List fields produce one row per item.
func AnalysisRows(r *domain.AnalysisResult) []Row {
	rows := []Row{
		{"Success", formatBool(r.Success)},
		{"Document Type", r.DocumentType},
		{"Extracted Text", r.ExtractedText},
	}
	rows = appendList(rows, "Key Element", r.KeyElements)
	rows = appendList(rows, "Identified Issue", r.IdentifiedIssues)
	rows = appendList(rows, "Recommendation", r.Recommendations)
	rows = append(rows, Row{"Raw Analysis", r.RawAnalysis})
	return rows
}

// QueryRows flattens a legal answer.
func QueryRows(r *domain.QueryResult) []Row {
	return []Row{
		{"Success", formatBool(r.Success)},
		{"Question", r.Question},
		{"Case Type", r.CaseType},
		{"Answer", r.Answer},
	}
}

func appendList(rows []Row, label string, items []string) []Row {
	for i, item := range items {
		rows = append(rows, Row{label + " " + strconv.Itoa(i+1), item})
	}
	return rows
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
