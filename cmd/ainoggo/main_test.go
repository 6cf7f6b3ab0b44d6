package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainoggo/internal/config"
	"ainoggo/internal/export"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		API:     config.APIConfig{BaseURL: backend},
		Staging: config.StagingConfig{Dir: t.TempDir()},
	}
}

func backend(t *testing.T, path, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskCmd_PrintsAnswerAndExports(t *testing.T) {
	srv := backend(t, "/api/query", `{"success":true,"question":"q","case_type":"family","answer":"Talk to a family court."}`, http.StatusOK)
	out := filepath.Join(t.TempDir(), "answer.csv")
	var stdout bytes.Buffer

	code := askCmd(context.Background(), testConfig(t, srv.URL), []string{"-case", "family", "-export", out, "Can", "I", "divorce?"}, strings.NewReader(""), &stdout)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Talk to a family court.\n", stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, export.BOM))).ReadAll()
	require.NoError(t, err)
	assert.Contains(t, records, []string{"Case Type", "family"})
}

func TestAskCmd_ReadsQuestionFromStdin(t *testing.T) {
	srv := backend(t, "/api/query", `{"success":true,"question":"q","case_type":"general","answer":""}`, http.StatusOK)
	var stdout bytes.Buffer

	code := askCmd(context.Background(), testConfig(t, srv.URL), nil, strings.NewReader("Is this legal?\n"), &stdout)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Enter your question: no answer found\n", stdout.String())
}

func TestAskCmd_Failures(t *testing.T) {
	srv := backend(t, "/api/query", `oops`, http.StatusBadGateway)
	var stdout bytes.Buffer

	code := askCmd(context.Background(), testConfig(t, srv.URL), []string{"q"}, strings.NewReader(""), &stdout)
	assert.Equal(t, exitFailed, code)
	assert.Equal(t, "error occurred: 502\n", stdout.String())

	stdout.Reset()
	code = askCmd(context.Background(), testConfig(t, srv.URL), nil, strings.NewReader("  \n"), &stdout)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout.String(), "enter your question")

	code = askCmd(context.Background(), testConfig(t, srv.URL), []string{"-case", "maritime", "q"}, strings.NewReader(""), &stdout)
	assert.Equal(t, exitUsage, code)
}

func TestAnalyzeCmd(t *testing.T) {
	srv := backend(t, "/api/document/analyze", `{
		"success": true,
		"document_type": "general",
		"analysis": {
			"extracted_text": "Lease agreement",
			"content_analysis": {"document_type": "general", "key_elements": ["tenant", "landlord"]},
			"identified_issues": [],
			"recommendations": ["add a notice period"],
			"gemini_raw_analysis": "..."
		}
	}`, http.StatusOK)
	img := filepath.Join(t.TempDir(), "lease.jpg")
	require.NoError(t, os.WriteFile(img, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, 0o600))
	var stdout bytes.Buffer

	code := analyzeCmd(context.Background(), testConfig(t, srv.URL), []string{img}, &stdout)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "Document type: general")
	assert.Contains(t, stdout.String(), "  - landlord\n")
	assert.Contains(t, stdout.String(), "Recommendations:\n  - add a notice period\n")
	assert.NotContains(t, stdout.String(), "Identified issues")
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	var stdout bytes.Buffer

	assert.Equal(t, exitUsage, analyzeCmd(context.Background(), cfg, nil, &stdout))
	assert.Equal(t, exitUsage, analyzeCmd(context.Background(), cfg, []string{"https://example.com/a.jpg"}, &stdout))

	code := analyzeCmd(context.Background(), cfg, []string{filepath.Join(t.TempDir(), "missing.jpg")}, &stdout)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout.String(), "cannot read image: ")
}

func TestCaseTypesCmd(t *testing.T) {
	var stdout bytes.Buffer

	assert.Equal(t, exitOK, caseTypesCmd(&stdout))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "general"))
	assert.True(t, strings.HasPrefix(lines[4], "business"))
}
