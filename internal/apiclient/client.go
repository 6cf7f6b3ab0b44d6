package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"ainoggo/internal/config"
	"ainoggo/internal/domain"
)

const (
	analyzePath = "/api/document/analyze"
	queryPath   = "/api/query"
)

// Client implements port.AnalysisAPI against the Ainoggo backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client. A zero timeout keeps the transport default.
func NewClient(cfg *config.APIConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client around a caller-supplied http.Client (for testing).
func NewClientWithHTTP(cfg *config.APIConfig, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpClient,
	}
}

// AnalyzeDocument uploads an image as multipart/form-data to the analyze endpoint.
func (c *Client) AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	docType := req.DocumentType
	if docType == "" {
		docType = domain.DocumentTypeGeneral
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fileHeader := make(textproto.MIMEHeader)
	fileHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(req.FileName)))
	fileHeader.Set("Content-Type", contentType)
	part, err := w.CreatePart(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}

	typeHeader := make(textproto.MIMEHeader)
	typeHeader.Set("Content-Disposition", `form-data; name="document_type"`)
	typeHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err = w.CreatePart(typeHeader)
	if err != nil {
		return nil, fmt.Errorf("creating document_type part: %w", err)
	}
	if _, err := io.WriteString(part, docType); err != nil {
		return nil, fmt.Errorf("writing document_type part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	body, err := c.post(ctx, analyzePath, w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	result, err := DecodeAnalysisResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: analyzePath, Err: err}
	}
	return result, nil
}

// SubmitQuery posts a legal question as JSON to the query endpoint.
func (c *Client) SubmitQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	bodyBytes, err := json.Marshal(queryRequest{
		Question: req.Question,
		CaseType: string(req.CaseType),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	body, err := c.post(ctx, queryPath, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}

	result, err := DecodeQueryResponse(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: queryPath, Err: err}
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	log.Printf("apiclient.Client.post: %s %d %s", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 500),
		}
	}

	return respBody, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
