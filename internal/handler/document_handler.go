package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ainoggo/internal/domain"
	"ainoggo/internal/export"
	"ainoggo/internal/flow"
	"ainoggo/internal/imagesource"
	"ainoggo/internal/port"
)

// maxImageSize caps multipart uploads accepted by Submit.
const maxImageSize = 20 << 20

// DocumentAnalyzer is the part of flow.DocumentFlow the handler drives.
type DocumentAnalyzer interface {
	Submit(src port.ImageSource) <-chan flow.AnalysisState
	State() flow.AnalysisState
	Closed() bool
	ImageRef() string
	Reset()
}

// ImageResolver turns an image reference string into a fetchable source.
type ImageResolver interface {
	Resolve(ref string) (port.ImageSource, error)
}

// DocumentHandler handles document analysis endpoints.
type DocumentHandler struct {
	flow     DocumentAnalyzer
	resolver ImageResolver
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(f DocumentAnalyzer, resolver ImageResolver) *DocumentHandler {
	return &DocumentHandler{flow: f, resolver: resolver}
}

type documentStateResponse struct {
	flow.AnalysisState
	ImageRef string `json:"image_ref,omitempty"`
}

// Submit handles POST /api/v1/document
// @Summary Analyze a document image
// @Description Accepts a multipart "file" upload or a JSON body {"image_ref": "..."} and starts analysis
// @Tags document
// @Accept multipart/form-data,json
// @Produce json
// @Success 202 {object} APIResponse "Analysis started"
// @Failure 400 {object} APIResponse "Missing or unsupported image"
// @Failure 403 {object} APIResponse "image_ref outside the gallery directory"
// @Failure 413 {object} APIResponse "Image too large"
// @Failure 415 {object} APIResponse "Body is neither multipart nor JSON"
// @Failure 503 {object} APIResponse "Server shutting down"
// @Router /document [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	if h.flow.Closed() {
		HandleError(c, domain.ErrFlowClosed)
		return
	}

	var src port.ImageSource
	switch contentType := c.ContentType(); {
	case strings.HasPrefix(contentType, "multipart/"):
		upload, ok := h.readUpload(c)
		if !ok {
			return
		}
		src = upload
	case contentType == "application/json":
		var req struct {
			ImageRef string `json:"image_ref" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a multipart file or image_ref is required")
			return
		}
		resolved, err := h.resolver.Resolve(req.ImageRef)
		if err != nil {
			HandleError(c, err)
			return
		}
		src = resolved
	default:
		RespondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "send multipart/form-data or application/json")
		return
	}

	// The buffered result channel is not needed here; clients poll GET.
	_ = h.flow.Submit(src)
	RespondAccepted(c, h.state())
}

// readUpload buffers the multipart file so it outlives the request.
func (h *DocumentHandler) readUpload(c *gin.Context) (*imagesource.Upload, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxImageSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "image exceeds maximum allowed size")
		return nil, false
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	if len(data) > maxImageSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "image exceeds maximum allowed size")
		return nil, false
	}
	return imagesource.NewUpload(header.Filename, bytes.NewReader(data), int64(len(data))), true
}

// Get handles GET /api/v1/document
func (h *DocumentHandler) Get(c *gin.Context) {
	RespondOK(c, h.state())
}

// Reset handles DELETE /api/v1/document
func (h *DocumentHandler) Reset(c *gin.Context) {
	h.flow.Reset()
	RespondOK(c, h.state())
}

// Export handles GET /api/v1/document/export?format=csv|xlsx
func (h *DocumentHandler) Export(c *gin.Context) {
	st := h.flow.State()
	if st.Status != flow.StatusSucceeded || st.Result == nil {
		HandleError(c, domain.ErrNoResult)
		return
	}
	writeExport(c, "document_analysis", "Analysis", export.AnalysisRows(st.Result))
}

func (h *DocumentHandler) state() documentStateResponse {
	return documentStateResponse{AnalysisState: h.flow.State(), ImageRef: h.flow.ImageRef()}
}
