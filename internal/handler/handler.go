package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/domain"
	"github.com/xcaptain/facerank/internal/service"
	"github.com/xcaptain/facerank/pkg/utils"
)

const fileField = "file"

type Handler struct {
	service service.AnalysisService
	log     *zap.Logger
}

func NewHandler(service service.AnalysisService, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Analyze accepts a multipart form with a single file in the "file" field and
// relays it to the analysis service.
func (h *Handler) Analyze(c *gin.Context) {
	file, err := c.FormFile(fileField)
	if err != nil || file.Size == 0 {
		h.log.Warn("No file in analyze request", zap.Error(err))
		fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open file", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to process file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.log.Error("Failed to read file", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to read file")
		return
	}

	upload := &domain.UploadedFile{
		Name:        file.Filename,
		ContentType: utils.ResolveContentType(file.Header.Get("Content-Type"), file.Filename, data),
		Size:        int64(len(data)),
		Data:        data,
	}

	analysis, err := h.service.Analyze(c.Request.Context(), upload)
	if err != nil {
		if errors.Is(err, domain.ErrNoFile) {
			fail(c, http.StatusBadRequest, "No file uploaded")
			return
		}
		h.log.Error("Failed to analyze file",
			zap.String("filename", upload.Name),
			zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to analyze file")
		return
	}

	resp := domain.ResponsePayload{
		Success: true,
		Message: "File analyzed successfully",
		Data:    analysis.Meta,
	}
	if analysis.Result != nil {
		resp.Result = analysis.Result.Text
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, domain.ResponsePayload{
		Success: false,
		Message: message,
	})
}
