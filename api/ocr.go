package api

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/audit"
	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	maxUploadSize = 10 << 20
	// multipart framing allowance on top of the file itself
	maxUploadBody = maxUploadSize + 1<<20

	labExtractionAgent = "lab_extraction"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// uploadType sniffs the content type of an upload. The declared type is
// only used when the content is not recognized.
func uploadType(data []byte, declared string) string {
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if sniffed != "application/octet-stream" {
		return sniffed
	}

	declared, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return sniffed
	}
	return declared
}

type ocrResponse struct {
	Results  []schema.LabResult          `json:"results"`
	Notes    string                      `json:"notes"`
	Hash     string                      `json:"hash"`
	Receipt  *schema.ConsultationReceipt `json:"receipt"`
	Fallback bool                        `json:"fallback"`
}

// ocr extracts lab results from an uploaded report
func (s *Server) ocr(c *gin.Context) {
	logger := log.WithField("api", "ocr")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithEncoding(c, http.StatusBadRequest, errorFileTooLarge, err)
			return
		}
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if header.Size > maxUploadSize {
		abortWithEncoding(c, http.StatusBadRequest, errorFileTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}
	if len(data) > maxUploadSize {
		abortWithEncoding(c, http.StatusBadRequest, errorFileTooLarge)
		return
	}
	if len(data) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	mimeType := uploadType(data, header.Header.Get("Content-Type"))
	if !allowedUploadTypes[mimeType] {
		abortWithEncoding(c, http.StatusBadRequest, errorUnsupportedFile)
		return
	}

	if !s.chain.Configured() {
		abortWithEncoding(c, http.StatusInternalServerError, errorNotConfigured)
		return
	}

	req := agent.LabExtractionPrompt(mimeType, data)
	result, err := s.chain.Generate(c.Request.Context(), req)
	if err != nil {
		logger.WithError(err).Error("extract lab results")
		abortWithEncoding(c, http.StatusServiceUnavailable, withFallback(errorUpstreamUnavailable, false), err)
		return
	}

	fallback := false
	extraction, err := agent.ParseLabExtraction(result.Text)
	if err != nil {
		logger.WithError(err).WithField("model", result.Model).Warn("parse lab extraction")
		extraction = &schema.LabExtraction{Results: []schema.LabResult{}}
		fallback = true
	}

	hash, err := audit.ContentHash(extraction)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	receipt, err := s.recorder.RecordConsultation(labExtractionAgent, len(req.Prompt), extraction, result.Model)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, ocrResponse{
		Results:  extraction.Results,
		Notes:    extraction.Notes,
		Hash:     hash,
		Receipt:  receipt,
		Fallback: fallback,
	})
}
