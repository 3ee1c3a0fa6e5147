package main

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"teamhours-backend/internal/intake"
	"teamhours-backend/internal/report"
)

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

func uploadedFile(fh *multipart.FileHeader) intake.File {
	return intake.File{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func optionalFile(fh *multipart.FileHeader) *intake.File {
	if fh == nil {
		return nil
	}
	f := uploadedFile(fh)
	return &f
}

// -----------------------------
// Health
// -----------------------------

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// -----------------------------
// Attendance reports
// -----------------------------

type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: logger}
}

func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ReportResponse{
		RunID:       res.RunID,
		GeneratedAt: res.GeneratedAt,
		TotalEvents: len(res.Events),
		Events:      res.Events,
		Excluded:    res.Excluded,
	})
}

func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{
		RunID:       res.RunID,
		GeneratedAt: res.GeneratedAt,
		Users:       res.Summary,
	})
}

// generate binds the upload and runs the pipeline. On failure it has already
// written the error response.
func (h *ReportHandler) generate(c *gin.Context) (*report.Result, bool) {
	var form UploadForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(c, http.StatusRequestEntityTooLarge, "upload too large")
			return nil, false
		}
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return nil, false
	}

	ctx := c.Request.Context()
	var (
		res *report.Result
		err error
	)
	if form.explicit() {
		var bundle intake.Bundle
		bundle, err = intake.NewBundle(optionalFile(form.Events), optionalFile(form.Sessions), optionalFile(form.Users))
		if err == nil {
			res, err = h.svc.GenerateBundle(ctx, bundle)
		}
	} else {
		files := make([]intake.File, 0, len(form.Files))
		for _, fh := range form.Files {
			files = append(files, uploadedFile(fh))
		}
		res, err = h.svc.Generate(ctx, files)
	}

	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return res, true
}

func (h *ReportHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var inputErr *intake.InputError
	var fileErr *report.FileError
	switch {
	case errors.As(err, &inputErr):
		jsonError(c, http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &fileErr):
		jsonError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled):
		jsonError(c, http.StatusServiceUnavailable, "request canceled")
	default:
		h.logger.Error("could not build report", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		jsonError(c, http.StatusInternalServerError, "could not build report: "+err.Error())
	}
}
