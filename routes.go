package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamhours-backend/internal/config"
	"teamhours-backend/internal/report"
)

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg *config.Config, svc *report.Service, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware())

	SetupRoutes(r, NewReportHandler(svc, logger), cfg.Server.MaxUploadBytes)
	return r
}

func SetupRoutes(r *gin.Engine, h *ReportHandler, maxUploadBytes int64) {

	r.GET("/health", Health)

	reports := r.Group("/api/reports")
	reports.Use(BodyLimit(maxUploadBytes))
	{
		// ATTENDANCE
		reports.POST("/attendance", h.AttendanceReport)
		reports.POST("/attendance/summary", h.AttendanceSummary)
	}
}
