package main

import (
	"mime/multipart"
	"time"

	"teamhours-backend/internal/attendance"
)

// UploadForm is the multipart body of the report endpoints. Either Files is
// used and sorted by filename, or Events and Sessions (plus optional Users)
// name the inputs explicitly.
type UploadForm struct {
	Files    []*multipart.FileHeader `form:"files"`
	Events   *multipart.FileHeader   `form:"events"`
	Sessions *multipart.FileHeader   `form:"sessions"`
	Users    *multipart.FileHeader   `form:"users"`
}

func (f *UploadForm) explicit() bool {
	return f.Events != nil || f.Sessions != nil || f.Users != nil
}

type ReportResponse struct {
	RunID       string                             `json:"runId"`
	GeneratedAt time.Time                          `json:"generatedAt"`
	TotalEvents int                                `json:"totalEvents"`
	Events      []attendance.EventAttendanceReport `json:"events"`
	Excluded    map[string]int                     `json:"excluded"`
}

type SummaryResponse struct {
	RunID       string                 `json:"runId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Users       []attendance.UserTotal `json:"users"`
}
