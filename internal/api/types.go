package api

import (
	"fmt"
	"io"
	"time"
)

// Status is a report lifecycle state as the backend reports it.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusFinalized Status = "finalized"
)

// Statuses lists all report states in lifecycle order.
var Statuses = []Status{StatusDraft, StatusPending, StatusAssigned, StatusFinalized}

// User mirrors the backend User model.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AccessKey string    `json:"accessKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report mirrors the backend Report model.
type Report struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	FolderID        string    `json:"folderId"`
	InspectorID     string    `json:"inspectorId,omitempty"`
	ReporterID      string    `json:"reporterId,omitempty"`
	RawReportPath   string    `json:"rawReportPath,omitempty"`
	FinalReportPath string    `json:"finalReportPath,omitempty"`
}

// Unassigned reports whether the report has no reporter, regardless of
// status. The backend is supposed to keep reporterId and status in sync,
// but the client treats a missing reporter as unassigned either way.
func (r Report) Unassigned() bool {
	return r.ReporterID == ""
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
	User    User   `json:"user"`
}

// FileListing is returned by the per-report file listing endpoints.
// The inspector endpoint fills rawFiles, the reporter endpoint finalFiles.
type FileListing struct {
	RawFiles   []string `json:"rawFiles"`
	FinalFiles []string `json:"finalFiles"`
}

// UploadFile is one file in a multipart upload batch.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// Subfolder selects which half of a report's archive to download.
type Subfolder string

const (
	SubfolderRaw   Subfolder = "raw"
	SubfolderFinal Subfolder = "final"
)

// ParseSubfolder validates a user-supplied subfolder value.
func ParseSubfolder(s string) (Subfolder, error) {
	switch Subfolder(s) {
	case SubfolderRaw:
		return SubfolderRaw, nil
	case SubfolderFinal:
		return SubfolderFinal, nil
	default:
		return "", fmt.Errorf("invalid subfolder %q (want raw or final)", s)
	}
}
