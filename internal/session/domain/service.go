package domain

import (
	"context"
	"errors"
	"io"

	"github.com/strongslime/atelier/internal/pricing"
)

var (
	ErrNotFound       = errors.New("session_not_found")
	ErrUnknownAction  = errors.New("unknown_action")
	ErrTOSNotAccepted = errors.New("tos_not_accepted")
	ErrExportFailed   = errors.New("export_failed")
	ErrFileNotFound   = errors.New("file_not_found")
)

// FileUpload carries one uploaded reference file into the session.
// Content is held in memory behind a transient handle until the file
// is removed or the session is deleted.
type FileUpload struct {
	Name         string
	Size         int64
	LastModified int64
	ContentType  string
	Content      []byte
}

// Response is the full view of a session after any operation: the
// state, the base-currency breakdown, and its rendering in the
// session's display currency.
type Response struct {
	ID            string                   `json:"id"`
	State         SelectionState           `json:"state"`
	Breakdown     pricing.Breakdown        `json:"breakdown"`
	Display       pricing.DisplayBreakdown `json:"display"`
	ExportAllowed bool                     `json:"export_allowed"`
}

type Service interface {
	Create(ctx context.Context) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Dispatch(ctx context.Context, id string, action Action) (*Response, error)
	AttachFiles(ctx context.Context, id string, uploads []FileUpload) (*Response, error)
	RemoveFile(ctx context.Context, id, handleID string) (*Response, error)
	Summary(ctx context.Context, id string) (string, error)
	ExportPDF(ctx context.Context, id string) (io.Reader, error)
	Delete(ctx context.Context, id string) error
}
