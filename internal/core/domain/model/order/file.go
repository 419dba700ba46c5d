package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// DownloadStatus tracks the copy of one cloud file onto the device.
type DownloadStatus string

const (
	DownloadPending    DownloadStatus = "pending"
	DownloadInProgress DownloadStatus = "downloading"
	DownloadCompleted  DownloadStatus = "completed"
	DownloadFailed     DownloadStatus = "failed"
)

func (s DownloadStatus) Validate() error {
	switch s {
	case DownloadPending, DownloadInProgress, DownloadCompleted, DownloadFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("download status", fmt.Errorf("%q is not a valid download status", string(s)))
	}
}

// File is a cloud file selected by the customer. ID is the provider's identifier.
type File struct {
	id             string
	name           string
	sizeBytes      int64
	downloadStatus DownloadStatus
}

// NewFile creates a file selection in the pending download state.
func NewFile(id, name string, sizeBytes int64) (File, error) {
	return RestoreFile(id, name, sizeBytes, DownloadPending)
}

// RestoreFile rebuilds a stored file selection.
func RestoreFile(id, name string, sizeBytes int64, status DownloadStatus) (File, error) {
	f := File{
		id:             strings.TrimSpace(id),
		name:           strings.TrimSpace(name),
		sizeBytes:      sizeBytes,
		downloadStatus: status,
	}

	if f.id == "" {
		return File{}, errs.NewValueIsRequiredError("file id")
	}
	if f.name == "" {
		return File{}, errs.NewValueIsRequiredError("file name")
	}
	if sizeBytes < 0 {
		return File{}, errs.NewValueIsInvalidErrorWithCause("file size", fmt.Errorf("%d is negative", sizeBytes))
	}
	if err := status.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) ID() string                     { return f.id }
func (f File) Name() string                   { return f.name }
func (f File) SizeBytes() int64               { return f.sizeBytes }
func (f File) DownloadStatus() DownloadStatus { return f.downloadStatus }

func (f File) withStatus(status DownloadStatus) File {
	f.downloadStatus = status
	return f
}
