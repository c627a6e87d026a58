package httptransport

import (
	"fmt"
	"strings"

	"taxportal/pkg/platform/sentinel"
)

const (
	maxValueLength    = 2000
	maxDocumentLength = 255
)

// SetFieldRequest is the body of PUT /sessions/{id}/fields/{field}. Values are
// stored as typed; trimming happens only when they are evaluated.
type SetFieldRequest struct {
	Value string `json:"value"`
}

func (r *SetFieldRequest) Validate() error {
	if len(r.Value) > maxValueLength {
		return fmt.Errorf("value must be at most %d bytes: %w", maxValueLength, sentinel.ErrInvalidInput)
	}
	return nil
}

// SelectDocumentRequest is the body of PUT /sessions/{id}/document. Only the
// file name is sent; an empty name clears the selection.
type SelectDocumentRequest struct {
	Name string `json:"name"`
}

func (r *SelectDocumentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) > maxDocumentLength {
		return fmt.Errorf("name must be at most %d bytes: %w", maxDocumentLength, sentinel.ErrInvalidInput)
	}
	if strings.ContainsAny(r.Name, `/\`) {
		return fmt.Errorf("name must be a file name, not a path: %w", sentinel.ErrInvalidInput)
	}
	return nil
}
