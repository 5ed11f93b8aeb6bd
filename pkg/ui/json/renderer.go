// Package json writes reports and errors as indented JSON documents, one
// per call
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// Renderer encodes every result as a JSON document
type Renderer struct {
	encoder *json.Encoder
}

type errorDoc struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDoc struct {
	Message string `json:"message"`
}

// New creates a JSON renderer writing to output
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder}, nil
}

// RenderResult encodes result as is; view models carry their JSON tags
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError encodes err with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errorDoc{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}

// RenderMessage encodes {"message": msg}
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(messageDoc{Message: msg})
}
