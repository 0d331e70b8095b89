package brdgen

import "fmt"

// responsePrefixLen bounds how much of a malformed model response is carried
// in a FormatError.
const responsePrefixLen = 200

// ConfigError indicates invalid or missing configuration.
type ConfigError struct {
	Setting string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Setting, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError indicates the source workbook could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ModelResponseError indicates the model call itself failed.
type ModelResponseError struct {
	Model string
	Err   error
}

func (e *ModelResponseError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("model response error: %v", e.Err)
	}
	return fmt.Sprintf("model response error (%s): %v", e.Model, e.Err)
}

func (e *ModelResponseError) Unwrap() error {
	return e.Err
}

// FormatError indicates the model response is not syntactically valid JSON.
// Text carries a bounded prefix of the offending response for diagnostics.
type FormatError struct {
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("response is not valid JSON: %v (response begins: %q)", e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError builds a FormatError carrying a prefix of text.
func NewFormatError(text string, err error) *FormatError {
	if len(text) > responsePrefixLen {
		text = text[:responsePrefixLen]
	}
	return &FormatError{Text: text, Err: err}
}

// RenderError indicates one output artifact could not be written. It is
// fatal for that artifact only; the pipeline still attempts the others.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
