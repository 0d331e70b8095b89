// Package brdgen orchestrates the generation pipeline: a BRD/FRD workbook is
// flattened to text, sent to a language model, and the validated response is
// rendered as a draw.io diagram and an HTML review report.
package brdgen

import (
	"go.uber.org/zap"

	"github.com/aathik/brdgen-go/pkg/brdgen/llm"
)

// Options configures one pipeline run.
type Options struct {
	// InputPath is the source workbook. Required unless ResponsePath is set.
	InputPath string
	// OutputDir receives all artifacts. Defaults to "outputs".
	OutputDir string
	// Client generates the data model. Required unless PromptOnly or
	// ResponsePath short-circuits the model call.
	Client llm.Client
	// CatalogPath optionally overrides the embedded OOTB catalog. A missing
	// file is a warning, not an error.
	CatalogPath string
	// PromptOnly stops after writing the prompt artifact.
	PromptOnly bool
	// ResponsePath skips parsing and the model call, validating and
	// rendering a previously saved response file instead.
	ResponsePath string
	// Logger receives pipeline progress. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns pipeline defaults for the given input workbook.
func DefaultOptions(inputPath string) Options {
	return Options{
		InputPath: inputPath,
		OutputDir: "outputs",
	}
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
