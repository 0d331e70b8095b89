package brdgen

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aathik/brdgen-go/pkg/brdgen/layout"
	"github.com/aathik/brdgen-go/pkg/brdgen/models"
	"github.com/aathik/brdgen-go/pkg/brdgen/output"
	"github.com/aathik/brdgen-go/pkg/brdgen/parser"
	"github.com/aathik/brdgen-go/pkg/brdgen/prompt"
	"github.com/aathik/brdgen-go/pkg/brdgen/report"
	"github.com/aathik/brdgen-go/pkg/brdgen/schema"
)

// State names the pipeline stages. Runs move forward through them in order;
// any stage can move to StateFailed.
type State string

const (
	StateParseSource        State = "ParseSource"
	StateBuildPrompt        State = "BuildPrompt"
	StateAwaitModelResponse State = "AwaitModelResponse"
	StateValidateResponse   State = "ValidateResponse"
	StateRender             State = "Render"
	StateDone               State = "Done"
	StateFailed             State = "Failed"
)

// Artifacts holds the paths of the files a run produced. Empty entries were
// not attempted or failed to write.
type Artifacts struct {
	Prompt   string
	Response string
	Diagram  string
	Report   string
}

// Summary describes one pipeline run.
type Summary struct {
	RunID         string
	State         State
	Valid         bool
	Entities      int
	Fields        int
	Relationships int
	Requirements  int
	Warnings      []string
	Artifacts     Artifacts
}

// Run executes the pipeline. The returned Summary is non-nil even on
// failure so callers can report partial progress. Validation problems are
// warnings on the Summary, not errors: a structurally broken model is still
// rendered so reviewers can see what the model produced.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	log := opts.logger()
	summary := &Summary{
		RunID: uuid.NewString(),
		State: StateParseSource,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "outputs"
	}

	log.Info("pipeline starting",
		zap.String("runId", summary.RunID),
		zap.String("input", opts.InputPath),
		zap.String("outputDir", opts.OutputDir))

	var raw string
	var stem string

	if opts.ResponsePath != "" {
		// Render-only: validate and render a saved response.
		stem = responseStem(opts.ResponsePath)
		data, err := os.ReadFile(opts.ResponsePath)
		if err != nil {
			return fail(summary, &ParseError{Path: opts.ResponsePath, Err: err})
		}
		raw = string(data)
		log.Info("render-only run", zap.String("response", opts.ResponsePath))
	} else {
		stem = output.ArtifactStem(opts.InputPath)

		src, reqs, err := parser.ParseSource(opts.InputPath, parser.DefaultExtractionParams())
		if err != nil {
			return fail(summary, &ParseError{Path: opts.InputPath, Err: err})
		}
		summary.Requirements = len(reqs)
		stats := src.Stats()
		log.Info("source parsed",
			zap.Int("sheets", src.SheetCount),
			zap.Int("rows", src.RowCount),
			zap.Int("characters", stats.Characters),
			zap.Int("requirements", len(reqs)))

		summary.State = StateBuildPrompt
		catalog, err := prompt.LoadCatalog(opts.CatalogPath)
		if err != nil {
			log.Warn("catalog file unavailable, using embedded default",
				zap.String("path", opts.CatalogPath), zap.Error(err))
			catalog = prompt.DefaultCatalog()
		}
		system, user := prompt.Build(src.Text, catalog)

		promptPath := filepath.Join(opts.OutputDir, stem+"_prompt.txt")
		if err := output.WriteFile(promptPath, []byte(prompt.Combined(system, user))); err != nil {
			return fail(summary, &RenderError{Path: promptPath, Err: err})
		}
		summary.Artifacts.Prompt = promptPath
		log.Info("prompt written", zap.String("path", promptPath))

		if opts.PromptOnly {
			summary.State = StateDone
			return summary, nil
		}

		summary.State = StateAwaitModelResponse
		if opts.Client == nil {
			return fail(summary, &ConfigError{Setting: "client", Err: errors.New("no model client configured")})
		}
		raw, err = opts.Client.CompleteWithSystem(ctx, system, user)
		if err != nil {
			return fail(summary, &ModelResponseError{Err: err})
		}
		log.Info("model response received", zap.Int("bytes", len(raw)))
	}

	summary.State = StateValidateResponse
	cleaned := StripFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return fail(summary, NewFormatError(cleaned, err))
	}

	valid, problems := schema.Validate(parsed)
	summary.Valid = valid
	summary.Warnings = append(summary.Warnings, problems...)

	doc, err := decodeDocument([]byte(cleaned))
	if err != nil {
		return fail(summary, NewFormatError(cleaned, err))
	}

	if valid {
		refs := schema.CheckReferences(&doc.DataModel)
		summary.Warnings = append(summary.Warnings, refs...)
	}
	for _, w := range summary.Warnings {
		log.Warn("validation", zap.String("problem", w))
	}

	summary.Entities = len(doc.DataModel.Entities)
	summary.Relationships = len(doc.DataModel.Relationships)
	for _, e := range doc.DataModel.Entities {
		summary.Fields += len(e.Fields)
	}
	log.Info("response validated",
		zap.Bool("valid", valid),
		zap.Int("entities", summary.Entities),
		zap.Int("fields", summary.Fields),
		zap.Int("warnings", len(summary.Warnings)))

	summary.State = StateRender
	renderErr := renderArtifacts(log, opts.OutputDir, stem, parsed, doc, summary)
	if renderErr != nil {
		return fail(summary, renderErr)
	}

	summary.State = StateDone
	log.Info("pipeline done",
		zap.String("runId", summary.RunID),
		zap.String("state", string(summary.State)))
	return summary, nil
}

// renderArtifacts writes the response JSON, diagram and report. A failure on
// one artifact does not stop the others; all failures are joined.
func renderArtifacts(log *zap.Logger, dir, stem string, parsed any, doc *models.Document, summary *Summary) error {
	var errs []error

	responsePath := filepath.Join(dir, stem+"_response.json")
	if pretty, err := output.ToJSON(parsed, true); err != nil {
		errs = append(errs, &RenderError{Path: responsePath, Err: err})
	} else if err := output.WriteFile(responsePath, pretty); err != nil {
		errs = append(errs, &RenderError{Path: responsePath, Err: err})
	} else {
		summary.Artifacts.Response = responsePath
		log.Info("response written", zap.String("path", responsePath))
	}

	diagramPath := filepath.Join(dir, stem+"_data_model.drawio")
	diagram := layout.NewEngine().Layout(&doc.DataModel)
	if xml, err := layout.MarshalDrawio(diagram); err != nil {
		errs = append(errs, &RenderError{Path: diagramPath, Err: err})
	} else if err := output.WriteFile(diagramPath, xml); err != nil {
		errs = append(errs, &RenderError{Path: diagramPath, Err: err})
	} else {
		summary.Artifacts.Diagram = diagramPath
		log.Info("diagram written",
			zap.String("path", diagramPath),
			zap.Int("nodes", len(diagram.Nodes)),
			zap.Int("edges", len(diagram.Edges)))
	}

	reportPath := filepath.Join(dir, stem+"_data_model_report.html")
	rep := report.Analyze(doc)
	rep.RunID = summary.RunID
	if html, err := report.RenderHTML(rep); err != nil {
		errs = append(errs, &RenderError{Path: reportPath, Err: err})
	} else if err := output.WriteFile(reportPath, html); err != nil {
		errs = append(errs, &RenderError{Path: reportPath, Err: err})
	} else {
		summary.Artifacts.Report = reportPath
		log.Info("report written", zap.String("path", reportPath))
	}

	return errors.Join(errs...)
}

// StripFences removes a wrapping markdown code fence, with or without a
// language tag, from a model response.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if idx := strings.IndexByte(t, '\n'); idx >= 0 {
		t = t[idx+1:]
	} else {
		return ""
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// decodeDocument unmarshals a response into the typed envelope, accepting
// both the enveloped form and a bare data model. Members with the wrong
// JSON type are skipped rather than fatal: the validator has already
// reported them, and everything that did match should still render.
func decodeDocument(data []byte) (*models.Document, error) {
	var probe struct {
		DataModel *json.RawMessage `json:"dataModel"`
	}
	if err := tolerantUnmarshal(data, &probe); err != nil {
		return nil, err
	}

	var doc models.Document
	if probe.DataModel != nil {
		if err := tolerantUnmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
	if err := tolerantUnmarshal(data, &doc.DataModel); err != nil {
		return nil, err
	}
	return &doc, nil
}

// tolerantUnmarshal decodes data into v, ignoring type mismatches on
// individual members. encoding/json keeps decoding past an
// UnmarshalTypeError, so v holds everything that did match.
func tolerantUnmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

// responseStem derives the artifact stem from a saved response file name.
func responseStem(path string) string {
	return strings.TrimSuffix(output.ArtifactStem(path), "_response")
}

// fail marks the summary failed and returns it with the error.
func fail(summary *Summary, err error) (*Summary, error) {
	summary.State = StateFailed
	return summary, err
}
