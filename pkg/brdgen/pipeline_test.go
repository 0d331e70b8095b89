package brdgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// stubClient returns a canned response or error.
type stubClient struct {
	response string
	err      error

	gotSystem string
	gotUser   string
}

func (c *stubClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.gotSystem = systemPrompt
	c.gotUser = userPrompt
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

// writeWorkbook creates a small FRD workbook on disk.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	_, err := f.NewSheet("Functional Requirements")
	require.NoError(t, err)
	f.SetCellValue("Functional Requirements", "A1", "Req ID")
	f.SetCellValue("Functional Requirements", "B1", "Description")
	f.SetCellValue("Functional Requirements", "A2", "FR-1")
	f.SetCellValue("Functional Requirements", "B2", "The system shall store person names.")

	path := filepath.Join(dir, "Customer BRD.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

const validResponse = `{
  "metadata": {"originalFRD": "...", "generatedDate": "2026-08-26", "platform": "informatica"},
  "reasoning": {"summary": "One Person entity."},
  "dataModel": {
    "entities": [
      {"name": "Person", "type": "BusinessEntity", "description": "Core party entity", "fields": [
        {"name": "firstName", "dataType": "TextField", "requirementIds": ["FR-1"],
         "sourceRequirements": ["FR-1: The system shall store person names."]}
      ]}
    ],
    "relationships": []
  }
}`

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	client := &stubClient{response: "```json\n" + validResponse + "\n```"}

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
		Client:    client,
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, summary.State)
	assert.True(t, summary.Valid)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 1, summary.Entities)
	assert.Equal(t, 1, summary.Fields)
	assert.Equal(t, 1, summary.Requirements)
	assert.NotEmpty(t, summary.RunID)

	// The prompt carried the workbook text to the model.
	assert.Contains(t, client.gotUser, "The system shall store person names.")
	assert.Contains(t, client.gotSystem, "OOTB ENTITIES:")

	for _, path := range []string{
		filepath.Join(dir, "outputs", "customer_brd_prompt.txt"),
		filepath.Join(dir, "outputs", "customer_brd_response.json"),
		filepath.Join(dir, "outputs", "customer_brd_data_model.drawio"),
		filepath.Join(dir, "outputs", "customer_brd_data_model_report.html"),
	} {
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, path)
	}
	assert.Equal(t, filepath.Join(dir, "outputs", "customer_brd_data_model.drawio"), summary.Artifacts.Diagram)

	// Fences were stripped before the response artifact was written.
	data, readErr := os.ReadFile(summary.Artifacts.Response)
	require.NoError(t, readErr)
	assert.False(t, strings.HasPrefix(string(data), "```"))
	assert.Contains(t, string(data), `"Person"`)
}

func TestRunInvalidShapeStillRenders(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	// relationships key missing entirely.
	response := `{"dataModel": {"entities": [
	  {"name": "Person", "type": "BusinessEntity", "description": "Core party entity", "fields": []}
	]}}`
	client := &stubClient{response: response}

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
		Client:    client,
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, summary.State)
	assert.False(t, summary.Valid)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "relationships")

	// Diagram and report were still written.
	assert.NotEmpty(t, summary.Artifacts.Diagram)
	assert.NotEmpty(t, summary.Artifacts.Report)
}

func TestRunWrongTypedMemberStillRenders(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	// Syntactically valid JSON, but fields carries the wrong type.
	response := `{"dataModel": {"entities": [
	  {"name": "Person", "type": "BusinessEntity", "description": "Core party entity", "fields": "nope"}
	], "relationships": []}}`
	client := &stubClient{response: response}

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
		Client:    client,
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, summary.State)
	assert.False(t, summary.Valid)
	require.NotEmpty(t, summary.Warnings)
	assert.Contains(t, summary.Warnings[0], "fields")

	// The mismatched member decodes to nothing; the rest still renders.
	assert.Equal(t, 1, summary.Entities)
	assert.Equal(t, 0, summary.Fields)
	assert.NotEmpty(t, summary.Artifacts.Diagram)
	assert.NotEmpty(t, summary.Artifacts.Report)
}

func TestRunMalformedJSONFails(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	client := &stubClient{response: "I'm sorry, I cannot produce JSON today."}

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
		Client:    client,
	})
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Text, "I'm sorry")
	assert.Equal(t, StateFailed, summary.State)
}

func TestRunModelFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)
	client := &stubClient{err: errors.New("rate limited")}

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
		Client:    client,
	})
	require.Error(t, err)

	var respErr *ModelResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, StateFailed, summary.State)
}

func TestRunPromptOnly(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)

	summary, err := Run(context.Background(), Options{
		InputPath:  input,
		OutputDir:  filepath.Join(dir, "outputs"),
		PromptOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, summary.State)
	assert.NotEmpty(t, summary.Artifacts.Prompt)
	assert.Empty(t, summary.Artifacts.Response)

	data, readErr := os.ReadFile(summary.Artifacts.Prompt)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "Analyze this FRD")
}

func TestRunMissingClient(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir)

	summary, err := Run(context.Background(), Options{
		InputPath: input,
		OutputDir: filepath.Join(dir, "outputs"),
	})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, StateFailed, summary.State)
}

func TestRunRenderOnly(t *testing.T) {
	dir := t.TempDir()
	responsePath := filepath.Join(dir, "customer_brd_response.json")
	require.NoError(t, os.WriteFile(responsePath, []byte(validResponse), 0644))

	summary, err := Run(context.Background(), Options{
		ResponsePath: responsePath,
		OutputDir:    filepath.Join(dir, "outputs"),
	})
	require.NoError(t, err)

	assert.Equal(t, StateDone, summary.State)
	assert.True(t, summary.Valid)
	// The stem drops the _response suffix so artifacts line up with a
	// previous full run.
	assert.Equal(t, filepath.Join(dir, "outputs", "customer_brd_data_model.drawio"), summary.Artifacts.Diagram)
	assert.Empty(t, summary.Artifacts.Prompt)
}

func TestRunMissingInput(t *testing.T) {
	summary, err := Run(context.Background(), Options{
		InputPath: filepath.Join(t.TempDir(), "nope.xlsx"),
		OutputDir: t.TempDir(),
	})
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, StateFailed, summary.State)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n```json\n{}\n```  ", "{}"},
		{"lone fence", "```", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestDecodeDocumentBareModel(t *testing.T) {
	doc, err := decodeDocument([]byte(`{"entities": [{"name": "Person", "type": "BusinessEntity", "fields": []}], "relationships": []}`))
	require.NoError(t, err)

	require.Len(t, doc.DataModel.Entities, 1)
	assert.Equal(t, "Person", doc.DataModel.Entities[0].Name)
}
