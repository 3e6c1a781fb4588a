package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// SheetWriter is the subset of the Sheets client used by sheets_export
type SheetWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Search   string `json:"search,omitempty" jsonschema:"Search text applied before export"`
	Location string `json:"location,omitempty" jsonschema:"Exact location filter"`
	JobType  string `json:"job_type,omitempty" jsonschema:"Job type filter"`
	Upsert   bool   `json:"upsert,omitempty" jsonschema:"Overwrite from row 2 (true) or append (false)"`
	ClearTab bool   `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Sheet    struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write into"`
		Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab,omitempty"`
	WrittenRows   int       `json:"written_rows"`
	Mode          string    `json:"mode"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

type sheetsExportTool struct {
	jobs   job.Service
	writer SheetWriter
	logger *logging.Logger
	clock  func() time.Time
}

// WithSheetsExport registers the sheets_export tool. writer may be nil when Sheets is not configured.
func WithSheetsExport(jobs job.Service, writer SheetWriter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{jobs: jobs, writer: writer, logger: reg.logger, clock: time.Now}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export the filtered public job listing to a Google Sheets tab",
		}, handler.handle)
		reg.add("sheets_export")
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.Sheet.SpreadsheetID == "" {
		return nil, nil, fmt.Errorf("sheet.spreadsheet_id is required")
	}
	if t.writer == nil {
		return errorResult("[sheets_export] Google Sheets is not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)"), nil, nil
	}

	all, err := t.jobs.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sheets_export: listing failed: %w", err)
	}
	jobs := job.Apply(all, job.Filters{Search: params.Search, Location: params.Location, JobType: params.JobType})

	result, err := t.export(ctx, *params, jobs)
	if err != nil {
		t.logger.Error("sheets_export failed", "spreadsheet_id", params.Sheet.SpreadsheetID, "err", err)
		return nil, nil, err
	}

	t.logger.Info("sheets_export completed", "rows", result.WrittenRows, "mode", result.Mode)
	return textResult("[sheets_export] " + result.Message), result, nil
}

func (t sheetsExportTool) export(ctx context.Context, params SheetsExportParams, jobs []domain.Job) (SheetsExportResult, error) {
	result := SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Mode:          "append",
	}
	if params.Upsert {
		result.Mode = "upsert"
	}

	if params.ClearTab {
		if err := t.writer.ClearValues(ctx, params.Sheet.SpreadsheetID, clearRange(params.Sheet.Tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	if len(jobs) == 0 {
		result.CompletedAt = t.clock().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	target := writeRange(params)
	values := jobRows(jobs)

	var err error
	if params.Upsert {
		err = t.writer.UpdateValues(ctx, params.Sheet.SpreadsheetID, target, values)
	} else {
		err = t.writer.AppendValues(ctx, params.Sheet.SpreadsheetID, target, values)
	}
	if err != nil {
		return result, fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	result.WrittenRows = len(values)
	result.CompletedAt = t.clock().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)
	return result, nil
}

func writeRange(params SheetsExportParams) string {
	if params.Sheet.Range != "" {
		return params.Sheet.Range
	}

	tab := params.Sheet.Tab
	if tab == "" {
		tab = "Sheet1"
	}

	if params.Upsert {
		return fmt.Sprintf("%s!A2", tab)
	}
	return fmt.Sprintf("%s!A1", tab)
}

func clearRange(tab string) string {
	if tab == "" {
		tab = "Sheet1"
	}
	return fmt.Sprintf("%s!A2:Z", tab)
}

func jobRows(jobs []domain.Job) [][]interface{} {
	values := make([][]interface{}, len(jobs))
	for i, j := range jobs {
		values[i] = []interface{}{
			j.Title,
			j.Company,
			j.Location,
			string(j.JobType),
			j.CreatedAt.UTC().Format(time.RFC3339),
			j.ID.String(),
		}
	}
	return values
}
