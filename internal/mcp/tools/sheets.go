package tools

import (
	"context"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
)

// SheetRow defines a row to upsert into Sheets
type SheetRow struct {
	Title     string `json:"title,omitempty" jsonschema:"Job title text"`
	Company   string `json:"company,omitempty" jsonschema:"Company name"`
	Location  string `json:"location,omitempty" jsonschema:"Location text"`
	Salary    string `json:"salary,omitempty" jsonschema:"Salary range text"`
	URL       string `json:"url,omitempty" jsonschema:"Application URL"`
	Status    string `json:"status,omitempty" jsonschema:"Pipeline status e.g. applied/interviewing"`
	Notes     string `json:"notes,omitempty" jsonschema:"Free-form notes or instructions"`
	UpdatedAt string `json:"updated_at,omitempty" jsonschema:"ISO timestamp captured by client"`
}

// SheetTarget identifies where rows are written
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write to, default Sheet1"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Jobs     []domain.JobListing `json:"jobs,omitempty" jsonschema:"Listings copied from a search tool result"`
	Rows     []SheetRow          `json:"rows,omitempty" jsonschema:"Explicit rows to write"`
	Upsert   bool                `json:"upsert,omitempty" jsonschema:"Overwrite from row 2 (true) or append (false)"`
	ClearTab bool                `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Sheet    SheetTarget         `json:"sheet" jsonschema:"Destination sheet information"`
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

// SheetsExporter writes rows to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, params SheetsExportParams) (SheetsExportResult, error)
}

type sheetsExportTool struct {
	reg      *registry
	exporter SheetsExporter
}

// WithSheetsExport registers the sheets_export tool; a nil exporter registers nothing
func WithSheetsExport(exporter SheetsExporter) Option {
	return func(reg *registry) {
		if exporter == nil {
			return
		}
		reg.add(func(reg *registry) {
			t := sheetsExportTool{reg: reg, exporter: exporter}
			sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
				Name:        "sheets_export",
				Description: "Export job listings from a search result, or explicit rows, to a Google Sheets tab",
			}, t.handle)
		})
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	c := t.reg.begin("sheets_export",
		"spreadsheet_id", params.Sheet.SpreadsheetID,
		"jobs", len(params.Jobs),
		"rows", len(params.Rows),
	)

	if strings.TrimSpace(params.Sheet.SpreadsheetID) == "" {
		return c.fail(domain.InvalidParameter("sheet.spreadsheet_id is required"))
	}

	params.Rows = append(RowsFromListings(params.Jobs), params.Rows...)
	params.Jobs = nil

	result, err := t.exporter.Export(ctx, params)
	if err != nil {
		return c.fail(err)
	}
	return c.done(result, result.WrittenRows)
}

// RowsFromListings maps search listings onto sheet rows
func RowsFromListings(jobs []domain.JobListing) []SheetRow {
	rows := make([]SheetRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, SheetRow{
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			Salary:   j.Salary,
			URL:      j.URL,
			Status:   "new",
		})
	}
	return rows
}
