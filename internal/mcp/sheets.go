package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/mcp/tools"
)

const defaultTab = "Sheet1"

// valuesWriter is the subset of the Sheets client the exporter needs
type valuesWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

type sheetsClientAdapter struct {
	client valuesWriter
	clock  func() time.Time
}

func newSheetsExporter(client valuesWriter) *sheetsClientAdapter {
	return &sheetsClientAdapter{client: client, clock: time.Now}
}

func (a *sheetsClientAdapter) Export(ctx context.Context, params tools.SheetsExportParams) (tools.SheetsExportResult, error) {
	result := tools.SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           tabName(params.Sheet.Tab),
		Mode:          exportMode(params),
		CompletedAt:   a.clock().UTC(),
	}

	if len(params.Rows) == 0 {
		result.Mode = "noop"
		result.Message = "no rows to export"
		return result, nil
	}

	range_ := buildRange(params)
	values := convertRowsToValues(params.Rows, result.CompletedAt)

	if params.ClearTab {
		if err := a.client.ClearValues(ctx, params.Sheet.SpreadsheetID, buildClearRange(params.Sheet.Tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	if params.Upsert {
		if err := a.client.UpdateValues(ctx, params.Sheet.SpreadsheetID, range_, values); err != nil {
			return result, fmt.Errorf("sheets: failed to upsert rows: %w", err)
		}
	} else {
		if err := a.client.AppendValues(ctx, params.Sheet.SpreadsheetID, range_, values); err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	}

	result.WrittenRows = len(params.Rows)
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	return result, nil
}

func exportMode(params tools.SheetsExportParams) string {
	if params.Upsert {
		return "upsert"
	}
	return "append"
}

func tabName(tab string) string {
	if tab == "" {
		return defaultTab
	}
	return tab
}

func buildRange(params tools.SheetsExportParams) string {
	if params.Sheet.Range != "" {
		return params.Sheet.Range
	}

	tab := tabName(params.Sheet.Tab)
	if params.Upsert {
		return fmt.Sprintf("%s!A2", tab)
	}
	return fmt.Sprintf("%s!A1", tab)
}

func buildClearRange(tab string) string {
	return fmt.Sprintf("%s!A2:Z", tabName(tab))
}

func convertRowsToValues(rows []tools.SheetRow, now time.Time) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		updated := row.UpdatedAt
		if updated == "" {
			updated = now.Format(time.RFC3339)
		}
		values[i] = []interface{}{
			row.Title,
			row.Company,
			row.Location,
			row.Salary,
			row.URL,
			row.Status,
			row.Notes,
			updated,
		}
	}
	return values
}
