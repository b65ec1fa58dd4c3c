// Package sheets implements the ledger row store on a Google Sheets
// spreadsheet accessed with service-account credentials.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/black-yen/sketer-workmoney/internal/apperrors"
	"github.com/black-yen/sketer-workmoney/internal/core/domain"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
	"github.com/black-yen/sketer-workmoney/internal/utils/mapping"
)

// SheetsRepository persists ledger entries as rows of one sheet. The sheet
// only supports positional deletion, so identifiers are re-resolved to row
// positions from a fresh listing immediately before every delete, the
// target rows are re-confirmed, and deletions are issued in descending row
// order within one batch.
type SheetsRepository struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetTitle    string
	sheetID       int64
	loc           *time.Location
}

// NewSheetsRepository connects to the spreadsheet using the service-account
// credentials file and resolves the target sheet's numeric ID.
func NewSheetsRepository(ctx context.Context, credentialsFile, spreadsheetID, sheetTitle string, loc *time.Location) (*SheetsRepository, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(creds, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	repo := &SheetsRepository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetTitle:    sheetTitle,
		loc:           loc,
	}

	spreadsheet, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetTitle {
			repo.sheetID = sheet.Properties.SheetId
			return repo, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found in spreadsheet %s: %w", sheetTitle, spreadsheetID, apperrors.ErrNotFound)
}

var _ portsrepo.LedgerRepositoryFacade = (*SheetsRepository)(nil)

// EnsureHeader writes the canonical header row if the first row is empty.
func (r *SheetsRepository) EnsureHeader(ctx context.Context) error {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef("1:1")).Context(ctx).Do()
	if err != nil {
		return classify(err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(mapping.HeaderColumns))
	for i, col := range mapping.HeaderColumns {
		header[i] = col
	}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, r.rangeRef("A1"), &sheetsapi.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return classify(err)
}

// Append adds one entry at the bottom of the sheet.
func (r *SheetsRepository) Append(ctx context.Context, entry domain.LedgerEntry) error {
	row := mapping.EntryToRow(entry)
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, r.rangeRef("A:P"), &sheetsapi.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return classify(err)
}

// ListAll reads every data row. Rows that fail to parse are skipped.
func (r *SheetsRepository) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	var entries []domain.LedgerEntry
	for _, row := range rows {
		entry, err := mapping.RowToEntry(row.cells, r.loc)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteByIDs resolves each identifier to its current row position from a
// fresh listing, re-confirms the rows still hold the expected identifiers,
// then deletes them bottom-up in a single batch so earlier deletions cannot
// shift later positions.
func (r *SheetsRepository) DeleteByIDs(ctx context.Context, entryIDs []string) (int, error) {
	targets := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		targets[id] = struct{}{}
	}

	rows, err := r.fetchRows(ctx)
	if err != nil {
		return 0, err
	}

	type position struct {
		entryID  string
		rowIndex int64 // zero-based sheet row index
	}
	var positions []position
	for _, row := range rows {
		if len(row.cells) == 0 {
			continue
		}
		if _, hit := targets[row.cells[0]]; hit {
			positions = append(positions, position{entryID: row.cells[0], rowIndex: row.index})
		}
	}
	if len(positions) == 0 {
		return 0, nil
	}

	// Re-confirm each target row before deleting: a listing computed even
	// moments ago can be stale if another session removed rows.
	for _, pos := range positions {
		ref := fmt.Sprintf("A%d", pos.rowIndex+1)
		resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef(ref)).Context(ctx).Do()
		if err != nil {
			return 0, classify(err)
		}
		if len(resp.Values) == 0 || len(resp.Values[0]) == 0 || fmt.Sprint(resp.Values[0][0]) != pos.entryID {
			return 0, &apperrors.StaleDeleteTargetError{EntryID: pos.entryID, Row: int(pos.rowIndex) + 1}
		}
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].rowIndex > positions[j].rowIndex })

	requests := make([]*sheetsapi.Request, len(positions))
	for i, pos := range positions {
		requests[i] = &sheetsapi.Request{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    r.sheetID,
					Dimension:  "ROWS",
					StartIndex: pos.rowIndex,
					EndIndex:   pos.rowIndex + 1,
				},
			},
		}
	}

	_, err = r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return 0, classify(err)
	}
	return len(positions), nil
}

type sheetRow struct {
	index int64 // zero-based sheet row index
	cells []string
}

// fetchRows returns all data rows with their current positions, skipping
// the header.
func (r *SheetsRepository) fetchRows(ctx context.Context) ([]sheetRow, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.rangeRef("A:P")).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}

	var rows []sheetRow
	for i, raw := range resp.Values {
		if i == 0 && len(raw) > 0 && fmt.Sprint(raw[0]) == mapping.HeaderColumns[0] {
			continue
		}
		cells := make([]string, len(raw))
		for j, cell := range raw {
			cells[j] = fmt.Sprint(cell)
		}
		rows = append(rows, sheetRow{index: int64(i), cells: cells})
	}
	return rows, nil
}

func (r *SheetsRepository) rangeRef(ref string) string {
	return fmt.Sprintf("'%s'!%s", r.sheetTitle, ref)
}

// classify maps transport and quota failures to ErrStoreUnavailable so the
// caller can distinguish connectivity problems from logical errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		// 4xx other than auth/quota failures are logical errors, not
		// connectivity problems.
		if gerr.Code >= 400 && gerr.Code < 500 && gerr.Code != 429 && gerr.Code != 401 && gerr.Code != 403 {
			return err
		}
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
