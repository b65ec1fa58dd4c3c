// Package mapping converts ledger entries to and from the canonical
// order-significant row layout shared by the spreadsheet and CSV stores.
package mapping

import (
	"fmt"
	"strconv"
	"time"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
)

const (
	dateLayout      = "2006-01-02"
	createdAtLayout = "2006-01-02 15:04:05"
)

// HeaderColumns is the canonical column layout. Column order is significant;
// stores must not reorder it.
var HeaderColumns = []string{
	"entry_id", "date", "year", "month", "coach_name", "role", "item_label",
	"quantity", "base_amount", "assisted_coach", "deduction_flag",
	"shoes_qty", "gear_qty", "equipment_bonus", "total_amount", "created_at",
}

// EntryToRow flattens a ledger entry into one row in canonical column order.
func EntryToRow(e domain.LedgerEntry) []string {
	deduction := "0"
	if e.IsDeduction {
		deduction = "1"
	}
	return []string{
		e.EntryID,
		e.Date.Format(dateLayout),
		strconv.Itoa(e.Year()),
		strconv.Itoa(e.Month()),
		e.CoachName,
		e.Role,
		e.ItemLabel,
		strconv.FormatInt(e.Quantity, 10),
		strconv.FormatInt(e.BaseAmount, 10),
		e.AssistedCoach,
		deduction,
		strconv.FormatInt(e.ShoesQty, 10),
		strconv.FormatInt(e.GearQty, 10),
		strconv.FormatInt(e.EquipmentBonus, 10),
		strconv.FormatInt(e.TotalAmount, 10),
		e.CreatedAt.Format(createdAtLayout),
	}
}

// RowToEntry parses one canonical row back into a ledger entry. Dates are
// interpreted in the given location (billing days are local calendar days).
func RowToEntry(row []string, loc *time.Location) (domain.LedgerEntry, error) {
	if len(row) < len(HeaderColumns) {
		return domain.LedgerEntry{}, fmt.Errorf("row has %d columns, want %d", len(row), len(HeaderColumns))
	}

	date, err := time.ParseInLocation(dateLayout, row[1], loc)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("bad date %q: %w", row[1], err)
	}
	createdAt, err := time.ParseInLocation(createdAtLayout, row[15], loc)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("bad created_at %q: %w", row[15], err)
	}

	quantity, err := parseAmount("quantity", row[7])
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	base, err := parseAmount("base_amount", row[8])
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	shoes, err := parseAmount("shoes_qty", row[11])
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	gear, err := parseAmount("gear_qty", row[12])
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	bonus, err := parseAmount("equipment_bonus", row[13])
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	total, err := parseAmount("total_amount", row[14])
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	return domain.LedgerEntry{
		EntryID:        row[0],
		Date:           date,
		CoachName:      row[4],
		Role:           row[5],
		ItemLabel:      row[6],
		Quantity:       quantity,
		BaseAmount:     base,
		AssistedCoach:  row[9],
		IsDeduction:    row[10] == "1",
		ShoesQty:       shoes,
		GearQty:        gear,
		EquipmentBonus: bonus,
		TotalAmount:    total,
		CreatedAt:      createdAt,
	}, nil
}

func parseAmount(col, raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", col, raw, err)
	}
	return v, nil
}
