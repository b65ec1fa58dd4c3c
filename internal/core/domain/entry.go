package domain

import "time"

// LedgerEntry is one row in the payroll ledger, representing one billable
// event. Entries are append-only; deletion is an explicit, separately
// authorized operation, never a correction mechanism.
type LedgerEntry struct {
	EntryID        string    `json:"entryID"`   // Stable identifier (UUID), assigned at derivation
	Date           time.Time `json:"date"`      // Billing day, no time component
	CoachName      string    `json:"coachName"` // Entry owner
	Role           string    `json:"role"`      // Role at time of entry, may differ from the coach's default
	ItemLabel      string    `json:"itemLabel"`
	Quantity       int64     `json:"quantity"`      // Headcount for lead roles, 1 for flat roles; zero on equipment and deduction rows
	BaseAmount     int64     `json:"baseAmount"`    // Signed; negative only on deduction entries
	AssistedCoach  string    `json:"assistedCoach"` // Label only, not a roster foreign key
	IsDeduction    bool      `json:"isDeduction"`
	ShoesQty       int64     `json:"shoesQty"`
	GearQty        int64     `json:"gearQty"`
	EquipmentBonus int64     `json:"equipmentBonus"` // shoes_qty*shoe_price + gear_qty*gear_price
	TotalAmount    int64     `json:"totalAmount"`    // BaseAmount + EquipmentBonus
	CreatedAt      time.Time `json:"createdAt"`      // Shared across all entries of one submission
}

// Year returns the calendar year of the billing day.
func (e LedgerEntry) Year() int {
	return e.Date.Year()
}

// Month returns the calendar month of the billing day.
func (e LedgerEntry) Month() int {
	return int(e.Date.Month())
}

// EntryFilter selects ledger entries. Zero-valued fields are unset; set
// fields compose with logical AND.
type EntryFilter struct {
	CoachName string
	Year      int
	Month     int // 1-12, only meaningful together with Year
	LastDays  int // trailing window relative to Now
	Now       time.Time
}

// Matches reports whether the entry satisfies every set filter.
func (f EntryFilter) Matches(e LedgerEntry) bool {
	if f.CoachName != "" && e.CoachName != f.CoachName {
		return false
	}
	if f.Year != 0 && e.Year() != f.Year {
		return false
	}
	if f.Month != 0 && e.Month() != f.Month {
		return false
	}
	if f.LastDays > 0 {
		// Billing days carry no time component, so the cutoff truncates to
		// its calendar day and the boundary day itself stays in the window.
		cutoff := f.Now.AddDate(0, 0, -f.LastDays)
		cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location())
		if e.Date.Before(cutoff) {
			return false
		}
	}
	return true
}
