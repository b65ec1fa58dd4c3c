package domain

import "time"

// AssistNone is the sentinel roster choice meaning "no head coach was
// assisted". It never triggers deduction mirroring.
const AssistNone = "無"

// SubmissionInput is one payroll submission as entered by the acting coach,
// before derivation. Role may differ from the coach's stored default when
// covering a shift in another capacity.
type SubmissionInput struct {
	CoachName     string
	Role          string
	Item          string // rate-table key, extras key, or free-text custom label
	Quantity      int64
	CustomPrice   *int64 // required only when Item is free-text
	ShoesQty      int64
	GearQty       int64
	AssistedCoach string // empty or AssistNone when nobody was assisted
	Date          time.Time
}
