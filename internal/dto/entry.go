package dto

import (
	"time"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
)

// SubmitEntryRequest is the payload for filing one payroll submission.
type SubmitEntryRequest struct {
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	Role          string `json:"role" binding:"required,nonblank"`
	Item          string `json:"item" binding:"required,nonblank"`
	Quantity      int64  `json:"quantity" binding:"min=0"`
	CustomPrice   *int64 `json:"customPrice,omitempty" binding:"omitempty,min=0"`
	ShoesQty      int64  `json:"shoesQty" binding:"min=0"`
	GearQty       int64  `json:"gearQty" binding:"min=0"`
	AssistedCoach string `json:"assistedCoach,omitempty"`
}

// EntryResponse mirrors one persisted ledger entry.
type EntryResponse struct {
	EntryID        string `json:"entryID"`
	Date           string `json:"date"`
	CoachName      string `json:"coachName"`
	Role           string `json:"role"`
	ItemLabel      string `json:"itemLabel"`
	Quantity       int64  `json:"quantity"`
	BaseAmount     int64  `json:"baseAmount"`
	AssistedCoach  string `json:"assistedCoach,omitempty"`
	IsDeduction    bool   `json:"isDeduction"`
	ShoesQty       int64  `json:"shoesQty"`
	GearQty        int64  `json:"gearQty"`
	EquipmentBonus int64  `json:"equipmentBonus"`
	TotalAmount    int64  `json:"totalAmount"`
	CreatedAt      string `json:"createdAt"`
}

// SubmitEntryResponse lists the entries one submission produced.
type SubmitEntryResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// PartialWriteResponse reports a submission where only some derived entries
// reached the store.
type PartialWriteResponse struct {
	Error     string   `json:"error"`
	LandedIDs []string `json:"landedEntryIDs"`
	FailedID  string   `json:"failedEntryID"`
}

// ListEntriesResponse is a filtered ledger listing.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// DeleteEntriesRequest names the entries to remove.
type DeleteEntriesRequest struct {
	EntryIDs []string `json:"entryIDs" binding:"required,min=1,dive,required"`
}

// DeleteEntriesResponse reports how many rows were actually removed.
type DeleteEntriesResponse struct {
	Deleted int `json:"deleted"`
}

// ToEntryResponse converts a domain entry for the wire.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		Date:           e.Date.Format("2006-01-02"),
		CoachName:      e.CoachName,
		Role:           e.Role,
		ItemLabel:      e.ItemLabel,
		Quantity:       e.Quantity,
		BaseAmount:     e.BaseAmount,
		AssistedCoach:  e.AssistedCoach,
		IsDeduction:    e.IsDeduction,
		ShoesQty:       e.ShoesQty,
		GearQty:        e.GearQty,
		EquipmentBonus: e.EquipmentBonus,
		TotalAmount:    e.TotalAmount,
		CreatedAt:      e.CreatedAt.Format(time.DateTime),
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}
