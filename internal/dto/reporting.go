package dto

import "github.com/black-yen/sketer-workmoney/internal/core/domain"

// CoachSummaryResponse is one coach's monthly rollup.
type CoachSummaryResponse struct {
	CoachName    string `json:"coachName"`
	EntryCount   int    `json:"entryCount"`
	TotalAmount  int64  `json:"totalAmount"`
	HeadcountSum int64  `json:"headcountSum"`
	ShoesSum     int64  `json:"shoesSum"`
	GearSum      int64  `json:"gearSum"`
}

// MonthlySummaryResponse is the monthly payroll report.
type MonthlySummaryResponse struct {
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Coaches []CoachSummaryResponse `json:"coaches"`
}

// ToMonthlySummaryResponse converts domain summaries for the wire.
func ToMonthlySummaryResponse(year, month int, summaries []domain.CoachSummary) MonthlySummaryResponse {
	coaches := make([]CoachSummaryResponse, len(summaries))
	for i, s := range summaries {
		coaches[i] = CoachSummaryResponse{
			CoachName:    s.CoachName,
			EntryCount:   s.EntryCount,
			TotalAmount:  s.TotalAmount,
			HeadcountSum: s.HeadcountSum,
			ShoesSum:     s.ShoesSum,
			GearSum:      s.GearSum,
		}
	}
	return MonthlySummaryResponse{Year: year, Month: month, Coaches: coaches}
}
