package domain

// CoachSummary is one row of a monthly payroll report: all entries of one
// coach within the reporting window, rolled up.
type CoachSummary struct {
	CoachName    string `json:"coachName"`
	EntryCount   int    `json:"entryCount"`
	TotalAmount  int64  `json:"totalAmount"`
	HeadcountSum int64  `json:"headcountSum"`
	ShoesSum     int64  `json:"shoesSum"`
	GearSum      int64  `json:"gearSum"`
}
