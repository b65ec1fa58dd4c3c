package dto

// RoleRatesResponse lists the billable items for one role plus the
// role-independent extras table. Items is empty for roles missing from the
// rate table; only equipment sales remain possible for those.
type RoleRatesResponse struct {
	Role   string           `json:"role"`
	IsLead bool             `json:"isLead"`
	Items  map[string]int64 `json:"items"`
	Extras map[string]int64 `json:"extras"`
}
