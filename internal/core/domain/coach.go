package domain

// Coach is a roster member. The name is the identity used throughout the
// ledger; there is no separate user ID.
type Coach struct {
	Name    string `json:"name" mapstructure:"name"`
	Role    string `json:"role" mapstructure:"role"`
	IsAdmin bool   `json:"isAdmin" mapstructure:"is_admin"`
}
