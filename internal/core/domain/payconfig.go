package domain

// RateTable maps role name -> item name -> unit price. Prices are whole
// currency units; fractional currency is not supported anywhere in the
// system.
type RateTable map[string]map[string]int64

// ItemsForRole returns the billable items for a role. A role missing from
// the table yields an empty item set, never an error; only equipment sales
// remain possible for such a role.
func (rt RateTable) ItemsForRole(role string) map[string]int64 {
	items, ok := rt[role]
	if !ok {
		return map[string]int64{}
	}
	out := make(map[string]int64, len(items))
	for k, v := range items {
		out[k] = v
	}
	return out
}

// ExtrasTable maps equipment name -> unit price, independent of role.
type ExtrasTable map[string]int64

// RoleConfig carries the per-role classification flags. ScalesWithHeadcount
// marks a "lead" role: pay for a class is unit price times student headcount.
// All other roles are paid a flat amount per session.
type RoleConfig struct {
	ScalesWithHeadcount bool `json:"scalesWithHeadcount" mapstructure:"scales_with_headcount"`
}

// EquipmentConfig names the extras-table keys used for the dedicated
// shoes/gear quantity fields on a submission.
type EquipmentConfig struct {
	ShoesItem string `mapstructure:"shoes_item"`
	GearItem  string `mapstructure:"gear_item"`
}

// PayrollConfig is the externally supplied configuration consumed by the
// rate resolver and the ledger engine. It is loaded once and passed by
// value; nothing in the engine mutates it.
type PayrollConfig struct {
	Rates     RateTable             `mapstructure:"rates"`
	Extras    ExtrasTable           `mapstructure:"extras"`
	Roles     map[string]RoleConfig `mapstructure:"roles"`
	Coaches   []Coach               `mapstructure:"coaches"`
	Equipment EquipmentConfig       `mapstructure:"equipment"`
}

// ShoePrice returns the unit price of the configured shoes item.
func (c PayrollConfig) ShoePrice() int64 {
	return c.Extras[c.Equipment.ShoesItem]
}

// GearPrice returns the unit price of the configured gear item.
func (c PayrollConfig) GearPrice() int64 {
	return c.Extras[c.Equipment.GearItem]
}

// IsLeadRole reports whether pay for the role scales with headcount.
// Classification comes from configuration, never from the role name.
func (c PayrollConfig) IsLeadRole(role string) bool {
	return c.Roles[role].ScalesWithHeadcount
}

// FindCoach looks up a roster member by name.
func (c PayrollConfig) FindCoach(name string) (Coach, bool) {
	for _, coach := range c.Coaches {
		if coach.Name == name {
			return coach, true
		}
	}
	return Coach{}, false
}
