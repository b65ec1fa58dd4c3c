package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/black-yen/sketer-workmoney/internal/core/domain"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreCSV    = "csv"
	StoreSheets = "sheets"
	StorePgSQL  = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	Timezone     string

	StoreBackend string

	// csv backend
	CSVPath string

	// sheets backend
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsSheetName       string

	// pgsql backend
	DatabaseURL   string
	EnableDBCheck bool

	PayrollConfigFile string
	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("TIMEZONE", "Asia/Taipei")
	viper.SetDefault("STORE_BACKEND", StoreCSV)
	viper.SetDefault("CSV_PATH", "workmoney_ledger.csv")
	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "")
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_SHEET_NAME", "salary_database")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PAYROLL_CONFIG_FILE", "")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		Timezone:              viper.GetString("TIMEZONE"),
		StoreBackend:          viper.GetString("STORE_BACKEND"),
		CSVPath:               viper.GetString("CSV_PATH"),
		SheetsCredentialsFile: viper.GetString("SHEETS_CREDENTIALS_FILE"),
		SheetsSpreadsheetID:   viper.GetString("SHEETS_SPREADSHEET_ID"),
		SheetsSheetName:       viper.GetString("SHEETS_SHEET_NAME"),
		DatabaseURL:           viper.GetString("PGSQL_URL"),
		EnableDBCheck:         viper.GetBool("ENABLE_DB_CHECK"),
		PayrollConfigFile:     viper.GetString("PAYROLL_CONFIG_FILE"),
		RateLimitRequests:     viper.GetInt64("RATE_LIMIT_REQUESTS"),
	}

	period, err := time.ParseDuration(viper.GetString("RATE_LIMIT_PERIOD"))
	if err != nil {
		period = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD. Defaulting to %s.\n", period)
	}
	cfg.RateLimitPeriod = period

	switch cfg.StoreBackend {
	case StoreCSV, StoreSheets, StorePgSQL:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.StoreBackend == StoreSheets && (cfg.SheetsCredentialsFile == "" || cfg.SheetsSpreadsheetID == "") {
		return nil, fmt.Errorf("sheets backend requires SHEETS_CREDENTIALS_FILE and SHEETS_SPREADSHEET_ID")
	}
	if cfg.StoreBackend == StorePgSQL && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("pgsql backend requires PGSQL_URL")
	}

	return cfg, nil
}

// Location resolves the configured billing timezone, falling back to the
// original deployment's fixed UTC+8 offset when tzdata is unavailable.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: Unknown TIMEZONE %q. Falling back to UTC+8.\n", c.Timezone)
		return time.FixedZone("UTC+8", 8*60*60)
	}
	return loc
}

// LoadPayrollConfig reads the payroll document (rates, extras, role flags,
// roster) from the given YAML file. An empty path yields the built-in
// defaults, which mirror the historical deployment.
func LoadPayrollConfig(path string) (domain.PayrollConfig, error) {
	cfg := defaultPayrollConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return domain.PayrollConfig{}, fmt.Errorf("failed to read payroll config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.PayrollConfig{}, fmt.Errorf("failed to parse payroll config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultPayrollConfig() domain.PayrollConfig {
	return domain.PayrollConfig{
		Rates: domain.RateTable{
			"主教":   {"基礎": 180, "進階": 195, "高級": 240, "速樁": 250},
			"實習主教": {"基礎": 140, "進階": 155, "高級": 190, "速樁": 190},
			"助教":   {"基礎": 400, "進階": 400, "高級": 400, "進高合": 500},
			"實習助教": {"基礎": 200, "進階": 200, "高級": 200, "進高合": 250},
		},
		Extras: domain.ExtrasTable{"鞋子": 500, "護具": 100},
		Roles: map[string]domain.RoleConfig{
			"主教":   {ScalesWithHeadcount: true},
			"實習主教": {ScalesWithHeadcount: true},
			"助教":   {ScalesWithHeadcount: false},
			"實習助教": {ScalesWithHeadcount: false},
		},
		Coaches: []domain.Coach{
			{Name: "莊祥霖", Role: "主教", IsAdmin: true},
			{Name: "測試教練", Role: "助教", IsAdmin: false},
		},
		Equipment: domain.EquipmentConfig{ShoesItem: "鞋子", GearItem: "護具"},
	}
}
