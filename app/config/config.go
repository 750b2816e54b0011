package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"SalesDashboard/app/security"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Environment name: "development" or "production"
	Env string `json:"env"`

	Server     ServerConfig     `json:"server"`
	Log        LogConfig        `json:"log"`
	Activity   ActivityConfig   `json:"activity"`
	Commission CommissionConfig `json:"commission"`
	Discovery  DiscoveryConfig  `json:"discovery"`
	Sheets     SheetsConfig     `json:"google_sheets"`

	// RateLimit uses the limiter format, e.g. "300-M"
	RateLimit string `json:"rate_limit"`

	// SeedData loads the demo employees, products and sales at startup
	SeedData bool `json:"seed_data"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `json:"level"`
	Dir   string `json:"dir"`
}

// ActivityConfig holds the activity journal database settings
type ActivityConfig struct {
	Driver string `json:"driver"` // "sqlite" or "postgres"
	DSN    string `json:"dsn"`
}

// CommissionConfig controls how sale line commission is computed
type CommissionConfig struct {
	DefaultRate     decimal.Decimal `json:"default_rate"`
	UseEmployeeRate bool            `json:"use_employee_rate"`
}

// DiscoveryConfig controls the mDNS announcement
type DiscoveryConfig struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"service_name"`
}

// SheetsConfig holds the Google Sheets export settings
type SheetsConfig struct {
	SpreadsheetID   string `json:"spreadsheet_id"`
	CredentialsFile string `json:"credentials_file"`
	SheetName       string `json:"sheet_name"`

	// Scheduled export: "daily" at SyncTime or "interval" every SyncInterval minutes.
	// An empty mode means manual export only.
	SyncMode     string `json:"sync_mode"`
	SyncInterval int    `json:"sync_interval"`
	SyncTime     string `json:"sync_time"`
}

// Enabled reports whether an export target is configured
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != "" && s.CredentialsFile != ""
}

// Address returns host:port for the HTTP listener
func (cfg *AppConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
}

// IsProduction reports whether the app runs in production mode
func (cfg *AppConfig) IsProduction() bool {
	return strings.EqualFold(cfg.Env, "production")
}

// DefaultConfig returns the configuration used when no file or env overrides exist
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Env: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Activity: ActivityConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Commission: CommissionConfig{
			DefaultRate: decimal.NewFromFloat(0.10),
		},
		Discovery: DiscoveryConfig{
			ServiceName: "Sales Dashboard",
		},
		Sheets: SheetsConfig{
			SheetName:    "Dashboard",
			SyncInterval: 60,
			SyncTime:     "23:00",
		},
		RateLimit: "300-M",
		SeedData:  true,
	}
}

// DataDir returns the per-user data directory, creating it if needed.
// SALESDASH_HOME overrides the location.
func DataDir() (string, error) {
	dir := os.Getenv("SALESDASH_HOME")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		dir = filepath.Join(base, "SalesDashboard")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create data directory: %w", err)
	}
	return dir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ConfigExists checks if the config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoadConfig loads the default config file, applies environment overrides and validates
func LoadConfig() (*AppConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(configPath)
}

// Load reads configuration from path (a missing file means defaults), then
// applies .env and environment overrides and validates the result
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
		if err := cfg.openSecrets(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("could not decrypt sensitive fields: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	// A missing .env file is normal outside development
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path after encrypting sensitive fields
func SaveConfig(cfg *AppConfig, path string) error {
	// Encrypt in a copy to avoid modifying the caller's config
	cfgCopy := *cfg
	if err := cfgCopy.sealSecrets(filepath.Dir(path)); err != nil {
		return fmt.Errorf("could not encrypt sensitive fields: %w", err)
	}

	data, err := json.MarshalIndent(&cfgCopy, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	// Restrictive permissions, the file may hold a database DSN
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

// Validate rejects configurations the server cannot start with
func (cfg *AppConfig) Validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	switch cfg.Activity.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported activity driver %q (use sqlite or postgres)", cfg.Activity.Driver)
	}
	if cfg.Activity.DSN == "" {
		return fmt.Errorf("activity DSN is required")
	}
	rate := cfg.Commission.DefaultRate
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("commission default rate must be between 0 and 1, got %s", rate)
	}
	if cfg.RateLimit == "" {
		return fmt.Errorf("rate limit is required")
	}
	switch cfg.Sheets.SyncMode {
	case "", "daily":
	case "interval":
		if cfg.Sheets.SyncInterval < 1 {
			return fmt.Errorf("sheets sync interval must be at least one minute")
		}
	default:
		return fmt.Errorf("unsupported sheets sync mode %q (use daily or interval)", cfg.Sheets.SyncMode)
	}
	return nil
}

func (cfg *AppConfig) applyEnv() error {
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Dir = getEnv("LOG_DIR", cfg.Log.Dir)
	cfg.Activity.Driver = strings.ToLower(getEnv("ACTIVITY_DRIVER", cfg.Activity.Driver))
	cfg.Activity.DSN = getEnv("ACTIVITY_DSN", cfg.Activity.DSN)
	cfg.RateLimit = getEnv("RATE_LIMIT", cfg.RateLimit)
	cfg.Sheets.SpreadsheetID = getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", cfg.Sheets.SpreadsheetID)
	cfg.Sheets.CredentialsFile = getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", cfg.Sheets.CredentialsFile)
	cfg.Sheets.SheetName = getEnv("GOOGLE_SHEETS_SHEET_NAME", cfg.Sheets.SheetName)
	cfg.Sheets.SyncMode = strings.ToLower(getEnv("GOOGLE_SHEETS_SYNC_MODE", cfg.Sheets.SyncMode))
	cfg.Sheets.SyncTime = getEnv("GOOGLE_SHEETS_SYNC_TIME", cfg.Sheets.SyncTime)

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("GOOGLE_SHEETS_SYNC_INTERVAL"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GOOGLE_SHEETS_SYNC_INTERVAL %q: %w", v, err)
		}
		cfg.Sheets.SyncInterval = minutes
	}
	if v := os.Getenv("COMMISSION_DEFAULT_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid COMMISSION_DEFAULT_RATE %q: %w", v, err)
		}
		cfg.Commission.DefaultRate = rate
	}

	bools := map[string]*bool{
		"COMMISSION_USE_EMPLOYEE_RATE": &cfg.Commission.UseEmployeeRate,
		"MDNS_ENABLED":                 &cfg.Discovery.Enabled,
		"SEED_DATA":                    &cfg.SeedData,
	}
	for key, target := range bools {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*target = b
	}
	return nil
}

// sealSecrets encrypts sensitive configuration fields
func (cfg *AppConfig) sealSecrets(dir string) error {
	sealed, err := security.NewKeyring(dir).Seal(cfg.Activity.DSN)
	if err != nil {
		return fmt.Errorf("could not encrypt activity DSN: %w", err)
	}
	cfg.Activity.DSN = sealed
	return nil
}

// openSecrets decrypts sensitive configuration fields
func (cfg *AppConfig) openSecrets(dir string) error {
	dsn, err := security.NewKeyring(dir).Open(cfg.Activity.DSN)
	if err != nil {
		return fmt.Errorf("could not decrypt activity DSN: %w", err)
	}
	cfg.Activity.DSN = dsn
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
