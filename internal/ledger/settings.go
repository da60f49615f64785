package ledger

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ngthgila/Taxi/internal/period"
	"github.com/ngthgila/Taxi/internal/record"
	"github.com/ngthgila/Taxi/internal/restday"
	"github.com/ngthgila/Taxi/internal/split"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TAXILEDGER_STORAGE_BACKEND.
const EnvPrefix = "TAXILEDGER"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
)

type SplitSettings struct {
	DriverPercentage string `mapstructure:"driver_percentage"`
	DriverStipend    string `mapstructure:"driver_stipend"`
}

type GapSettings struct {
	Year     bool   `mapstructure:"year"`
	RestDays string `mapstructure:"rest_days"`
}

type StorageSettings struct {
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
	RemoteURL  string `mapstructure:"remote_url"`
}

type WatchSettings struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// Settings is the application configuration loaded from config.yaml and
// the environment.
type Settings struct {
	Split    SplitSettings   `mapstructure:"split"`
	Gaps     GapSettings     `mapstructure:"gaps"`
	Storage  StorageSettings `mapstructure:"storage"`
	Watch    WatchSettings   `mapstructure:"watch"`
	Server   ServerSettings  `mapstructure:"server"`
	Timezone string          `mapstructure:"timezone"`
}

// setting describes one configurable key.
type setting struct {
	def      any
	validate func(string) (any, error)
}

var settings = map[string]setting{
	"split.driver_percentage": {"0.2923", validatePercent},
	"split.driver_stipend":    {"3000000", validateStipend},
	"gaps.year":               {false, validateBool},
	"gaps.rest_days":          {"", validateRestDays},
	"storage.backend":         {BackendFile, validateBackend},
	"storage.sqlite_path":     {"", validateAny},
	"storage.remote_url":      {"", validateURL},
	"watch.interval":          {2 * time.Second, validateInterval},
	"server.addr":             {":8080", validateAny},
	"timezone":                {"Asia/Ho_Chi_Minh", validateTimezone},
}

// Keys returns every settings key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsPath returns the path of config.yaml inside the data directory.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

func newViper(dataDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(SettingsPath(dataDir))
	v.SetConfigType("yaml")

	for key, s := range settings {
		v.SetDefault(key, s.def)
	}

	// environment overrides, e.g. TAXILEDGER_GAPS_YEAR=true
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readIfExists(v, dataDir); err != nil {
		return nil, err
	}
	return v, nil
}

func readIfExists(v *viper.Viper, dataDir string) error {
	if _, err := os.Stat(SettingsPath(dataDir)); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// LoadSettings reads config.yaml (if any), applies defaults and environment
// overrides.
func LoadSettings(dataDir string) (*Settings, error) {
	v, err := newViper(dataDir)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}

// GetSetting returns the effective value of key.
func GetSetting(dataDir, key string) (string, error) {
	if _, ok := settings[key]; !ok {
		return "", unknownKey(key)
	}
	v, err := newViper(dataDir)
	if err != nil {
		return "", err
	}
	return v.GetString(key), nil
}

// SetSetting validates value and persists it to config.yaml. Returns the
// stored form of the value.
func SetSetting(dataDir, key, value string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", unknownKey(key)
	}
	stored, err := s.validate(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid value for '%s': %w", key, err)
	}

	// only file contents are written back, never defaults or env overrides
	v := viper.New()
	v.SetConfigFile(SettingsPath(dataDir))
	v.SetConfigType("yaml")
	if err := readIfExists(v, dataDir); err != nil {
		return "", err
	}
	v.Set(key, stored)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := v.WriteConfigAs(SettingsPath(dataDir)); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return fmt.Sprint(stored), nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting '%s' (valid: %s)", key, strings.Join(Keys(), ", "))
}

// SplitConfig parses the split settings.
func (s *Settings) SplitConfig() (split.Config, error) {
	pct, err := decimal.NewFromString(s.Split.DriverPercentage)
	if err != nil {
		return split.Config{}, fmt.Errorf("invalid split.driver_percentage '%s'", s.Split.DriverPercentage)
	}
	stipend, err := decimal.NewFromString(s.Split.DriverStipend)
	if err != nil {
		return split.Config{}, fmt.Errorf("invalid split.driver_stipend '%s'", s.Split.DriverStipend)
	}
	cfg := split.Config{DriverPercentage: pct, DriverStipend: stipend}
	if err := cfg.Validate(); err != nil {
		return split.Config{}, err
	}
	return cfg, nil
}

// GapPolicy returns the gap reporting policy.
func (s *Settings) GapPolicy() record.GapPolicy {
	return record.DefaultGapPolicy().With(period.KindYear, s.Gaps.Year)
}

// RestDays parses the rest-day rule; nil when none is configured.
func (s *Settings) RestDays() (*restday.Rule, error) {
	return restday.Parse(s.Gaps.RestDays)
}

// Location loads the configured time zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", s.Timezone, err)
	}
	return loc, nil
}

func validateAny(s string) (any, error) {
	return s, nil
}

func validatePercent(s string) (any, error) {
	pct, err := split.ParsePercent(s)
	if err != nil {
		return nil, err
	}
	cfg := split.DefaultConfig()
	cfg.DriverPercentage = pct
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pct.String(), nil
}

func validateStipend(s string) (any, error) {
	d, err := record.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return d.String(), nil
}

func validateBool(s string) (any, error) {
	return strconv.ParseBool(s)
}

func validateRestDays(s string) (any, error) {
	if _, err := restday.Parse(s); err != nil {
		return nil, err
	}
	return s, nil
}

func validateBackend(s string) (any, error) {
	switch s {
	case BackendFile, BackendSQLite, BackendRemote:
		return s, nil
	}
	return nil, fmt.Errorf("backend must be one of %s, %s, %s", BackendFile, BackendSQLite, BackendRemote)
}

func validateURL(s string) (any, error) {
	if s == "" {
		return s, nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("expected an http(s) URL")
	}
	return strings.TrimRight(s, "/"), nil
}

func validateInterval(s string) (any, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	if d <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	return d.String(), nil
}

func validateTimezone(s string) (any, error) {
	if _, err := time.LoadLocation(s); err != nil {
		return nil, err
	}
	return s, nil
}
