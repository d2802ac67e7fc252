package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/pkg/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the settings file looked up in the working directory.
const DefaultSettingsFile = "settings.yaml"

// Settings is the user-editable key/value record the presentation layer
// persists. Rates are in percent, as entered by the user.
type Settings struct {
	CurrentAge           int     `yaml:"current_age" toml:"current_age" json:"current_age"`
	MaxAge               int     `yaml:"max_age" toml:"max_age" json:"max_age"`
	DesiredRetirementAge int     `yaml:"desired_retirement_age" toml:"desired_retirement_age" json:"desired_retirement_age"`
	SalaryInitial        float64 `yaml:"salary_initial" toml:"salary_initial" json:"salary_initial"`
	SavingsInitial       float64 `yaml:"savings_initial" toml:"savings_initial" json:"savings_initial"`
	DesiredAnnualSavings float64 `yaml:"desired_annual_savings" toml:"desired_annual_savings" json:"desired_annual_savings"`
	AnnualExpense        float64 `yaml:"annual_expense" toml:"annual_expense" json:"annual_expense"`
	AnnualPension        float64 `yaml:"annual_pension" toml:"annual_pension" json:"annual_pension"`
	RentalIncome1        float64 `yaml:"rental_income_1" toml:"rental_income_1" json:"rental_income_1"`
	RentalIncome2        float64 `yaml:"rental_income_2" toml:"rental_income_2" json:"rental_income_2"`
	InitialLoan          float64 `yaml:"initial_loan" toml:"initial_loan" json:"initial_loan"`
	MeanInflationPct     float64 `yaml:"mean_inflation_pct" toml:"mean_inflation_pct" json:"mean_inflation_pct"`
	MeanReturnPct        float64 `yaml:"mean_return_pct" toml:"mean_return_pct" json:"mean_return_pct"`
	StartYear            int     `yaml:"start_year" toml:"start_year" json:"start_year"`
	Language             string  `yaml:"language" toml:"language" json:"language"`
}

// DefaultSettings returns the values used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		CurrentAge:           48,
		MaxAge:               100,
		DesiredRetirementAge: 52,
		SalaryInitial:        25000,
		SavingsInitial:       100000,
		DesiredAnnualSavings: 0,
		AnnualExpense:        24000,
		AnnualPension:        18000,
		RentalIncome1:        0,
		RentalIncome2:        0,
		InitialLoan:          0,
		MeanInflationPct:     2.0,
		MeanReturnPct:        2.5,
		StartYear:            2025,
		Language:             "es",
	}
}

// Context returns the scenario identity derived from the settings.
func (s Settings) Context() domain.ScenarioContext {
	return domain.ScenarioContext{
		InitialSalary:   s.SalaryInitial,
		InitialNetWorth: s.SavingsInitial,
		StartYear:       s.StartYear,
		InitialLoan:     s.InitialLoan,
		RentalIncome1:   s.RentalIncome1,
		RentalIncome2:   s.RentalIncome2,
	}
}

// Parameters converts the settings into simulation inputs, turning the
// percent rates into fractions.
func (s Settings) Parameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		SalaryInitial:        s.SalaryInitial,
		SavingsInitial:       s.SavingsInitial,
		AnnualExpense:        s.AnnualExpense,
		DesiredAnnualSavings: s.DesiredAnnualSavings,
		AnnualPension:        s.AnnualPension,
		CurrentAge:           s.CurrentAge,
		MaxAge:               s.MaxAge,
		DesiredRetirementAge: s.DesiredRetirementAge,
		MeanInflationRate:    decimal.FromPercent(s.MeanInflationPct),
		MeanReturnRate:       decimal.FromPercent(s.MeanReturnPct),
	}
}

// Validate checks the settings the same way the engine would.
func (s Settings) Validate() error {
	if err := s.Parameters().Validate(); err != nil {
		return err
	}
	if err := s.Context().Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Language) == "" {
		return fmt.Errorf("%w: language is required", domain.ErrInvalidParameter)
	}
	return nil
}

// Modified reports whether any value differs from original.
func (s Settings) Modified(original Settings) bool {
	return s != original
}

// SettingsFile reads and writes Settings as YAML, or TOML when the path ends
// in .toml.
type SettingsFile struct {
	Path string
}

// NewSettingsFile creates a settings file handle; an empty path uses
// DefaultSettingsFile.
func NewSettingsFile(path string) *SettingsFile {
	if path == "" {
		path = DefaultSettingsFile
	}
	return &SettingsFile{Path: path}
}

// Exists returns true if the settings file is present on disk.
func (sf *SettingsFile) Exists() bool {
	_, err := os.Stat(sf.Path)
	return err == nil
}

func (sf *SettingsFile) isTOML() bool {
	return strings.EqualFold(filepath.Ext(sf.Path), ".toml")
}

// Load reads the settings file on top of the defaults, so keys missing from
// the file keep their default value. A missing file yields the defaults.
func (sf *SettingsFile) Load() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(sf.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read file %s: %w", sf.Path, err)
	}

	if sf.isTOML() {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("settings validation failed: %w", err)
	}
	return settings, nil
}

// Save writes the settings, creating the parent directory when needed.
func (sf *SettingsFile) Save(settings Settings) error {
	if dir := filepath.Dir(sf.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings dir: %w", err)
		}
	}

	var (
		data []byte
		err  error
	)
	if sf.isTOML() {
		var buf strings.Builder
		err = toml.NewEncoder(&buf).Encode(settings)
		data = []byte(buf.String())
	} else {
		data, err = yaml.Marshal(settings)
	}
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(sf.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", sf.Path, err)
	}
	return nil
}
