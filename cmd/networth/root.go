package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/config"
	"github.com/rpgo/networth-projector/internal/log"
)

// options holds the persistent flags shared by every command.
type options struct {
	settingsPath string
	lang         string
	format       string
	logLevel     string

	// overrides applied on top of the settings file when the flag is set
	overrides config.Settings
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := config.DefaultSettings()

	root := &cobra.Command{
		Use:          "networth",
		Short:        "Net worth projection and retirement age estimator",
		Long:         "Project net worth year by year and estimate the probability that retiring at a given age never runs out of money.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.settingsPath, "settings", "s", config.DefaultSettingsFile, "Settings file (.yaml or .toml)")
	pf.StringVar(&opts.lang, "lang", "", "Report language (es, en); defaults to the settings language")
	pf.StringVarP(&opts.format, "format", "f", "", "Output format (console, csv, detailed-csv, comparison-csv, curve-csv, json, html)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	addSettingsFlags(pf, &opts.overrides, defaults, "")

	root.AddCommand(
		newProjectCmd(opts),
		newDecadesCmd(opts),
		newCurveCmd(opts),
		newCompareCmd(opts),
		newReportCmd(opts),
		newSettingsCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// addSettingsFlags registers one flag per settings key, prefixed for the
// second scenario of compare.
func addSettingsFlags(fs *pflag.FlagSet, s *config.Settings, d config.Settings, prefix string) {
	fs.IntVar(&s.CurrentAge, prefix+"current-age", d.CurrentAge, "Current age")
	fs.IntVar(&s.MaxAge, prefix+"max-age", d.MaxAge, "Last simulated age")
	fs.IntVar(&s.DesiredRetirementAge, prefix+"retirement-age", d.DesiredRetirementAge, "Desired retirement age")
	fs.Float64Var(&s.SalaryInitial, prefix+"salary", d.SalaryInitial, "Initial annual salary")
	fs.Float64Var(&s.SavingsInitial, prefix+"savings", d.SavingsInitial, "Initial savings")
	fs.Float64Var(&s.DesiredAnnualSavings, prefix+"annual-savings", d.DesiredAnnualSavings, "Desired annual savings")
	fs.Float64Var(&s.AnnualExpense, prefix+"expense", d.AnnualExpense, "Annual expense")
	fs.Float64Var(&s.AnnualPension, prefix+"pension", d.AnnualPension, "Annual pension from age 65")
	fs.Float64Var(&s.RentalIncome1, prefix+"rental-1", d.RentalIncome1, "First rental income")
	fs.Float64Var(&s.RentalIncome2, prefix+"rental-2", d.RentalIncome2, "Second rental income")
	fs.Float64Var(&s.InitialLoan, prefix+"loan", d.InitialLoan, "Initial loan")
	fs.Float64Var(&s.MeanInflationPct, prefix+"inflation", d.MeanInflationPct, "Mean inflation (%)")
	fs.Float64Var(&s.MeanReturnPct, prefix+"return", d.MeanReturnPct, "Mean investment return (%)")
	fs.IntVar(&s.StartYear, prefix+"start-year", d.StartYear, "Calendar year of the current age")
}

// applyOverrides copies every flag the user actually set onto base.
func applyOverrides(fs *pflag.FlagSet, base config.Settings, o config.Settings, prefix string) config.Settings {
	set := func(name string, apply func()) {
		if fs.Changed(prefix + name) {
			apply()
		}
	}
	set("current-age", func() { base.CurrentAge = o.CurrentAge })
	set("max-age", func() { base.MaxAge = o.MaxAge })
	set("retirement-age", func() { base.DesiredRetirementAge = o.DesiredRetirementAge })
	set("salary", func() { base.SalaryInitial = o.SalaryInitial })
	set("savings", func() { base.SavingsInitial = o.SavingsInitial })
	set("annual-savings", func() { base.DesiredAnnualSavings = o.DesiredAnnualSavings })
	set("expense", func() { base.AnnualExpense = o.AnnualExpense })
	set("pension", func() { base.AnnualPension = o.AnnualPension })
	set("rental-1", func() { base.RentalIncome1 = o.RentalIncome1 })
	set("rental-2", func() { base.RentalIncome2 = o.RentalIncome2 })
	set("loan", func() { base.InitialLoan = o.InitialLoan })
	set("inflation", func() { base.MeanInflationPct = o.MeanInflationPct })
	set("return", func() { base.MeanReturnPct = o.MeanReturnPct })
	set("start-year", func() { base.StartYear = o.StartYear })
	return base
}

// loadSettings reads the settings file and applies command-line overrides.
func (o *options) loadSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.NewSettingsFile(o.settingsPath).Load()
	if err != nil {
		return settings, err
	}
	settings = applyOverrides(cmd.Flags(), settings, o.overrides, "")
	if o.lang != "" {
		settings.Language = o.lang
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (o *options) newLogger(cmd *cobra.Command) (*log.Logger, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Output = cmd.ErrOrStderr()
	return log.New(cfg), nil
}

func (o *options) newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	logger, err := o.newLogger(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngine()
	engine.SetLogger(logger.WithComponent("engine"))
	return engine, nil
}

// formatOr returns the --format value or the command's default.
func (o *options) formatOr(def string) string {
	if o.format == "" {
		return def
	}
	return o.format
}
