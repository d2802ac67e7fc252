package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/networth-projector/internal/api"
	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/config"
	"github.com/rpgo/networth-projector/internal/domain"
	"github.com/rpgo/networth-projector/internal/output"
)

// buildReport loads settings, runs the engine and returns the report.
func (o *options) buildReport(cmd *cobra.Command, opts calculation.ReportOptions) (*domain.Report, error) {
	settings, err := o.loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return o.buildReportFrom(cmd, settings, opts)
}

func (o *options) buildReportFrom(cmd *cobra.Command, settings config.Settings, opts calculation.ReportOptions) (*domain.Report, error) {
	engine, err := o.newEngine(cmd)
	if err != nil {
		return nil, err
	}
	opts.Language = settings.Language
	return engine.BuildReport(cmd.Context(), settings.Context(), settings.Parameters(), opts)
}

func (o *options) render(cmd *cobra.Command, report *domain.Report, defaultFormat string) error {
	data, err := output.Render(report, o.formatOr(defaultFormat))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newProjectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Project net worth year by year",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := o.buildReport(cmd, calculation.ReportOptions{})
			if err != nil {
				return err
			}
			return o.render(cmd, report, "console")
		},
	}
}

func newDecadesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decades",
		Short: "Summarize the projection by decade of age",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := o.buildReport(cmd, calculation.ReportOptions{})
			if err != nil {
				return err
			}
			return o.render(cmd, report, "csv")
		},
	}
}

func addCurveFlags(cmd *cobra.Command, cfg *calculation.CurveConfig) {
	d := calculation.DefaultCurveConfig()
	cmd.Flags().IntVar(&cfg.Trials, "trials", d.Trials, "Monte Carlo trials per candidate age")
	cmd.Flags().Float64Var(&cfg.SuccessThreshold, "threshold", d.SuccessThreshold, "Success probability an age needs (0-1)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 picks one)")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "Candidate ages evaluated in parallel (0 = automatic)")
}

func newCurveCmd(o *options) *cobra.Command {
	var cfg calculation.CurveConfig
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Estimate the success probability of each retirement age",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := o.buildReport(cmd, calculation.ReportOptions{IncludeCurve: true, Curve: cfg})
			if err != nil {
				return err
			}
			if o.format == "" {
				return writeCurveSummary(cmd, report)
			}
			return o.render(cmd, report, "curve-csv")
		},
	}
	addCurveFlags(cmd, &cfg)
	return cmd
}

// writeCurveSummary prints only the curve section for the default console view.
func writeCurveSummary(cmd *cobra.Command, report *domain.Report) error {
	l := output.LabelsFor(report.Language)
	curve := report.Curve
	out := cmd.OutOrStdout()
	trials := 0
	if len(curve.Points) > 0 {
		trials = curve.Points[0].Trials
	}
	fmt.Fprintf(out, "%s (%s %s, seed %d)\n", l.CurveTitle, humanize.Comma(int64(trials)), l.Trials, curve.Seed)
	for _, p := range curve.Points {
		fmt.Fprintf(out, "  %3d  %8s\n", p.Age, output.FormatProbability(p.SuccessProbability))
	}
	if curve.OptimalAge != nil {
		fmt.Fprintf(out, "%s: %d\n", l.OptimalAge, *curve.OptimalAge)
	} else {
		fmt.Fprintln(out, l.NotReached)
	}
	return nil
}

func newCompareCmd(o *options) *cobra.Command {
	var b config.Settings
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two scenarios sharing the same context",
		Long:  "Scenario A uses the settings; scenario B starts from them and applies the --b-* flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.loadSettings(cmd)
			if err != nil {
				return err
			}
			pb := applyOverrides(cmd.Flags(), settings, b, "b-").Parameters()
			report, err := o.buildReportFrom(cmd, settings, calculation.ReportOptions{CompareWith: &pb})
			if err != nil {
				return err
			}
			return o.render(cmd, report, "console")
		},
	}
	addSettingsFlags(cmd.Flags(), &b, config.DefaultSettings(), "b-")
	return cmd
}

func newReportCmd(o *options) *cobra.Command {
	var (
		dir          string
		includeCurve bool
		compareAge   int
		cfg          calculation.CurveConfig
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write report files to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.loadSettings(cmd)
			if err != nil {
				return err
			}
			opts := calculation.ReportOptions{IncludeCurve: includeCurve, Curve: cfg}
			if cmd.Flags().Changed("compare-retirement-age") {
				alt := settings
				alt.DesiredRetirementAge = compareAge
				pb := alt.Parameters()
				opts.CompareWith = &pb
			}
			report, err := o.buildReportFrom(cmd, settings, opts)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}
			paths, err := output.GenerateReport(report, o.formatOr("all"), dir)
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&dir, "output-dir", "o", ".", "Directory for report files")
	cmd.Flags().BoolVar(&includeCurve, "curve", false, "Include the Monte Carlo retirement curve")
	cmd.Flags().IntVar(&compareAge, "compare-retirement-age", 0, "Add a comparison scenario retiring at this age")
	addCurveFlags(cmd, &cfg)
	return cmd
}

func newSettingsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the settings file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file := config.NewSettingsFile(o.settingsPath)
			if file.Exists() && !force {
				return fmt.Errorf("settings file %s already exists (use --force to overwrite)", file.Path)
			}
			if err := file.Save(config.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file.Path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (file plus flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := o.loadSettings(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save the effective settings back to the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file := config.NewSettingsFile(o.settingsPath)
			original, err := file.Load()
			if err != nil {
				return err
			}
			settings, err := o.loadSettings(cmd)
			if err != nil {
				return err
			}
			if !settings.Modified(original) && file.Exists() {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			if err := file.Save(settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", file.Path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, saveCmd)
	return cmd
}

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			if !cmd.Flags().Changed("addr") {
				if port := os.Getenv("PORT"); port != "" {
					addr = ":" + port
				}
			}

			logger, err := o.newLogger(cmd)
			if err != nil {
				return err
			}
			engine := calculation.NewEngine()
			engine.SetLogger(logger.WithComponent("engine"))
			server := api.NewServer(engine, logger.WithComponent("api"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (PORT env overrides the default)")
	return cmd
}
