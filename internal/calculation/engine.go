package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
)

// ReportOptions selects the optional parts of a report.
type ReportOptions struct {
	IncludeCurve bool
	// Curve with zero Trials and zero SuccessThreshold selects
	// DefaultCurveConfig, keeping its Seed and Workers. Set Trials to ask
	// for a threshold of 0.
	Curve CurveConfig
	// CompareWith, when set, adds a side-by-side projection for a second
	// parameter set.
	CompareWith *domain.SimulationParameters
	Language    string
}

// Engine orchestrates the projection, the decade summary and the retirement
// curve for the presentation layer. It holds no state between calls.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Project runs the deterministic projection.
func (e *Engine) Project(sc domain.ScenarioContext, p domain.SimulationParameters) (domain.Trajectory, error) {
	start := nowFunc()
	trajectory, err := Project(sc, p)
	if err != nil {
		e.Logger.Warnf("projection rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("projected %d years (ages %d-%d) in %s", len(trajectory), p.CurrentAge, p.MaxAge, nowFunc().Sub(start))
	return trajectory, nil
}

// RetirementCurve runs the Monte Carlo estimator.
func (e *Engine) RetirementCurve(ctx context.Context, sc domain.ScenarioContext, p domain.SimulationParameters, cfg CurveConfig) (*domain.RetirementCurve, error) {
	start := nowFunc()
	curve, err := RetirementCurve(ctx, sc, p, cfg)
	if err != nil {
		e.Logger.Warnf("retirement curve failed: %v", err)
		return nil, err
	}
	if curve.OptimalAge != nil {
		e.Logger.Infof("optimal retirement age %d at threshold %.2f (seed %d)", *curve.OptimalAge, curve.Threshold, curve.Seed)
	} else {
		e.Logger.Infof("no retirement age reaches threshold %.2f (seed %d)", curve.Threshold, curve.Seed)
	}
	e.Logger.Debugf("evaluated %d candidate ages x %d trials in %s", len(curve.Points), cfg.Trials, nowFunc().Sub(start))
	return curve, nil
}

// BuildReport assembles everything a formatter needs for one request.
func (e *Engine) BuildReport(ctx context.Context, sc domain.ScenarioContext, p domain.SimulationParameters, opts ReportOptions) (*domain.Report, error) {
	trajectory, err := e.Project(sc, p)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Context:    sc,
		Parameters: p,
		Trajectory: trajectory,
		Decades:    SummarizeByDecade(trajectory),
		Language:   opts.Language,
	}

	if age, insolvent := trajectory.FirstInsolventAge(); insolvent {
		e.Logger.Infof("projected net worth turns negative at age %d", age)
	}

	if opts.IncludeCurve {
		cfg := opts.Curve
		if cfg.Trials == 0 && cfg.SuccessThreshold == 0 {
			cfg = DefaultCurveConfig()
			cfg.Seed = opts.Curve.Seed
			cfg.Workers = opts.Curve.Workers
		}
		curve, err := e.RetirementCurve(ctx, sc, p, cfg)
		if err != nil {
			return nil, fmt.Errorf("retirement curve: %w", err)
		}
		report.Curve = curve
	}

	if opts.CompareWith != nil {
		comparison, err := CompareScenarios(sc, p, *opts.CompareWith)
		if err != nil {
			return nil, fmt.Errorf("scenario comparison: %w", err)
		}
		report.Comparison = comparison
	}

	return report, nil
}
