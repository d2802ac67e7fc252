package calculation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/rpgo/networth-projector/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTrials is the number of trials run per candidate retirement age.
	DefaultTrials = 500
	// DefaultSuccessThreshold is the fraction of surviving trials an age needs.
	DefaultSuccessThreshold = 0.9

	// InflationStdDev is the spread of the per-trial inflation draw.
	InflationStdDev = 0.005
	// ReturnStdDev is the spread of the per-trial return draw.
	ReturnStdDev = 0.01

	maxWorkers = 10
)

// CurveConfig controls a retirement-curve estimation.
type CurveConfig struct {
	Trials           int
	SuccessThreshold float64
	// Seed fixes the random streams. Zero picks a fresh seed.
	Seed int64
	// Workers bounds how many candidate ages run concurrently. Zero picks a
	// default based on GOMAXPROCS.
	Workers int
}

// DefaultCurveConfig returns 500 trials with a 90% success threshold.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		Trials:           DefaultTrials,
		SuccessThreshold: DefaultSuccessThreshold,
	}
}

// Validate checks the trial count and threshold.
func (c CurveConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", domain.ErrInvalidParameter, c.Trials)
	}
	if c.SuccessThreshold < 0 || c.SuccessThreshold > 1 {
		return fmt.Errorf("%w: success threshold must be between 0 and 1, got %g", domain.ErrInvalidParameter, c.SuccessThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", domain.ErrInvalidParameter)
	}
	return nil
}

func (c CurveConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return min(runtime.GOMAXPROCS(0), maxWorkers)
}

// RetirementCurve estimates, for every candidate retirement age from the
// current age to the max age, the fraction of randomized trials that never
// go insolvent, and picks the first age meeting the success threshold.
//
// Each trial draws one inflation rate and one return rate and keeps them for
// its whole run. Candidate ages run in parallel; each owns a random stream
// derived from (seed, age), so the result for a given seed does not depend on
// the worker count. Cancelling ctx aborts the run with ctx.Err().
func RetirementCurve(ctx context.Context, sc domain.ScenarioContext, p domain.SimulationParameters, cfg CurveConfig) (*domain.RetirementCurve, error) {
	if err := validateInputs(sc, p); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = seedFunc()
	}

	points := make([]domain.RetirementPoint, p.Years())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())

	for i := range points {
		age := p.CurrentAge + i
		g.Go(func() error {
			point, err := estimateRetirementAge(gctx, sc, p, age, cfg)
			if err != nil {
				return err
			}
			points[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.RetirementCurve{
		Points:     points,
		Threshold:  cfg.SuccessThreshold,
		OptimalAge: optimalRetirementAge(points, cfg.SuccessThreshold),
		Seed:       cfg.Seed,
	}, nil
}

// estimateRetirementAge runs cfg.Trials trials for one candidate age.
func estimateRetirementAge(ctx context.Context, sc domain.ScenarioContext, p domain.SimulationParameters, retirementAge int, cfg CurveConfig) (domain.RetirementPoint, error) {
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(retirementAge)))

	successes := 0
	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return domain.RetirementPoint{}, err
		}
		inflation := p.MeanInflationRate + InflationStdDev*rng.NormFloat64()
		returnRate := p.MeanReturnRate + ReturnStdDev*rng.NormFloat64()
		if survivesTrial(sc, p, retirementAge, inflation, returnRate) {
			successes++
		}
	}

	return domain.RetirementPoint{
		Age:                retirementAge,
		SuccessProbability: float64(successes) / float64(cfg.Trials),
		Successes:          successes,
		Trials:             cfg.Trials,
	}, nil
}

// survivesTrial simulates ages retirementAge..MaxAge under one trial's drawn
// rates and reports whether net worth stays non-negative throughout.
//
// Known inconsistency with projectYear: here the trial starts at the
// candidate retirement age with salary and pension at their initial values,
// and the salary-growth gate (age < retirementAge) never fires, so both keep
// paying until the pension age. projectYear instead zeroes salary at
// retirement and starts the pension at 65. Which rule is intended is an open
// question; both are kept as they are.
func survivesTrial(sc domain.ScenarioContext, p domain.SimulationParameters, retirementAge int, inflation, returnRate float64) bool {
	s := seedState(sc, p)
	s.pension = p.AnnualPension

	inflationFactor := 1 + inflation
	returnFactor := 1 + returnRate
	for age := retirementAge; age <= p.MaxAge; age++ {
		if age < retirementAge {
			s.salary *= inflationFactor
			s.pension = 0
		}
		if age >= domain.PensionAge {
			s.salary = 0
			s.pension *= inflationFactor
		}

		s = s.settle(inflationFactor, returnFactor)
		if s.netWorth < 0 {
			return false
		}
	}
	return true
}

// optimalRetirementAge returns the first age, in ascending order, whose
// probability meets the threshold, or nil when none does.
func optimalRetirementAge(points []domain.RetirementPoint, threshold float64) *int {
	for _, pt := range points {
		if pt.SuccessProbability >= threshold {
			age := pt.Age
			return &age
		}
	}
	return nil
}
