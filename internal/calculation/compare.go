package calculation

import (
	"fmt"

	"github.com/rpgo/networth-projector/internal/domain"
)

// Scenario labels used by CompareScenarios.
const (
	ScenarioAName = "Scenario A"
	ScenarioBName = "Scenario B"
)

// CompareScenarios projects two parameter sets against the same context so
// their net worth paths can be charted side by side.
func CompareScenarios(sc domain.ScenarioContext, a, b domain.SimulationParameters) (*domain.ScenarioComparison, error) {
	comparison := &domain.ScenarioComparison{Context: sc}
	for _, s := range []struct {
		name   string
		params domain.SimulationParameters
	}{
		{ScenarioAName, a},
		{ScenarioBName, b},
	} {
		trajectory, err := Project(sc, s.params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		comparison.Scenarios = append(comparison.Scenarios, domain.NamedTrajectory{
			Name:       s.name,
			Parameters: s.params,
			Trajectory: trajectory,
		})
	}
	return comparison, nil
}
