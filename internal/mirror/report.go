package mirror

import (
	"time"

	"github.com/kevinfinalboss/corsair/pkg/types"
)

type pairKey struct {
	line        int
	destination types.RegistryKind
}

// BuildReport monta o relatório final na ordem de despacho: a ordem
// das linhas da lista e, dentro de cada linha, a ordem dos destinos.
// A ordem de término das goroutines não aparece no relatório.
func BuildReport(jobs []types.MirrorJob, outcomes []*types.PushOutcome, validations []types.ValidationResult, elapsed time.Duration) *types.RunReport {
	report := &types.RunReport{
		TotalJobs:   len(jobs),
		Duration:    elapsed,
		Validations: validations,
	}

	byPair := make(map[pairKey]*types.PushOutcome, len(outcomes))
	for _, outcome := range outcomes {
		byPair[pairKey{outcome.Job.Line, outcome.Destination}] = outcome
	}

	for _, job := range jobs {
		for _, destination := range job.Destinations {
			report.TotalPairs++

			outcome, exists := byPair[pairKey{job.Line, destination}]
			if !exists {
				continue
			}

			report.Outcomes = append(report.Outcomes, outcome)
			if outcome.Success {
				report.SuccessCount++
			} else {
				report.FailureCount++
				report.Failures = append(report.Failures, outcome)
			}
		}
	}

	return report
}
