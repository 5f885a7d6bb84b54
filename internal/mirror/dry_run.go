package mirror

import (
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// dryRunOutcomes simula a rodada sem chamar Push em nenhum adapter.
// Cada par vira um resultado de sucesso com zero tentativas.
func (e *Engine) dryRunOutcomes(jobs []types.MirrorJob) []*types.PushOutcome {
	var outcomes []*types.PushOutcome

	for _, job := range jobs {
		for _, destination := range job.Destinations {
			e.logger.Info("dry_run_would_mirror").
				Int("line", job.Line).
				Str("image", job.SourceImage).
				Str("destination", destination.String()).
				Send()

			outcomes = append(outcomes, &types.PushOutcome{
				Job:         job,
				Destination: destination,
				Success:     true,
			})
		}
	}

	return outcomes
}
