package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// ValidateSetup roda apenas a validação dos destinos, sem espelhar
// nada. É o caminho do comando validate.
func (e *Engine) ValidateSetup(ctx context.Context) (*types.RunReport, error) {
	start := time.Now()

	validations := e.runValidations(ctx)

	report := BuildReport(nil, nil, validations, time.Since(start))
	report.ValidateOnly = true

	if !report.ValidationsOK() {
		e.logger.Error("validation_failed").Send()
		return report, fmt.Errorf("validação de destinos falhou")
	}

	e.logger.Info("validation_passed").Send()
	return report, nil
}

// runValidations valida todos os destinos em paralelo e reporta o
// resultado de cada um, aprovado ou não. Um slot por destino: a ordem
// do resultado é a ordem canônica dos adapters.
func (e *Engine) runValidations(ctx context.Context) []types.ValidationResult {
	registries := e.registries.EnabledRegistries()

	e.logger.Info("validation_started").
		Int("destinations", len(registries)).
		Send()

	results := make([]types.ValidationResult, len(registries))
	var wg sync.WaitGroup

	for i, reg := range registries {
		wg.Add(1)
		go func(slot int, reg registry.Registry) {
			defer wg.Done()
			results[slot] = reg.Validate(ctx)
		}(i, reg)
	}

	wg.Wait()

	for _, result := range results {
		if result.OK {
			e.logger.Info("validation_destination_ok").
				Str("destination", result.Destination.String()).
				Str("detail", result.Detail).
				Send()
		} else {
			e.logger.Error("validation_destination_failed").
				Str("destination", result.Destination.String()).
				Str("detail", result.Detail).
				Send()
		}
	}

	return results
}

func allValid(validations []types.ValidationResult) bool {
	for _, validation := range validations {
		if !validation.OK {
			return false
		}
	}
	return true
}
