package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

const maxBackoffDelay = 60 * time.Second

type pushState int

const (
	statePending pushState = iota
	stateAttempting
	stateBackoff
	stateSucceeded
	stateExhausted
)

// Retrier executa o push de um par imagem×destino com backoff
// exponencial entre tentativas. Cada par produz exatamente um
// PushOutcome, com sucesso ou sem.
type Retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *logger.Logger
}

func NewRetrier(maxAttempts int, baseDelay time.Duration, log *logger.Logger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Retrier{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      log,
	}
}

func (r *Retrier) Run(ctx context.Context, job types.MirrorJob, destination registry.Registry) *types.PushOutcome {
	outcome := &types.PushOutcome{
		Job:         job,
		Destination: destination.GetKind(),
	}

	start := time.Now()
	state := statePending
	var lastErr error

	for state != stateSucceeded && state != stateExhausted {
		switch state {
		case statePending:
			state = stateAttempting

		case stateAttempting:
			outcome.Attempts++

			lastErr = destination.Push(ctx, job.SourceImage)
			if lastErr == nil {
				state = stateSucceeded
				break
			}

			r.logger.Warn("push_attempt_failed").
				Int("line", job.Line).
				Str("image", job.SourceImage).
				Str("destination", outcome.Destination.String()).
				Int("attempt", outcome.Attempts).
				Int("max_attempts", r.maxAttempts).
				Err(lastErr).
				Send()

			if outcome.Attempts >= r.maxAttempts {
				state = stateExhausted
				break
			}
			state = stateBackoff

		case stateBackoff:
			if err := r.wait(ctx, r.backoffDelay(outcome.Attempts)); err != nil {
				lastErr = err
				state = stateExhausted
				break
			}
			state = stateAttempting
		}
	}

	outcome.Duration = time.Since(start)
	outcome.Success = state == stateSucceeded
	if !outcome.Success && lastErr != nil {
		outcome.Error = lastErr.Error()
	}

	return outcome
}

// backoffDelay dobra a espera a cada tentativa falhada: base, 2x, 4x,
// limitada a maxBackoffDelay.
func (r *Retrier) backoffDelay(attempt int) time.Duration {
	delay := r.baseDelay << (attempt - 1)
	if delay > maxBackoffDelay || delay <= 0 {
		delay = maxBackoffDelay
	}
	return delay
}

func (r *Retrier) wait(ctx context.Context, delay time.Duration) error {
	r.logger.Debug("retry_backoff").
		Dur("delay", delay).
		Send()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("espera de backoff interrompida: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
