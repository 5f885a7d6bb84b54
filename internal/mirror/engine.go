package mirror

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/internal/reporter"
	"github.com/kevinfinalboss/corsair/internal/webhook"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/kevinfinalboss/corsair/pkg/utils"
)

type RegistryProvider interface {
	GetRegistry(kind types.RegistryKind) (registry.Registry, error)
	EnabledRegistries() []registry.Registry
	LoginAll(ctx context.Context) error
}

type Engine struct {
	registries     RegistryProvider
	config         *types.Config
	logger         *logger.Logger
	concurrency    int
	retrier        *Retrier
	htmlReporter   *reporter.HTMLReporter
	discordWebhook *webhook.DiscordWebhook
}

func NewEngine(cfg *types.Config, registries RegistryProvider, log *logger.Logger) *Engine {
	concurrency := cfg.Settings.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	engine := &Engine{
		registries:   registries,
		config:       cfg,
		logger:       log,
		concurrency:  concurrency,
		retrier:      NewRetrier(cfg.Settings.MaxRetries, time.Duration(cfg.Settings.RetryDelay)*time.Second, log),
		htmlReporter: reporter.NewHTMLReporter(log),
	}

	if cfg.Webhooks.Discord.Enabled && cfg.Webhooks.Discord.URL != "" {
		engine.discordWebhook = webhook.NewDiscordWebhook(&cfg.Webhooks.Discord, log)
		log.Info("discord_webhook_enabled").
			Str("webhook_url", utils.MaskWebhookURL(cfg.Webhooks.Discord.URL)).
			Send()
	}

	return engine
}

// Run executa a rodada completa: validação dos destinos, autenticação,
// e só então os pushes. Nenhum push acontece se qualquer destino
// reprovar na validação.
func (e *Engine) Run(ctx context.Context, jobs []types.MirrorJob) (*types.RunReport, error) {
	start := time.Now()

	if len(jobs) == 0 {
		e.logger.Warn("empty_image_list").Send()
		report := BuildReport(jobs, nil, nil, time.Since(start))
		report.DryRun = e.config.Settings.DryRun
		return report, nil
	}

	pairs := countPairs(jobs)

	e.logger.Info("mirror_started").
		Int("images", len(jobs)).
		Int("pairs", pairs).
		Int("concurrency", e.concurrency).
		Bool("dry_run", e.config.Settings.DryRun).
		Send()

	if e.discordWebhook != nil {
		if err := e.discordWebhook.SendMirrorStart(ctx, len(jobs), pairs, e.destinationNames(), e.config.Settings.DryRun); err != nil {
			e.logger.Warn("discord_webhook_failed").Err(err).Send()
		}
	}

	validations := e.runValidations(ctx)
	if !allValid(validations) {
		e.logger.Error("validation_failed").Send()

		report := BuildReport(jobs, nil, validations, time.Since(start))
		report.DryRun = e.config.Settings.DryRun
		e.finishRun(ctx, report)
		return report, fmt.Errorf("validação de destinos falhou, nenhuma imagem foi espelhada")
	}

	e.logger.Info("validation_passed").Send()

	if e.config.Settings.DryRun {
		outcomes := e.dryRunOutcomes(jobs)
		report := BuildReport(jobs, outcomes, validations, time.Since(start))
		report.DryRun = true
		e.finishRun(ctx, report)
		return report, nil
	}

	if err := e.registries.LoginAll(ctx); err != nil {
		report := BuildReport(jobs, nil, validations, time.Since(start))
		e.finishRun(ctx, report)
		return report, fmt.Errorf("autenticação nos registries falhou: %w", err)
	}

	outcomes := e.mirrorAll(ctx, jobs)
	report := BuildReport(jobs, outcomes, validations, time.Since(start))

	e.logSummary(report)
	e.finishRun(ctx, report)

	return report, nil
}

func (e *Engine) mirrorAll(ctx context.Context, jobs []types.MirrorJob) []*types.PushOutcome {
	var outcomes []*types.PushOutcome
	var mutex sync.Mutex
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, e.concurrency)

	for _, job := range jobs {
		for _, destination := range job.Destinations {
			wg.Add(1)
			go func(job types.MirrorJob, kind types.RegistryKind) {
				defer wg.Done()

				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				outcome := e.mirrorPair(ctx, job, kind)

				mutex.Lock()
				outcomes = append(outcomes, outcome)
				mutex.Unlock()
			}(job, destination)
		}
	}

	wg.Wait()

	return outcomes
}

func (e *Engine) mirrorPair(ctx context.Context, job types.MirrorJob, kind types.RegistryKind) *types.PushOutcome {
	destination, err := e.registries.GetRegistry(kind)
	if err != nil {
		return &types.PushOutcome{
			Job:         job,
			Destination: kind,
			Success:     false,
			Error:       err.Error(),
		}
	}

	return e.retrier.Run(ctx, job, destination)
}

func (e *Engine) logSummary(report *types.RunReport) {
	if report.FailureCount > 0 {
		e.logger.Error("mirror_had_failures").
			Int("success", report.SuccessCount).
			Int("failures", report.FailureCount).
			Int("pairs", report.TotalPairs).
			Dur("duration", report.Duration).
			Send()

		for _, failure := range report.Failures {
			e.logger.Error("mirror_failure_detail").
				Int("line", failure.Job.Line).
				Str("image", failure.Job.SourceImage).
				Str("destination", failure.Destination.String()).
				Int("attempts", failure.Attempts).
				Str("error", failure.Error).
				Send()
		}
		return
	}

	e.logger.Info("mirror_completed").
		Int("success", report.SuccessCount).
		Int("pairs", report.TotalPairs).
		Dur("duration", report.Duration).
		Send()
}

func (e *Engine) finishRun(ctx context.Context, report *types.RunReport) {
	if e.htmlReporter != nil {
		path, err := e.htmlReporter.GenerateReport(report, e.config)
		if err != nil {
			e.logger.Warn("html_report_failed").Err(err).Send()
		} else {
			e.logger.Info("html_report_ready").Str("path", path).Send()
		}
	}

	if e.discordWebhook != nil {
		if err := e.discordWebhook.SendMirrorComplete(ctx, report); err != nil {
			e.logger.Warn("discord_webhook_failed").Err(err).Send()
		} else {
			e.logger.Info("discord_webhook_sent").Send()
		}
	}
}

func (e *Engine) destinationNames() []string {
	var names []string
	for _, reg := range e.registries.EnabledRegistries() {
		names = append(names, reg.GetKind().String())
	}
	return names
}

func countPairs(jobs []types.MirrorJob) int {
	pairs := 0
	for _, job := range jobs {
		pairs += len(job.Destinations)
	}
	return pairs
}
