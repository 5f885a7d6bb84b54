package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/kevinfinalboss/corsair/pkg/utils"
)

type DiscordWebhook struct {
	url    string
	name   string
	avatar string
	logger *logger.Logger
	client *http.Client
}

type DiscordMessage struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type DiscordEmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

func NewDiscordWebhook(config *types.DiscordWebhookConfig, logger *logger.Logger) *DiscordWebhook {
	name := config.Name
	if name == "" {
		name = "Corsair 🏴‍☠️"
	}

	return &DiscordWebhook{
		url:    config.URL,
		name:   name,
		avatar: config.Avatar,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DiscordWebhook) SendMirrorStart(ctx context.Context, totalImages, totalPairs int, destinations []string, dryRun bool) error {
	operation := "🚀 ESPELHAMENTO INICIADO"
	color := 0x00ff00

	if dryRun {
		operation = "🧪 SIMULAÇÃO INICIADA"
		color = 0xffaa00
	}

	embed := DiscordEmbed{
		Title:       operation,
		Description: "Iniciando espelhamento de imagens para os registries de destino",
		Color:       color,
		Fields: []DiscordEmbedField{
			{
				Name:   "📦 Imagens",
				Value:  fmt.Sprintf("%d imagens, %d pares imagem×destino", totalImages, totalPairs),
				Inline: true,
			},
			{
				Name:   "🎯 Destinos",
				Value:  "```\n" + strings.Join(destinations, "\n") + "\n```",
				Inline: false,
			},
			{
				Name:   "⚙️ Modo",
				Value:  getModeText(dryRun),
				Inline: true,
			},
		},
		Footer: &DiscordEmbedFooter{
			Text: "Corsair Mirror Engine",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	message := DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	}

	return d.send(ctx, message)
}

func (d *DiscordWebhook) SendMirrorComplete(ctx context.Context, report *types.RunReport) error {
	operation := "✅ ESPELHAMENTO CONCLUÍDO"
	color := 0x00ff00

	if report.DryRun {
		operation = "✅ SIMULAÇÃO CONCLUÍDA"
		color = 0x0099ff
	}

	if !report.Succeeded() {
		operation = "⚠️ ESPELHAMENTO COM FALHAS"
		color = 0xff6600
	}

	description := fmt.Sprintf("Processo finalizado com %d sucessos", report.SuccessCount)
	if report.FailureCount > 0 {
		description += fmt.Sprintf(" e %d falhas", report.FailureCount)
	}

	fields := []DiscordEmbedField{
		{
			Name: "📊 Resultados",
			Value: fmt.Sprintf("**Imagens:** %d\n**Pares:** %d\n**✅ Sucessos:** %d\n**❌ Falhas:** %d",
				report.TotalJobs, report.TotalPairs, report.SuccessCount, report.FailureCount),
			Inline: true,
		},
	}

	if validationSummary := d.getValidationFailures(report.Validations); validationSummary != "" {
		fields = append(fields, DiscordEmbedField{
			Name:   "🚫 Destinos Reprovados",
			Value:  "```\n" + validationSummary + "\n```",
			Inline: false,
		})
	}

	if failureExamples := d.getFailureExamples(report.Failures, 3); failureExamples != "" {
		fields = append(fields, DiscordEmbedField{
			Name:   "❌ Falhas",
			Value:  "```\n" + failureExamples + "\n```",
			Inline: false,
		})
	}

	embed := DiscordEmbed{
		Title:       operation,
		Description: description,
		Color:       color,
		Fields:      fields,
		Footer: &DiscordEmbedFooter{
			Text: "Corsair Mirror Engine",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	message := DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	}

	return d.send(ctx, message)
}

func (d *DiscordWebhook) SendError(ctx context.Context, errorMsg string, operation string) error {
	embed := DiscordEmbed{
		Title:       "❌ ERRO NO ESPELHAMENTO",
		Description: fmt.Sprintf("Falha durante: %s", operation),
		Color:       0xff0000,
		Fields: []DiscordEmbedField{
			{
				Name:   "💥 Erro",
				Value:  "```\n" + errorMsg + "\n```",
				Inline: false,
			},
		},
		Footer: &DiscordEmbedFooter{
			Text: "Corsair Mirror Engine",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	message := DiscordMessage{
		Username:  d.name,
		AvatarURL: d.avatar,
		Embeds:    []DiscordEmbed{embed},
	}

	return d.send(ctx, message)
}

func (d *DiscordWebhook) send(ctx context.Context, message DiscordMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("falha ao serializar mensagem Discord: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("falha ao criar requisição Discord: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao enviar webhook Discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Discord retornou status %d", resp.StatusCode)
	}

	d.logger.Debug("discord_webhook_sent").
		Int("status_code", resp.StatusCode).
		Send()

	return nil
}

func (d *DiscordWebhook) getValidationFailures(validations []types.ValidationResult) string {
	var lines []string

	for _, validation := range validations {
		if !validation.OK {
			lines = append(lines, fmt.Sprintf("%s: %s",
				validation.Destination, utils.Truncate(validation.Detail, 60)))
		}
	}

	return strings.Join(lines, "\n")
}

func (d *DiscordWebhook) getFailureExamples(failures []*types.PushOutcome, limit int) string {
	var examples []string

	for _, failure := range failures {
		if len(examples) >= limit {
			break
		}
		examples = append(examples, fmt.Sprintf("%s → %s: %s",
			utils.Truncate(failure.Job.SourceImage, 25),
			failure.Destination,
			utils.Truncate(failure.Error, 40)))
	}

	if len(examples) == 0 {
		return ""
	}

	result := strings.Join(examples, "\n")
	if len(failures) > limit {
		result += fmt.Sprintf("\n... e mais %d falhas", len(failures)-limit)
	}

	return result
}

func getModeText(dryRun bool) string {
	if dryRun {
		return "🧪 Simulação (Dry Run)"
	}
	return "🚀 Produção (Real)"
}
