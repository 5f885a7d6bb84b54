package reporter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type HTMLReporter struct {
	logger     *logger.Logger
	reportsDir string
}

func NewHTMLReporter(logger *logger.Logger) *HTMLReporter {
	home, _ := os.UserHomeDir()
	reportsDir := filepath.Join(home, ".corsair", "reports")

	os.MkdirAll(reportsDir, 0755)

	return &HTMLReporter{
		logger:     logger,
		reportsDir: reportsDir,
	}
}

func (r *HTMLReporter) GenerateReport(report *types.RunReport, config *types.Config) (string, error) {
	timestamp := time.Now()
	filename := fmt.Sprintf("corsair-report-%s.html", timestamp.Format("2006-01-02_15-04-05"))
	if report.DryRun {
		filename = fmt.Sprintf("corsair-dryrun-%s.html", timestamp.Format("2006-01-02_15-04-05"))
	}

	reportPath := filepath.Join(r.reportsDir, filename)

	data := r.buildReportData(report, config, timestamp)

	htmlContent, err := r.generateHTML(data)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar HTML: %w", err)
	}

	if err := os.WriteFile(reportPath, []byte(htmlContent), 0644); err != nil {
		return "", fmt.Errorf("falha ao salvar relatório: %w", err)
	}

	r.logger.Info("html_report_generated").
		Str("file", reportPath).
		Str("mode", getExecutionMode(report.DryRun)).
		Int("total_pairs", report.TotalPairs).
		Send()

	return reportPath, nil
}

func (r *HTMLReporter) buildReportData(report *types.RunReport, config *types.Config, timestamp time.Time) types.ReportData {
	destinations := []string{}
	for _, reg := range config.Registries {
		if reg.Enabled {
			destinations = append(destinations, fmt.Sprintf("%s (%s)", reg.Name, reg.Kind))
		}
	}

	return types.ReportData{
		Title:         getReportTitle(report.DryRun),
		Timestamp:     timestamp.Format("2006-01-02 15:04:05"),
		ExecutionMode: getExecutionMode(report.DryRun),
		Report:        report,
		Config: types.ReportConfig{
			Concurrency:       config.Settings.Concurrency,
			MaxRetries:        config.Settings.MaxRetries,
			Language:          config.Settings.Language,
			Platform:          config.Settings.Platform,
			TotalDestinations: len(destinations),
			Destinations:      destinations,
		},
		Statistics:       r.calculateStatistics(report),
		DestinationStats: r.calculateDestinationStats(report),
		Pairs:            r.buildPairStatusList(report),
		HasFailures:      report.FailureCount > 0,
	}
}

func (r *HTMLReporter) calculateStatistics(report *types.RunReport) types.ReportStatistics {
	total := float64(report.TotalPairs)
	if total == 0 {
		total = 1
	}

	return types.ReportStatistics{
		TotalJobs:      report.TotalJobs,
		TotalPairs:     report.TotalPairs,
		SuccessRate:    float64(report.SuccessCount) / total * 100,
		FailureRate:    float64(report.FailureCount) / total * 100,
		ProcessingTime: report.Duration.Round(time.Millisecond).String(),
	}
}

func (r *HTMLReporter) calculateDestinationStats(report *types.RunReport) []types.DestinationStatistic {
	statsByKind := make(map[types.RegistryKind]*types.DestinationStatistic)

	for _, outcome := range report.Outcomes {
		stat, exists := statsByKind[outcome.Destination]
		if !exists {
			stat = &types.DestinationStatistic{Kind: outcome.Destination.String()}
			statsByKind[outcome.Destination] = stat
		}

		stat.PairCount++
		if outcome.Success {
			stat.SuccessCount++
		} else {
			stat.FailureCount++
		}
	}

	var stats []types.DestinationStatistic
	for _, kind := range types.RegistryKinds() {
		stat, exists := statsByKind[kind]
		if !exists {
			continue
		}
		if stat.PairCount > 0 {
			stat.SuccessRate = float64(stat.SuccessCount) / float64(stat.PairCount) * 100
		}
		stats = append(stats, *stat)
	}

	return stats
}

func (r *HTMLReporter) buildPairStatusList(report *types.RunReport) []types.PairStatus {
	var pairs []types.PairStatus

	for _, outcome := range report.Outcomes {
		status := "Sucesso"
		statusClass := "success"

		if !outcome.Success {
			status = "Falha"
			statusClass = "danger"
		}

		pairs = append(pairs, types.PairStatus{
			Line:        outcome.Job.Line,
			SourceImage: outcome.Job.SourceImage,
			Destination: outcome.Destination.String(),
			Attempts:    outcome.Attempts,
			Duration:    outcome.Duration.Round(time.Millisecond).String(),
			Status:      status,
			StatusClass: statusClass,
			Error:       outcome.Error,
		})
	}

	return pairs
}

func (r *HTMLReporter) generateHTML(data types.ReportData) (string, error) {
	tmpl := `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Timestamp}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f5f7fa; color: #333; line-height: 1.6; }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px; margin-bottom: 30px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); }
        .header h1 { font-size: 2.5rem; margin-bottom: 10px; text-shadow: 2px 2px 4px rgba(0,0,0,0.3); }
        .header p { font-size: 1.1rem; opacity: 0.9; }
        .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin-bottom: 30px; }
        .stat-card { background: white; padding: 25px; border-radius: 10px; box-shadow: 0 5px 15px rgba(0,0,0,0.08); border-left: 5px solid #667eea; }
        .stat-card h3 { color: #667eea; font-size: 2rem; margin-bottom: 5px; }
        .stat-card p { color: #666; font-weight: 500; }
        .section { background: white; margin-bottom: 30px; border-radius: 10px; overflow: hidden; box-shadow: 0 5px 15px rgba(0,0,0,0.08); }
        .section-header { background: #667eea; color: white; padding: 20px; font-size: 1.3rem; font-weight: 600; }
        .section-content { padding: 25px; }
        .table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        .table th, .table td { padding: 12px; text-align: left; border-bottom: 1px solid #eee; }
        .table th { background: #f8f9fa; font-weight: 600; color: #333; }
        .table tr:hover { background: #f8f9fa; }
        .badge { padding: 4px 12px; border-radius: 20px; font-size: 0.85rem; font-weight: 500; }
        .badge.success { background: #d4edda; color: #155724; }
        .badge.warning { background: #fff3cd; color: #856404; }
        .badge.danger { background: #f8d7da; color: #721c24; }
        .progress-bar { width: 100%; height: 8px; background: #eee; border-radius: 4px; overflow: hidden; }
        .progress-fill { height: 100%; transition: width 0.3s ease; }
        .progress-success { background: #28a745; }
        .progress-warning { background: #ffc107; }
        .progress-danger { background: #dc3545; }
        .config-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; }
        .config-item { padding: 15px; background: #f8f9fa; border-radius: 8px; border-left: 3px solid #667eea; }
        .config-item strong { color: #667eea; }
        .footer { text-align: center; padding: 30px; color: #666; border-top: 1px solid #eee; margin-top: 30px; }
        .logo { font-size: 1.5rem; margin-right: 10px; }
        .truncate { max-width: 300px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
        @media (max-width: 768px) { .stats-grid { grid-template-columns: 1fr; } .table { font-size: 0.9rem; } }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1><span class="logo">🏴‍☠️</span>{{.Title}}</h1>
            <p>Relatório gerado em {{.Timestamp}} | Modo: {{.ExecutionMode}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <h3>{{.Statistics.TotalJobs}}</h3>
                <p>Imagens na Lista</p>
            </div>
            <div class="stat-card">
                <h3>{{.Statistics.TotalPairs}}</h3>
                <p>Pares Imagem×Destino</p>
            </div>
            <div class="stat-card">
                <h3>{{.Report.SuccessCount}}</h3>
                <p>Pushes Bem-sucedidos</p>
            </div>
            <div class="stat-card">
                <h3>{{.Report.FailureCount}}</h3>
                <p>Falhas</p>
            </div>
            <div class="stat-card">
                <h3>{{printf "%.1f%%" .Statistics.SuccessRate}}</h3>
                <p>Taxa de Sucesso</p>
            </div>
        </div>

        <div class="section">
            <div class="section-header">📊 Estatísticas Detalhadas</div>
            <div class="section-content">
                <div style="margin-bottom: 20px;">
                    <div style="display: flex; justify-content: space-between; margin-bottom: 5px;">
                        <span>Taxa de Sucesso</span>
                        <span>{{printf "%.1f%%" .Statistics.SuccessRate}}</span>
                    </div>
                    <div class="progress-bar">
                        <div class="progress-fill progress-success" style="width: {{.Statistics.SuccessRate}}%"></div>
                    </div>
                </div>

                {{if .HasFailures}}
                <div style="margin-bottom: 20px;">
                    <div style="display: flex; justify-content: space-between; margin-bottom: 5px;">
                        <span>Taxa de Falhas</span>
                        <span>{{printf "%.1f%%" .Statistics.FailureRate}}</span>
                    </div>
                    <div class="progress-bar">
                        <div class="progress-fill progress-danger" style="width: {{.Statistics.FailureRate}}%"></div>
                    </div>
                </div>
                {{end}}

                <div class="config-item" style="margin-top: 10px;">
                    <strong>Tempo de Processamento:</strong> {{.Statistics.ProcessingTime}}
                </div>
            </div>
        </div>

        <div class="section">
            <div class="section-header">⚙️ Configuração da Execução</div>
            <div class="section-content">
                <div class="config-grid">
                    <div class="config-item">
                        <strong>Concorrência:</strong><br>
                        {{.Config.Concurrency}} pushes simultâneos
                    </div>
                    <div class="config-item">
                        <strong>Tentativas por Par:</strong><br>
                        até {{.Config.MaxRetries}}
                    </div>
                    <div class="config-item">
                        <strong>Plataforma:</strong><br>
                        {{.Config.Platform}}
                    </div>
                    <div class="config-item">
                        <strong>Idioma:</strong><br>
                        {{.Config.Language}}
                    </div>
                </div>

                <h4 style="margin: 20px 0 10px 0;">Destinos Habilitados ({{.Config.TotalDestinations}}):</h4>
                <ul style="margin-left: 20px;">
                    {{range .Config.Destinations}}
                    <li>{{.}}</li>
                    {{end}}
                </ul>
            </div>
        </div>

        {{if .Report.Validations}}
        <div class="section">
            <div class="section-header">🔎 Validação dos Destinos</div>
            <div class="section-content">
                <table class="table">
                    <thead>
                        <tr>
                            <th>Destino</th>
                            <th>Resultado</th>
                            <th>Detalhe</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Report.Validations}}
                        <tr>
                            <td><strong>{{.Destination}}</strong></td>
                            <td>{{if .OK}}<span class="badge success">Aprovado</span>{{else}}<span class="badge danger">Reprovado</span>{{end}}</td>
                            <td class="truncate" title="{{.Detail}}">{{.Detail}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
        </div>
        {{end}}

        {{if .DestinationStats}}
        <div class="section">
            <div class="section-header">🎯 Estatísticas por Destino</div>
            <div class="section-content">
                <table class="table">
                    <thead>
                        <tr>
                            <th>Destino</th>
                            <th>Pares</th>
                            <th>Sucessos</th>
                            <th>Falhas</th>
                            <th>Taxa de Sucesso</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .DestinationStats}}
                        <tr>
                            <td><strong>{{.Kind}}</strong></td>
                            <td>{{.PairCount}}</td>
                            <td style="color: #28a745;">{{.SuccessCount}}</td>
                            <td style="color: #dc3545;">{{.FailureCount}}</td>
                            <td>{{printf "%.1f%%" .SuccessRate}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
        </div>
        {{end}}

        {{if .Pairs}}
        <div class="section">
            <div class="section-header">📋 Detalhes dos Pushes</div>
            <div class="section-content">
                <table class="table">
                    <thead>
                        <tr>
                            <th>Linha</th>
                            <th>Imagem Origem</th>
                            <th>Destino</th>
                            <th>Tentativas</th>
                            <th>Duração</th>
                            <th>Status</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Pairs}}
                        <tr>
                            <td>{{.Line}}</td>
                            <td class="truncate" title="{{.SourceImage}}">{{.SourceImage}}</td>
                            <td><strong>{{.Destination}}</strong></td>
                            <td>{{.Attempts}}</td>
                            <td>{{.Duration}}</td>
                            <td><span class="badge {{.StatusClass}}">{{.Status}}</span></td>
                        </tr>
                        {{if .Error}}
                        <tr style="background: #fff3cd;">
                            <td colspan="6" style="font-size: 0.9rem; color: #856404;">
                                <strong>Erro:</strong> {{.Error}}
                            </td>
                        </tr>
                        {{end}}
                        {{end}}
                    </tbody>
                </table>
            </div>
        </div>
        {{end}}

        <div class="footer">
            <p>🏴‍☠️ <strong>Corsair Mirror Engine</strong> | Relatório gerado automaticamente</p>
            <p style="font-size: 0.9rem; margin-top: 10px;">
                Este relatório contém o resultado de cada push da lista de imagens.<br>
                Para mais informações, consulte a documentação do Corsair.
            </p>
        </div>
    </div>
</body>
</html>`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func getReportTitle(isDryRun bool) string {
	if isDryRun {
		return "Corsair - Relatório de Simulação"
	}
	return "Corsair - Relatório de Espelhamento"
}

func getExecutionMode(isDryRun bool) string {
	if isDryRun {
		return "Simulação (Dry Run)"
	}
	return "Produção (Real)"
}
