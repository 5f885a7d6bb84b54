package registry

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type GARRegistry struct {
	*BaseRegistry
	Regions    []string
	ProjectID  string
	Repository string
	crane      *CraneClient
}

func NewGARRegistry(config *types.RegistryConfig, settings *types.SettingsConfig, logger *logger.Logger) (*GARRegistry, error) {
	if len(config.Regions) == 0 {
		return nil, fmt.Errorf("registry GAR requer ao menos uma região")
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("registry GAR requer project_id")
	}

	repository := config.Repository
	if repository == "" {
		repository = "k8s-assets"
	}

	return &GARRegistry{
		BaseRegistry: &BaseRegistry{
			Kind:   types.KindGAR,
			Logger: logger,
		},
		Regions:    config.Regions,
		ProjectID:  config.ProjectID,
		Repository: repository,
		crane:      NewCraneClient(settings.Platform, logger),
	}, nil
}

func (r *GARRegistry) Login(ctx context.Context) error {
	token, err := r.accessToken(ctx)
	if err != nil {
		return err
	}

	for _, region := range r.Regions {
		host := fmt.Sprintf("%s-docker.pkg.dev", region)
		if err := r.crane.LoginRegistry(ctx, host, "oauth2accesstoken", token); err != nil {
			return err
		}
	}

	return nil
}

func (r *GARRegistry) accessToken(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "gcloud", "auth", "print-access-token")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("falha ao obter token de acesso do gcloud: %s", strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}

func (r *GARRegistry) Validate(ctx context.Context) types.ValidationResult {
	result := types.ValidationResult{Destination: types.KindGAR}

	if _, err := exec.LookPath("gcloud"); err != nil {
		result.Detail = "binário gcloud não encontrado no PATH"
		return result
	}

	if err := r.crane.Available(); err != nil {
		result.Detail = err.Error()
		return result
	}

	for _, region := range r.Regions {
		if err := r.describeRepository(ctx, region); err != nil {
			result.Detail = err.Error()
			return result
		}
	}

	result.OK = true
	result.Detail = fmt.Sprintf("projeto %s, regiões %s", r.ProjectID, strings.Join(r.Regions, ", "))
	return result
}

// Repositório ausente não reprova a validação: o push cria o
// repositório antes de copiar. Só erros de credencial ou permissão
// derrubam o destino aqui.
func (r *GARRegistry) describeRepository(ctx context.Context, region string) error {
	cmd := exec.CommandContext(ctx, "gcloud", "artifacts", "repositories", "describe", r.Repository,
		"--project", r.ProjectID,
		"--location", region,
		"--format", "value(name)",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(string(output), "NOT_FOUND") {
			return nil
		}
		return fmt.Errorf("região %s: %s", region, strings.TrimSpace(string(output)))
	}

	return nil
}

func (r *GARRegistry) Push(ctx context.Context, sourceImage string) error {
	parsed := types.ParseImageName(sourceImage)

	var regionErrors []string
	for _, region := range r.Regions {
		if err := r.pushToRegion(ctx, region, sourceImage, parsed); err != nil {
			regionErrors = append(regionErrors, fmt.Sprintf("%s: %v", region, err))
		}
	}

	if len(regionErrors) > 0 {
		return fmt.Errorf("falha no push para GAR: %s", strings.Join(regionErrors, "; "))
	}

	return nil
}

func (r *GARRegistry) pushToRegion(ctx context.Context, region, sourceImage string, parsed *types.ParsedImage) error {
	if err := r.ensureRepositoryExists(ctx, region); err != nil {
		return err
	}

	return r.crane.Copy(ctx, sourceImage, targetReference(r.repositoryHost(region), parsed))
}

func (r *GARRegistry) ensureRepositoryExists(ctx context.Context, region string) error {
	describe := exec.CommandContext(ctx, "gcloud", "artifacts", "repositories", "describe", r.Repository,
		"--project", r.ProjectID,
		"--location", region,
		"--format", "value(name)",
	)
	if _, err := describe.CombinedOutput(); err == nil {
		return nil
	}

	r.Logger.Info("gar_creating_repository").
		Str("repository", r.Repository).
		Str("region", region).
		Send()

	create := exec.CommandContext(ctx, "gcloud", "artifacts", "repositories", "create", r.Repository,
		"--repository-format", "docker",
		"--project", r.ProjectID,
		"--location", region,
	)

	output, err := create.CombinedOutput()
	if err != nil {
		if strings.Contains(string(output), "ALREADY_EXISTS") {
			return nil
		}
		return fmt.Errorf("falha ao criar repositório %s: %s", r.Repository, strings.TrimSpace(string(output)))
	}

	return nil
}

func (r *GARRegistry) repositoryHost(region string) string {
	return fmt.Sprintf("%s-docker.pkg.dev/%s/%s", region, r.ProjectID, r.Repository)
}
