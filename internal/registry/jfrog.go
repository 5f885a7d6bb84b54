package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/kevinfinalboss/corsair/pkg/utils"
)

type JFrogRegistry struct {
	*BaseRegistry
	Host       string
	Username   string
	Token      string
	Repository string
	httpClient *http.Client
	crane      *CraneClient
}

func NewJFrogRegistry(config *types.RegistryConfig, settings *types.SettingsConfig, logger *logger.Logger) (*JFrogRegistry, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("registry JFROG requer url")
	}
	if config.Username == "" || config.Token == "" {
		return nil, fmt.Errorf("registry JFROG requer username e token")
	}

	repository := config.Repository
	if repository == "" {
		repository = "docker-local"
	}

	return &JFrogRegistry{
		BaseRegistry: &BaseRegistry{
			Kind:   types.KindJFROG,
			Logger: logger,
		},
		Host:       utils.StripScheme(config.URL),
		Username:   config.Username,
		Token:      config.Token,
		Repository: repository,
		httpClient: createHTTPClient(config.Insecure),
		crane:      NewCraneClient(settings.Platform, logger),
	}, nil
}

func (r *JFrogRegistry) Login(ctx context.Context) error {
	return r.crane.LoginRegistry(ctx, r.Host, r.Username, r.Token)
}

func (r *JFrogRegistry) Validate(ctx context.Context) types.ValidationResult {
	result := types.ValidationResult{Destination: types.KindJFROG}

	if err := r.crane.Available(); err != nil {
		result.Detail = err.Error()
		return result
	}

	pingURL := fmt.Sprintf("https://%s/artifactory/api/system/ping", r.Host)
	if err := checkHTTPEndpoint(ctx, r.httpClient, pingURL, r.Username, r.Token); err != nil {
		result.Detail = err.Error()
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("artifactory %s, repositório %s", r.Host, r.Repository)
	return result
}

func (r *JFrogRegistry) Push(ctx context.Context, sourceImage string) error {
	parsed := types.ParseImageName(sourceImage)

	host := fmt.Sprintf("%s/%s", r.Host, r.Repository)
	if err := r.crane.Copy(ctx, sourceImage, targetReference(host, parsed)); err != nil {
		return fmt.Errorf("falha no push para JFROG: %w", err)
	}

	return nil
}
