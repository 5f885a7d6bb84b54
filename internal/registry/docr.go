package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

const docrHost = "registry.digitalocean.com"

type DOCRRegistry struct {
	*BaseRegistry
	Token        string
	RegistryName string
	httpClient   *http.Client
	crane        *CraneClient
}

func NewDOCRRegistry(config *types.RegistryConfig, settings *types.SettingsConfig, logger *logger.Logger) (*DOCRRegistry, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("registry DOCR requer token")
	}
	if config.RegistryName == "" {
		return nil, fmt.Errorf("registry DOCR requer registry_name")
	}

	return &DOCRRegistry{
		BaseRegistry: &BaseRegistry{
			Kind:   types.KindDOCR,
			Logger: logger,
		},
		Token:        config.Token,
		RegistryName: config.RegistryName,
		httpClient:   createHTTPClient(false),
		crane:        NewCraneClient(settings.Platform, logger),
	}, nil
}

// O token de API da DigitalOcean serve de usuário e senha no login.
func (r *DOCRRegistry) Login(ctx context.Context) error {
	return r.crane.LoginRegistry(ctx, docrHost, r.Token, r.Token)
}

func (r *DOCRRegistry) Validate(ctx context.Context) types.ValidationResult {
	result := types.ValidationResult{Destination: types.KindDOCR}

	if err := r.crane.Available(); err != nil {
		result.Detail = err.Error()
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.digitalocean.com/v2/registry", nil)
	if err != nil {
		result.Detail = fmt.Sprintf("falha ao criar requisição: %v", err)
		return result
	}
	req.Header.Set("Authorization", "Bearer "+r.Token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		result.Detail = fmt.Sprintf("falha ao conectar na API da DigitalOcean: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Detail = fmt.Sprintf("API da DigitalOcean retornou status %d", resp.StatusCode)
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("registry %s", r.RegistryName)
	return result
}

func (r *DOCRRegistry) Push(ctx context.Context, sourceImage string) error {
	parsed := types.ParseImageName(sourceImage)

	host := fmt.Sprintf("%s/%s", docrHost, r.RegistryName)
	if err := r.crane.Copy(ctx, sourceImage, targetReference(host, parsed)); err != nil {
		return fmt.Errorf("falha no push para DOCR: %w", err)
	}

	return nil
}
