package registry

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type ACRRegistry struct {
	*BaseRegistry
	Regions       []string
	ACRName       string
	NamePrefix    string
	ResourceGroup string
	crane         *CraneClient
}

func NewACRRegistry(config *types.RegistryConfig, settings *types.SettingsConfig, logger *logger.Logger) (*ACRRegistry, error) {
	if config.ACRName == "" && config.NamePrefix == "" {
		return nil, fmt.Errorf("registry ACR requer acr_name ou name_prefix")
	}
	if config.ACRName == "" && len(config.Regions) == 0 {
		return nil, fmt.Errorf("registry ACR requer regions quando acr_name não é definido")
	}

	return &ACRRegistry{
		BaseRegistry: &BaseRegistry{
			Kind:   types.KindACR,
			Logger: logger,
		},
		Regions:       config.Regions,
		ACRName:       config.ACRName,
		NamePrefix:    config.NamePrefix,
		ResourceGroup: config.ResourceGroup,
		crane:         NewCraneClient(settings.Platform, logger),
	}, nil
}

// registryNames resolve os nomes dos ACRs de destino. Nomes de ACR
// aceitam apenas alfanuméricos, então a região entra sem hífens.
func (r *ACRRegistry) registryNames() []string {
	if r.ACRName != "" {
		return []string{r.ACRName}
	}

	names := make([]string, 0, len(r.Regions))
	for _, region := range r.Regions {
		names = append(names, fmt.Sprintf("%sacr%s", r.NamePrefix, strings.ReplaceAll(region, "-", "")))
	}

	return names
}

func (r *ACRRegistry) Login(ctx context.Context) error {
	for _, name := range r.registryNames() {
		cmd := exec.CommandContext(ctx, "az", "acr", "login", "--name", name)

		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("falha no az acr login em %s: %s", name, strings.TrimSpace(string(output)))
		}

		r.Logger.Debug("acr_login_completed").
			Str("acr_name", name).
			Send()
	}

	return nil
}

func (r *ACRRegistry) Validate(ctx context.Context) types.ValidationResult {
	result := types.ValidationResult{Destination: types.KindACR}

	if _, err := exec.LookPath("az"); err != nil {
		result.Detail = "binário az não encontrado no PATH"
		return result
	}

	if err := r.crane.Available(); err != nil {
		result.Detail = err.Error()
		return result
	}

	names := r.registryNames()
	for _, name := range names {
		if err := r.showRegistry(ctx, name); err != nil {
			result.Detail = err.Error()
			return result
		}
	}

	result.OK = true
	result.Detail = fmt.Sprintf("registries %s", strings.Join(names, ", "))
	return result
}

func (r *ACRRegistry) showRegistry(ctx context.Context, name string) error {
	args := []string{"acr", "show", "--name", name, "--output", "none"}
	if r.ResourceGroup != "" {
		args = append(args, "--resource-group", r.ResourceGroup)
	}

	cmd := exec.CommandContext(ctx, "az", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("acr %s: %s", name, strings.TrimSpace(string(output)))
	}

	return nil
}

func (r *ACRRegistry) Push(ctx context.Context, sourceImage string) error {
	parsed := types.ParseImageName(sourceImage)

	var acrErrors []string
	for _, name := range r.registryNames() {
		target := targetReference(fmt.Sprintf("%s.azurecr.io", name), parsed)
		if err := r.crane.Copy(ctx, sourceImage, target); err != nil {
			acrErrors = append(acrErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(acrErrors) > 0 {
		return fmt.Errorf("falha no push para ACR: %s", strings.Join(acrErrors, "; "))
	}

	return nil
}
