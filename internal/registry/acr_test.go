package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

func TestNewACRRegistry(t *testing.T) {
	tests := []struct {
		name    string
		config  *types.RegistryConfig
		wantErr string
	}{
		{
			name: "nome explícito",
			config: &types.RegistryConfig{
				Name:    "acr-prod",
				Kind:    "ACR",
				Enabled: true,
				ACRName: "empresaprodacr",
			},
		},
		{
			name: "prefixo com regiões",
			config: &types.RegistryConfig{
				Name:       "acr-prod",
				Kind:       "ACR",
				Enabled:    true,
				Regions:    []string{"eastus"},
				NamePrefix: "empresa",
			},
		},
		{
			name: "sem nome nem prefixo",
			config: &types.RegistryConfig{
				Name:    "acr-prod",
				Kind:    "ACR",
				Enabled: true,
				Regions: []string{"eastus"},
			},
			wantErr: "requer acr_name ou name_prefix",
		},
		{
			name: "prefixo sem regiões",
			config: &types.RegistryConfig{
				Name:       "acr-prod",
				Kind:       "ACR",
				Enabled:    true,
				NamePrefix: "empresa",
			},
			wantErr: "requer regions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewACRRegistry(tt.config, testSettings(), logger.NewTest())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, types.KindACR, registry.GetKind())
		})
	}
}

func TestACRRegistry_RegistryNames(t *testing.T) {
	tests := []struct {
		name     string
		config   *types.RegistryConfig
		expected []string
	}{
		{
			name: "nome explícito tem prioridade",
			config: &types.RegistryConfig{
				Kind:       "ACR",
				Enabled:    true,
				ACRName:    "empresaprodacr",
				NamePrefix: "outro",
				Regions:    []string{"eastus"},
			},
			expected: []string{"empresaprodacr"},
		},
		{
			name: "um nome por região, sem hífens",
			config: &types.RegistryConfig{
				Kind:       "ACR",
				Enabled:    true,
				NamePrefix: "empresa",
				Regions:    []string{"eastus", "brazil-south"},
			},
			expected: []string{"empresaacreastus", "empresaacrbrazilsouth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewACRRegistry(tt.config, testSettings(), logger.NewTest())
			require.NoError(t, err)

			assert.Equal(t, tt.expected, registry.registryNames())
		})
	}
}

func TestACRRegistry_TargetReference(t *testing.T) {
	parsed := types.ParseImageName("grafana/grafana:10.2.0")
	target := targetReference("empresaacreastus.azurecr.io", parsed)

	assert.Equal(t, "empresaacreastus.azurecr.io/grafana/grafana:10.2.0", target)
}
