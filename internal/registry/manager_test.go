package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

func testSettings() *types.SettingsConfig {
	return &types.SettingsConfig{
		Platform: "linux/amd64",
	}
}

func jfrogTestConfig() *types.RegistryConfig {
	return &types.RegistryConfig{
		Name:     "artifactory-prod",
		Kind:     "JFROG",
		Enabled:  true,
		URL:      "https://empresa.jfrog.io",
		Username: "mirror-bot",
		Token:    "test-token",
	}
}

func docrTestConfig() *types.RegistryConfig {
	return &types.RegistryConfig{
		Name:         "docr-prod",
		Kind:         "DOCR",
		Enabled:      true,
		Token:        "dop_v1_test",
		RegistryName: "empresa",
	}
}

func garTestConfig() *types.RegistryConfig {
	return &types.RegistryConfig{
		Name:      "gar-prod",
		Kind:      "GAR",
		Enabled:   true,
		Regions:   []string{"us-central1"},
		ProjectID: "empresa-infra",
	}
}

func acrTestConfig() *types.RegistryConfig {
	return &types.RegistryConfig{
		Name:       "acr-prod",
		Kind:       "ACR",
		Enabled:    true,
		Regions:    []string{"eastus"},
		NamePrefix: "empresa",
	}
}

func TestManager_AddRegistry(t *testing.T) {
	tests := []struct {
		name      string
		config    *types.RegistryConfig
		wantErr   string
		wantCount int
	}{
		{
			name:      "JFROG válido",
			config:    jfrogTestConfig(),
			wantCount: 1,
		},
		{
			name:      "DOCR válido",
			config:    docrTestConfig(),
			wantCount: 1,
		},
		{
			name:      "GAR válido",
			config:    garTestConfig(),
			wantCount: 1,
		},
		{
			name:      "ACR válido",
			config:    acrTestConfig(),
			wantCount: 1,
		},
		{
			name: "registry desabilitado é ignorado",
			config: &types.RegistryConfig{
				Name:    "artifactory-prod",
				Kind:    "JFROG",
				Enabled: false,
			},
			wantCount: 0,
		},
		{
			name: "tipo desconhecido",
			config: &types.RegistryConfig{
				Name:    "registro-x",
				Kind:    "HARBOR",
				Enabled: true,
			},
			wantErr:   "tipo de registry não suportado",
			wantCount: 0,
		},
		{
			name: "tipo em minúsculas é rejeitado",
			config: &types.RegistryConfig{
				Name:    "registro-x",
				Kind:    "jfrog",
				Enabled: true,
			},
			wantErr:   "tipo de registry não suportado",
			wantCount: 0,
		},
		{
			name: "erro de construção propaga",
			config: &types.RegistryConfig{
				Name:    "gar-sem-projeto",
				Kind:    "GAR",
				Enabled: true,
				Regions: []string{"us-central1"},
			},
			wantErr:   "falha ao criar registry GAR",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewManager(testSettings(), logger.NewTest())

			err := manager.AddRegistry(tt.config)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCount, manager.GetRegistryCount())
		})
	}
}

func TestManager_AddRegistry_DuplicateKind(t *testing.T) {
	manager := NewManager(testSettings(), logger.NewTest())

	require.NoError(t, manager.AddRegistry(jfrogTestConfig()))

	err := manager.AddRegistry(jfrogTestConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configurado mais de uma vez")
	assert.Equal(t, 1, manager.GetRegistryCount())
}

func TestManager_GetRegistry(t *testing.T) {
	manager := NewManager(testSettings(), logger.NewTest())
	require.NoError(t, manager.AddRegistry(docrTestConfig()))

	registry, err := manager.GetRegistry(types.KindDOCR)
	require.NoError(t, err)
	assert.Equal(t, types.KindDOCR, registry.GetKind())

	_, err = manager.GetRegistry(types.KindECR)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry ECR não encontrado")
}

func TestManager_EnabledRegistries_CanonicalOrder(t *testing.T) {
	manager := NewManager(testSettings(), logger.NewTest())

	require.NoError(t, manager.AddRegistry(docrTestConfig()))
	require.NoError(t, manager.AddRegistry(jfrogTestConfig()))
	require.NoError(t, manager.AddRegistry(garTestConfig()))

	registries := manager.EnabledRegistries()
	require.Len(t, registries, 3)

	assert.Equal(t, types.KindGAR, registries[0].GetKind())
	assert.Equal(t, types.KindJFROG, registries[1].GetKind())
	assert.Equal(t, types.KindDOCR, registries[2].GetKind())
}

func TestManager_ConfiguredKinds(t *testing.T) {
	manager := NewManager(testSettings(), logger.NewTest())

	require.NoError(t, manager.AddRegistry(acrTestConfig()))
	require.NoError(t, manager.AddRegistry(jfrogTestConfig()))

	kinds := manager.ConfiguredKinds()
	assert.Equal(t, []types.RegistryKind{types.KindACR, types.KindJFROG}, kinds)
}
