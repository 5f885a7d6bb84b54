package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

func TestNewECRRegistry_RequiresRegion(t *testing.T) {
	config := &types.RegistryConfig{
		Name:    "ecr-prod",
		Kind:    "ECR",
		Enabled: true,
	}

	_, err := NewECRRegistry(config, testSettings(), logger.NewTest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requer ao menos uma região")
}

func TestECRRegistry_RegistryHost(t *testing.T) {
	config := &types.RegistryConfig{
		Name:      "ecr-prod",
		Kind:      "ECR",
		Enabled:   true,
		Regions:   []string{"us-east-1", "sa-east-1"},
		AccountID: "123456789012",
		AccessKey: "AKIAEXAMPLEEXAMPLE",
		SecretKey: "secret",
	}

	registry, err := NewECRRegistry(config, testSettings(), logger.NewTest())
	require.NoError(t, err)

	assert.Equal(t, types.KindECR, registry.GetKind())
	assert.Equal(t, "123456789012.dkr.ecr.us-east-1.amazonaws.com", registry.registryHost("us-east-1"))
	assert.Equal(t, "123456789012.dkr.ecr.sa-east-1.amazonaws.com", registry.registryHost("sa-east-1"))
	assert.Len(t, registry.clients, 2)
}

func TestECRRegistry_TargetReference(t *testing.T) {
	tests := []struct {
		name        string
		sourceImage string
		expected    string
	}{
		{
			name:        "imagem oficial ganha prefixo library",
			sourceImage: "nginx:1.25.3",
			expected:    "123456789012.dkr.ecr.us-east-1.amazonaws.com/library/nginx:1.25.3",
		},
		{
			name:        "namespace preservado",
			sourceImage: "grafana/grafana:10.2.0",
			expected:    "123456789012.dkr.ecr.us-east-1.amazonaws.com/grafana/grafana:10.2.0",
		},
		{
			name:        "host de origem descartado",
			sourceImage: "quay.io/prometheus/prometheus:v2.48.0",
			expected:    "123456789012.dkr.ecr.us-east-1.amazonaws.com/prometheus/prometheus:v2.48.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := types.ParseImageName(tt.sourceImage)
			target := targetReference("123456789012.dkr.ecr.us-east-1.amazonaws.com", parsed)
			assert.Equal(t, tt.expected, target)
		})
	}
}
