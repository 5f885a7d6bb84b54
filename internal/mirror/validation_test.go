package mirror

import (
	"context"
	"testing"

	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEngine_ValidateSetup_AllPass(t *testing.T) {
	ecr := &MockRegistry{}
	gar := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	gar.On("Validate", mock.Anything).Return(validationOK(types.KindGAR))

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, gar})

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.ValidateSetup(context.Background())

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.ValidateOnly)
	assert.Equal(t, 0, report.TotalPairs)
	assert.True(t, report.ValidationsOK())
	assert.Len(t, report.Validations, 2)

	ecr.AssertExpectations(t)
	gar.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_ValidateSetup_ReportsFailure(t *testing.T) {
	ecr := &MockRegistry{}
	jfrog := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	jfrog.On("Validate", mock.Anything).Return(types.ValidationResult{
		Destination: types.KindJFROG,
		OK:          false,
		Detail:      "endpoint https://empresa.jfrog.io/artifactory/api/system/ping retornou status 401",
	})

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, jfrog})

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.ValidateSetup(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validação de destinos falhou")

	require.NotNil(t, report)
	assert.True(t, report.ValidateOnly)
	assert.False(t, report.ValidationsOK())

	require.Len(t, report.Validations, 2)
	assert.True(t, report.Validations[0].OK)
	assert.False(t, report.Validations[1].OK)
	assert.Contains(t, report.Validations[1].Detail, "401")
}

func TestEngine_runValidations_KeepsAdapterOrder(t *testing.T) {
	ecr := &MockRegistry{}
	gar := &MockRegistry{}
	docr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	gar.On("Validate", mock.Anything).Return(validationOK(types.KindGAR))
	docr.On("Validate", mock.Anything).Return(validationOK(types.KindDOCR))

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, gar, docr})

	engine := newTestEngine(testConfig(), provider)
	results := engine.runValidations(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, types.KindECR, results[0].Destination)
	assert.Equal(t, types.KindGAR, results[1].Destination)
	assert.Equal(t, types.KindDOCR, results[2].Destination)
}

func TestAllValid(t *testing.T) {
	tests := []struct {
		name        string
		validations []types.ValidationResult
		expected    bool
	}{
		{
			name:        "sem destinos",
			validations: nil,
			expected:    true,
		},
		{
			name: "todos aprovados",
			validations: []types.ValidationResult{
				{Destination: types.KindECR, OK: true},
				{Destination: types.KindGAR, OK: true},
			},
			expected: true,
		},
		{
			name: "um reprovado",
			validations: []types.ValidationResult{
				{Destination: types.KindECR, OK: true},
				{Destination: types.KindACR, OK: false},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, allValid(tt.validations))
		})
	}
}
