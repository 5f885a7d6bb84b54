package mirror

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) GetKind() types.RegistryKind {
	args := m.Called()
	return args.Get(0).(types.RegistryKind)
}

func (m *MockRegistry) Login(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegistry) Validate(ctx context.Context) types.ValidationResult {
	args := m.Called(ctx)
	return args.Get(0).(types.ValidationResult)
}

func (m *MockRegistry) Push(ctx context.Context, sourceImage string) error {
	args := m.Called(ctx, sourceImage)
	return args.Error(0)
}

type MockRegistryProvider struct {
	mock.Mock
}

func (m *MockRegistryProvider) GetRegistry(kind types.RegistryKind) (registry.Registry, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(registry.Registry), args.Error(1)
}

func (m *MockRegistryProvider) EnabledRegistries() []registry.Registry {
	args := m.Called()
	return args.Get(0).([]registry.Registry)
}

func (m *MockRegistryProvider) LoginAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validationOK(kind types.RegistryKind) types.ValidationResult {
	return types.ValidationResult{Destination: kind, OK: true, Detail: "ok"}
}

func testConfig() *types.Config {
	return &types.Config{
		Settings: types.SettingsConfig{
			Concurrency: 2,
			MaxRetries:  3,
			RetryDelay:  1,
		},
	}
}

func newTestEngine(cfg *types.Config, provider RegistryProvider) *Engine {
	log := logger.NewTest()

	return &Engine{
		registries:  provider,
		config:      cfg,
		logger:      log,
		concurrency: cfg.Settings.Concurrency,
		retrier:     NewRetrier(cfg.Settings.MaxRetries, time.Millisecond, log),
	}
}

func TestEngine_Run_Success(t *testing.T) {
	ecr := &MockRegistry{}
	gar := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("GetKind").Return(types.KindECR)
	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	ecr.On("Push", mock.Anything, "nginx:1.25.3").Return(nil)
	ecr.On("Push", mock.Anything, "redis:7.2").Return(nil)

	gar.On("GetKind").Return(types.KindGAR)
	gar.On("Validate", mock.Anything).Return(validationOK(types.KindGAR))
	gar.On("Push", mock.Anything, "nginx:1.25.3").Return(nil)

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, gar})
	provider.On("LoginAll", mock.Anything).Return(nil)
	provider.On("GetRegistry", types.KindECR).Return(ecr, nil)
	provider.On("GetRegistry", types.KindGAR).Return(gar, nil)

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR, types.KindGAR}},
		{Line: 2, SourceImage: "redis:7.2", Destinations: []types.RegistryKind{types.KindECR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.TotalJobs)
	assert.Equal(t, 3, report.TotalPairs)
	assert.Equal(t, 3, report.SuccessCount)
	assert.Equal(t, 0, report.FailureCount)
	assert.True(t, report.Succeeded())
	assert.Len(t, report.Validations, 2)

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, 1, report.Outcomes[0].Job.Line)
	assert.Equal(t, types.KindECR, report.Outcomes[0].Destination)
	assert.Equal(t, 1, report.Outcomes[1].Job.Line)
	assert.Equal(t, types.KindGAR, report.Outcomes[1].Destination)
	assert.Equal(t, 2, report.Outcomes[2].Job.Line)
	assert.Equal(t, types.KindECR, report.Outcomes[2].Destination)

	ecr.AssertExpectations(t)
	gar.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_FailureDoesNotBlockOtherPairs(t *testing.T) {
	ecr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("GetKind").Return(types.KindECR)
	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	ecr.On("Push", mock.Anything, "broken/image:latest").Return(errors.New("manifest desconhecido"))
	ecr.On("Push", mock.Anything, "nginx:1.25.3").Return(nil)

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr})
	provider.On("LoginAll", mock.Anything).Return(nil)
	provider.On("GetRegistry", types.KindECR).Return(ecr, nil)

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "broken/image:latest", Destinations: []types.RegistryKind{types.KindECR}},
		{Line: 2, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)
	assert.False(t, report.Succeeded())

	require.Len(t, report.Failures, 1)
	assert.Equal(t, 1, report.Failures[0].Job.Line)
	assert.Equal(t, 3, report.Failures[0].Attempts)
	assert.Contains(t, report.Failures[0].Error, "manifest desconhecido")

	ecr.AssertNumberOfCalls(t, "Push", 4)
	ecr.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_ValidationFailureBlocksEveryPush(t *testing.T) {
	ecr := &MockRegistry{}
	gar := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(types.ValidationResult{
		Destination: types.KindECR,
		OK:          false,
		Detail:      "credenciais inválidas",
	})
	gar.On("Validate", mock.Anything).Return(validationOK(types.KindGAR))

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, gar})

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR, types.KindGAR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validação de destinos falhou")

	require.NotNil(t, report)
	assert.Equal(t, 2, report.TotalPairs)
	assert.Empty(t, report.Outcomes)
	assert.False(t, report.Succeeded())

	ecr.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	gar.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "LoginAll", mock.Anything)

	ecr.AssertExpectations(t)
	gar.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_RetryRecoversAfterTransientFailures(t *testing.T) {
	ecr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("GetKind").Return(types.KindECR)
	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	ecr.On("Push", mock.Anything, "ghcr.io/fluxcd/source-controller:v1.2.4").Return(errors.New("timeout")).Twice()
	ecr.On("Push", mock.Anything, "ghcr.io/fluxcd/source-controller:v1.2.4").Return(nil).Once()

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr})
	provider.On("LoginAll", mock.Anything).Return(nil)
	provider.On("GetRegistry", types.KindECR).Return(ecr, nil)

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "ghcr.io/fluxcd/source-controller:v1.2.4", Destinations: []types.RegistryKind{types.KindECR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.FailureCount)

	require.Len(t, report.Outcomes, 1)
	assert.True(t, report.Outcomes[0].Success)
	assert.Equal(t, 3, report.Outcomes[0].Attempts)

	ecr.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_DryRunNeverPushes(t *testing.T) {
	ecr := &MockRegistry{}
	gar := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	gar.On("Validate", mock.Anything).Return(validationOK(types.KindGAR))

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr, gar})

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR, types.KindGAR}},
		{Line: 2, SourceImage: "redis:7.2", Destinations: []types.RegistryKind{types.KindGAR}},
	}

	cfg := testConfig()
	cfg.Settings.DryRun = true

	engine := newTestEngine(cfg, provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.TotalPairs)
	assert.Equal(t, 3, report.SuccessCount)
	assert.True(t, report.Succeeded())

	for _, outcome := range report.Outcomes {
		assert.True(t, outcome.Success)
		assert.Equal(t, 0, outcome.Attempts)
	}

	ecr.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	gar.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "LoginAll", mock.Anything)

	ecr.AssertExpectations(t)
	gar.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_EmptyListIsNoOp(t *testing.T) {
	provider := &MockRegistryProvider{}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), nil)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.TotalJobs)
	assert.Equal(t, 0, report.TotalPairs)
	assert.True(t, report.Succeeded())

	provider.AssertNotCalled(t, "EnabledRegistries")
	provider.AssertNotCalled(t, "LoginAll", mock.Anything)
}

func TestEngine_Run_LoginFailureAbortsPushes(t *testing.T) {
	ecr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr})
	provider.On("LoginAll", mock.Anything).Return(errors.New("token expirado"))

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "autenticação nos registries falhou")

	require.NotNil(t, report)
	assert.Empty(t, report.Outcomes)

	ecr.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	ecr.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_UnknownDestinationFailsWithoutAttempts(t *testing.T) {
	ecr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	ecr.On("GetKind").Return(types.KindECR)
	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	ecr.On("Push", mock.Anything, "nginx:1.25.3").Return(nil)

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr})
	provider.On("LoginAll", mock.Anything).Return(nil)
	provider.On("GetRegistry", types.KindECR).Return(ecr, nil)
	provider.On("GetRegistry", types.KindGAR).Return(nil, errors.New("registry GAR não encontrado"))

	jobs := []types.MirrorJob{
		{Line: 1, SourceImage: "nginx:1.25.3", Destinations: []types.RegistryKind{types.KindECR, types.KindGAR}},
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalPairs)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, types.KindGAR, report.Failures[0].Destination)
	assert.Equal(t, 0, report.Failures[0].Attempts)
	assert.Contains(t, report.Failures[0].Error, "não encontrado")

	ecr.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEngine_Run_RespectsConcurrencyLimit(t *testing.T) {
	ecr := &MockRegistry{}
	provider := &MockRegistryProvider{}

	var mu sync.Mutex
	active := 0
	peak := 0

	ecr.On("GetKind").Return(types.KindECR)
	ecr.On("Validate", mock.Anything).Return(validationOK(types.KindECR))
	ecr.On("Push", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
	})

	provider.On("EnabledRegistries").Return([]registry.Registry{ecr})
	provider.On("LoginAll", mock.Anything).Return(nil)
	provider.On("GetRegistry", types.KindECR).Return(ecr, nil)

	var jobs []types.MirrorJob
	for i := 1; i <= 6; i++ {
		jobs = append(jobs, types.MirrorJob{
			Line:         i,
			SourceImage:  "nginx:1.25.3",
			Destinations: []types.RegistryKind{types.KindECR},
		})
	}

	engine := newTestEngine(testConfig(), provider)
	report, err := engine.Run(context.Background(), jobs)

	require.NoError(t, err)
	assert.Equal(t, 6, report.SuccessCount)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
	assert.GreaterOrEqual(t, peak, 1)
}

func TestNewEngine_Defaults(t *testing.T) {
	cfg := &types.Config{
		Settings: types.SettingsConfig{
			Concurrency: 0,
			MaxRetries:  3,
			RetryDelay:  5,
		},
	}

	engine := NewEngine(cfg, &MockRegistryProvider{}, logger.NewTest())

	assert.Equal(t, 3, engine.concurrency)
	assert.Nil(t, engine.discordWebhook)
	assert.NotNil(t, engine.htmlReporter)
	assert.NotNil(t, engine.retrier)
}
