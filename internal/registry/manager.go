package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type Manager struct {
	registries map[types.RegistryKind]Registry
	settings   *types.SettingsConfig
	logger     *logger.Logger
	mutex      sync.RWMutex
}

func NewManager(settings *types.SettingsConfig, logger *logger.Logger) *Manager {
	return &Manager{
		registries: make(map[types.RegistryKind]Registry),
		settings:   settings,
		logger:     logger,
	}
}

func (m *Manager) AddRegistry(config *types.RegistryConfig) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !config.Enabled {
		m.logger.Debug("registry_disabled").
			Str("name", config.Name).
			Str("kind", config.Kind).
			Send()
		return nil
	}

	kind, err := types.ParseRegistryKind(config.Kind)
	if err != nil {
		return err
	}

	if _, exists := m.registries[kind]; exists {
		return fmt.Errorf("registry %s configurado mais de uma vez", kind)
	}

	var registry Registry

	switch kind {
	case types.KindECR:
		registry, err = NewECRRegistry(config, m.settings, m.logger)
	case types.KindGAR:
		registry, err = NewGARRegistry(config, m.settings, m.logger)
	case types.KindACR:
		registry, err = NewACRRegistry(config, m.settings, m.logger)
	case types.KindJFROG:
		registry, err = NewJFrogRegistry(config, m.settings, m.logger)
	case types.KindDOCR:
		registry, err = NewDOCRRegistry(config, m.settings, m.logger)
	}

	if err != nil {
		return fmt.Errorf("falha ao criar registry %s: %w", kind, err)
	}

	m.registries[kind] = registry

	m.logger.Info("registry_added").
		Str("name", config.Name).
		Str("kind", kind.String()).
		Send()

	return nil
}

func (m *Manager) GetRegistry(kind types.RegistryKind) (Registry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	registry, exists := m.registries[kind]
	if !exists {
		return nil, fmt.Errorf("registry %s não encontrado", kind)
	}

	return registry, nil
}

// EnabledRegistries retorna os adapters na ordem canônica dos tipos,
// independente da ordem de configuração.
func (m *Manager) EnabledRegistries() []Registry {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var enabled []Registry
	for _, kind := range types.RegistryKinds() {
		if registry, exists := m.registries[kind]; exists {
			enabled = append(enabled, registry)
		}
	}

	return enabled
}

func (m *Manager) ConfiguredKinds() []types.RegistryKind {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var kinds []types.RegistryKind
	for _, kind := range types.RegistryKinds() {
		if _, exists := m.registries[kind]; exists {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

func (m *Manager) GetRegistryCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.registries)
}

func (m *Manager) LoginAll(ctx context.Context) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var errors []error

	for _, kind := range types.RegistryKinds() {
		registry, exists := m.registries[kind]
		if !exists {
			continue
		}

		m.logger.Info("registry_login_started").
			Str("kind", kind.String()).
			Send()

		if err := registry.Login(ctx); err != nil {
			m.logger.Error("registry_login_failed").
				Str("kind", kind.String()).
				Err(err).
				Send()
			errors = append(errors, fmt.Errorf("registry %s: %w", kind, err))
			continue
		}

		m.logger.Info("registry_login_ok").
			Str("kind", kind.String()).
			Send()
	}

	if len(errors) > 0 {
		return fmt.Errorf("falhas na autenticação: %v", errors)
	}

	return nil
}
