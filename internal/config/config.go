package config

import (
	"os"
	"path/filepath"

	"github.com/kevinfinalboss/corsair/pkg/types"
	"gopkg.in/yaml.v3"
)

func Load(configFile string) (*types.Config, error) {
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configFile = filepath.Join(home, ".corsair", "config.yaml")
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultConfig(), nil
		}
		return nil, err
	}

	var config types.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

func GetDefaultConfig() *types.Config {
	config := &types.Config{
		Registries: []types.RegistryConfig{},
		Settings: types.SettingsConfig{
			Language:    "pt-BR",
			LogLevel:    "info",
			DryRun:      false,
			Concurrency: 3,
			MaxRetries:  3,
			RetryDelay:  5,
			Platform:    "linux/amd64",
			ImageList:   "images.txt",
		},
		Webhooks: types.WebhooksConfig{
			Discord: types.DiscordWebhookConfig{
				Enabled: false,
				URL:     "",
				Name:    "Corsair 🏴‍☠️",
			},
		},
	}

	return config
}

func applyDefaults(config *types.Config) {
	if config.Settings.Language == "" {
		config.Settings.Language = "pt-BR"
	}
	if config.Settings.LogLevel == "" {
		config.Settings.LogLevel = "info"
	}
	if config.Settings.Concurrency == 0 {
		config.Settings.Concurrency = 3
	}
	if config.Settings.MaxRetries == 0 {
		config.Settings.MaxRetries = 3
	}
	if config.Settings.RetryDelay == 0 {
		config.Settings.RetryDelay = 5
	}
	if config.Settings.Platform == "" {
		config.Settings.Platform = "linux/amd64"
	}
	if config.Settings.ImageList == "" {
		config.Settings.ImageList = "images.txt"
	}

	if config.Webhooks.Discord.Name == "" {
		config.Webhooks.Discord.Name = "Corsair 🏴‍☠️"
	}
}

func Save(config *types.Config, configFile string) error {
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configDir := filepath.Join(home, ".corsair")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return err
		}
		configFile = filepath.Join(configDir, "config.yaml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configFile, data, 0644)
}
