package types

type RegistryConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Enabled bool   `yaml:"enabled"`

	// ECR
	Regions   []string `yaml:"regions,omitempty"`
	AccountID string   `yaml:"account_id,omitempty"`
	AccessKey string   `yaml:"access_key,omitempty"`
	SecretKey string   `yaml:"secret_key,omitempty"`
	Profiles  []string `yaml:"profiles,omitempty"`

	// GAR
	ProjectID string `yaml:"project_id,omitempty"`

	// ACR
	ACRName       string `yaml:"acr_name,omitempty"`
	ResourceGroup string `yaml:"resource_group,omitempty"`

	// JFROG e DOCR
	URL          string `yaml:"url,omitempty"`
	Username     string `yaml:"username,omitempty"`
	Token        string `yaml:"token,omitempty"`
	Repository   string `yaml:"repository,omitempty"`
	RegistryName string `yaml:"registry_name,omitempty"`
	Insecure     bool   `yaml:"insecure,omitempty"`

	NamePrefix string `yaml:"name_prefix,omitempty"`
}

type SettingsConfig struct {
	Language    string `yaml:"language"`
	LogLevel    string `yaml:"log_level"`
	DryRun      bool   `yaml:"dry_run"`
	Concurrency int    `yaml:"concurrency"`
	MaxRetries  int    `yaml:"max_retries"`
	RetryDelay  int    `yaml:"retry_delay"`
	Platform    string `yaml:"platform"`
	ImageList   string `yaml:"image_list"`
}

type WebhooksConfig struct {
	Discord DiscordWebhookConfig `yaml:"discord"`
}

type DiscordWebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Name    string `yaml:"name"`
	Avatar  string `yaml:"avatar,omitempty"`
}

type Config struct {
	Registries []RegistryConfig `yaml:"registries"`
	Settings   SettingsConfig   `yaml:"settings"`
	Webhooks   WebhooksConfig   `yaml:"webhooks"`
}
