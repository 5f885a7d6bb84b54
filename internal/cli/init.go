package cli

import (
	"os"
	"path/filepath"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Inicializa configuração do Corsair",
	Long:  "Cria o arquivo de configuração inicial e uma lista de imagens de exemplo",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if log == nil {
			log = logger.New()
		}

		log.Info("app_started").
			Str("version", "v0.1.0").
			Str("operation", "init").
			Send()

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	configDir := filepath.Join(home, ".corsair")
	configFile := filepath.Join(configDir, "config.yaml")
	imageListFile := filepath.Join(configDir, "images.txt")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	exampleConfig := `registries:
  - name: "aws-producao"
    kind: "ECR"
    enabled: true
    regions:
      - "us-east-1"
    # account_id: ""          # descoberto via STS quando vazio
    # profiles: ["producao"]  # profiles AWS testados em ordem
    # access_key: ""          # credenciais estáticas, se preferir
    # secret_key: ""

  - name: "google-infra"
    kind: "GAR"
    enabled: false
    project_id: "minha-empresa"
    regions:
      - "us-central1"
    # repository: "k8s-assets"

  - name: "azure-infra"
    kind: "ACR"
    enabled: false
    name_prefix: "empresa"
    regions:
      - "eastus"
    # acr_name: ""            # nome explícito em vez do prefixo
    # resource_group: ""

  - name: "artifactory"
    kind: "JFROG"
    enabled: false
    url: "https://empresa.jfrog.io"
    username: ""
    token: ""
    # repository: "docker-local"

  - name: "digitalocean"
    kind: "DOCR"
    enabled: false
    token: ""
    registry_name: "empresa"

settings:
  language: "pt-BR"       # pt-BR, en-US, es-ES
  log_level: "info"       # debug, info, warn, error
  dry_run: false
  concurrency: 3          # pushes simultâneos
  max_retries: 3          # tentativas por par imagem e destino
  retry_delay: 5          # segundos de espera base entre tentativas
  platform: "linux/amd64"
  image_list: "images.txt"

webhooks:
  discord:
    enabled: false
    url: ""
`

	exampleImageList := `# Lista de imagens do Corsair.
# Formato: DESTINO1[,DESTINO2,...] IMAGEM_DE_ORIGEM
# Destinos válidos: ECR, GAR, ACR, JFROG, DOCR

ECR nginx:1.25.3
ECR,GAR ghcr.io/fluxcd/source-controller:v1.2.4
# DOCR redis:7.2
`

	if _, err := os.Stat(configFile); err == nil {
		log.Warn("config_already_exists").Str("file", configFile).Send()
		return nil
	}

	if err := os.WriteFile(configFile, []byte(exampleConfig), 0644); err != nil {
		log.Error("operation_failed").Err(err).Send()
		return err
	}

	if _, err := os.Stat(imageListFile); os.IsNotExist(err) {
		if err := os.WriteFile(imageListFile, []byte(exampleImageList), 0644); err != nil {
			log.Error("operation_failed").Err(err).Send()
			return err
		}
	}

	log.Info("config_created").Str("file", configFile).Send()
	log.Info("image_list_created").Str("file", imageListFile).Send()
	log.Info("operation_completed").Str("operation", "init").Send()

	return nil
}
