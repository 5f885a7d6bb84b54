package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevinfinalboss/corsair/internal/imagelist"
	"github.com/kevinfinalboss/corsair/internal/mirror"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/spf13/cobra"
)

var (
	imageListFile string
	jobsFlag      int
	retriesFlag   int
	platformFlag  string
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Espelha a lista de imagens para os registries configurados",
	Long: `Lê a lista de imagens, valida todos os destinos habilitados e copia
cada imagem para os registries de destino. Nenhuma imagem é copiada
se qualquer destino reprovar na validação.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMirror(cmd)
	},
}

func init() {
	mirrorCmd.Flags().StringVarP(&imageListFile, "file", "f", "", "arquivo com a lista de imagens (padrão: settings.image_list)")
	mirrorCmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 0, "número de pushes simultâneos")
	mirrorCmd.Flags().IntVarP(&retriesFlag, "retries", "r", 0, "tentativas por par imagem e destino")
	mirrorCmd.Flags().StringVarP(&platformFlag, "platform", "p", "", "plataforma das imagens copiadas (ex: linux/amd64)")
}

func runMirror(cmd *cobra.Command) error {
	ctx := context.Background()

	applyMirrorFlags(cmd)

	registryManager, err := buildRegistryManager()
	if err != nil {
		return err
	}

	jobs, err := loadImageList(registryManager)
	if err != nil {
		return err
	}

	engine := mirror.NewEngine(cfg, registryManager, log)
	report, err := engine.Run(ctx, jobs)
	if err != nil {
		return err
	}

	if !report.Succeeded() {
		return fmt.Errorf("espelhamento concluído com %d falhas", report.FailureCount)
	}

	log.Info("operation_completed").
		Str("operation", "mirror").
		Send()

	return nil
}

func applyMirrorFlags(cmd *cobra.Command) {
	if imageListFile != "" {
		cfg.Settings.ImageList = imageListFile
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Settings.Concurrency = jobsFlag
	}
	if cmd.Flags().Changed("retries") {
		cfg.Settings.MaxRetries = retriesFlag
	}
	if platformFlag != "" {
		cfg.Settings.Platform = platformFlag
	}
}

func buildRegistryManager() (*registry.Manager, error) {
	if len(cfg.Registries) == 0 {
		log.Error("no_registries_configured").Send()
		return nil, fmt.Errorf("nenhum registry configurado. Execute 'corsair init' para configurar")
	}

	registryManager := registry.NewManager(&cfg.Settings, log)
	for _, regConfig := range cfg.Registries {
		if err := registryManager.AddRegistry(&regConfig); err != nil {
			log.Error("registry_add_failed").
				Str("name", regConfig.Name).
				Err(err).
				Send()
			return nil, err
		}
	}

	if registryManager.GetRegistryCount() == 0 {
		log.Error("no_registries_configured").Send()
		return nil, fmt.Errorf("nenhum registry habilitado na configuração")
	}

	return registryManager, nil
}

func loadImageList(registryManager *registry.Manager) ([]types.MirrorJob, error) {
	parser := imagelist.NewParser(registryManager.ConfiguredKinds(), log)

	listPath := resolveImageListPath(cfg.Settings.ImageList)
	jobs, err := parser.ParseFile(listPath)
	if err != nil {
		var parseErrs imagelist.ParseErrors
		if errors.As(err, &parseErrs) {
			log.Error("image_list_invalid").
				Str("file", listPath).
				Int("errors", len(parseErrs)).
				Send()

			for _, lineErr := range parseErrs {
				log.Error("image_list_line_error").
					Int("line", lineErr.Line).
					Str("error", lineErr.Message).
					Send()
			}
			return nil, err
		}

		log.Error("operation_failed").Err(err).Send()
		return nil, err
	}

	log.Info("image_list_loaded").
		Str("file", listPath).
		Int("images", len(jobs)).
		Send()

	return jobs, nil
}

// Caminhos relativos que não existem no diretório atual são procurados
// em ~/.corsair, onde o comando init grava a lista de exemplo.
func resolveImageListPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	candidate := filepath.Join(home, ".corsair", path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return path
}
