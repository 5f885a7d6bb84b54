package cli

import (
	"fmt"

	"github.com/kevinfinalboss/corsair/internal/config"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	language string
	logLevel string
	debug    bool
	dryRun   bool
	log      *logger.Logger
	cfg      *types.Config
)

var rootCmd = &cobra.Command{
	Use:   "corsair",
	Short: "Espelha imagens de containers para registries privados",
	Long: `Corsair lê uma lista declarativa de imagens e espelha cada uma delas
para os registries privados configurados (ECR, GAR, ACR, JFROG, DOCR).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("erro ao carregar configuração: %w", err)
		}

		if language != "" {
			cfg.Settings.Language = language
		}
		if logLevel != "" {
			cfg.Settings.LogLevel = logLevel
		}
		if debug {
			cfg.Settings.LogLevel = "debug"
		}
		if cmd.Flags().Changed("dry-run") {
			cfg.Settings.DryRun = dryRun
		}

		log = logger.NewWithConfig(cfg)

		if cfgFile != "" {
			log.Info("config_loaded").Str("file", cfgFile).Send()
		}

		log.Info("app_started").
			Str("version", "v0.1.0").
			Str("language", cfg.Settings.Language).
			Bool("dry_run", cfg.Settings.DryRun).
			Send()

		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão: ~/.corsair/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "idioma dos logs (pt-BR, en-US, es-ES)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nível de log (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "atalho para --log-level debug")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "executar sem copiar nenhuma imagem")

	addSubcommands()
}

func addSubcommands() {
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
}
