package cli

import (
	"context"

	"github.com/kevinfinalboss/corsair/internal/mirror"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: getMessage("validate_short"),
	Long:  getMessage("validate_long"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func runValidate() error {
	ctx := context.Background()

	registryManager, err := buildRegistryManager()
	if err != nil {
		return err
	}

	engine := mirror.NewEngine(cfg, registryManager, log)
	if _, err := engine.ValidateSetup(ctx); err != nil {
		return err
	}

	log.Info("operation_completed").
		Str("operation", "validate").
		Send()

	return nil
}
