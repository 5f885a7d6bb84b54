package registry

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kevinfinalboss/corsair/internal/logger"
)

// CraneClient executa o binário crane para cópia e autenticação de
// imagens. Nenhuma imagem passa pelo disco local: crane copy transfere
// direto entre os registries.
type CraneClient struct {
	platform string
	logger   *logger.Logger
}

func NewCraneClient(platform string, log *logger.Logger) *CraneClient {
	return &CraneClient{
		platform: platform,
		logger:   log,
	}
}

func (c *CraneClient) Available() error {
	if _, err := exec.LookPath("crane"); err != nil {
		return fmt.Errorf("binário crane não encontrado no PATH: %w", err)
	}
	return nil
}

func (c *CraneClient) Copy(ctx context.Context, sourceImage, targetImage string) error {
	args := []string{"copy", sourceImage, targetImage}
	if c.platform != "" {
		args = append(args, "--platform", c.platform)
	}

	c.logger.Debug("crane_copy_started").
		Str("source", sourceImage).
		Str("target", targetImage).
		Send()

	cmd := exec.CommandContext(ctx, "crane", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("falha ao copiar %s para %s: %s", sourceImage, targetImage, strings.TrimSpace(string(output)))
	}

	c.logger.Debug("crane_copy_completed").
		Str("source", sourceImage).
		Str("target", targetImage).
		Send()

	return nil
}

func (c *CraneClient) LoginRegistry(ctx context.Context, host, username, password string) error {
	cmd := exec.CommandContext(ctx, "crane", "auth", "login", host, "--username", username, "--password-stdin")
	cmd.Stdin = strings.NewReader(password)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("falha na autenticação do crane em %s: %s", host, strings.TrimSpace(string(output)))
	}

	c.logger.Debug("crane_login_completed").
		Str("host", host).
		Send()

	return nil
}
