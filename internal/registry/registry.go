package registry

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/kevinfinalboss/corsair/pkg/utils"
)

// Registry é um destino de espelhamento. Implementações precisam ser
// seguras para uso concorrente: o engine chama Push de várias
// goroutines ao mesmo tempo.
type Registry interface {
	GetKind() types.RegistryKind
	Login(ctx context.Context) error
	Validate(ctx context.Context) types.ValidationResult
	Push(ctx context.Context, sourceImage string) error
}

type BaseRegistry struct {
	Kind   types.RegistryKind
	Logger *logger.Logger
}

func (r *BaseRegistry) GetKind() types.RegistryKind {
	return r.Kind
}

// O destino é sempre referenciado por tag: digests identificam a
// origem, mas não servem como alvo de push.
func targetReference(host string, parsed *types.ParsedImage) string {
	return utils.BuildFullImageName(host, parsed.FullRepository, parsed.Tag)
}

func createHTTPClient(insecure bool) *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: insecure,
			},
		},
	}
}

func checkHTTPEndpoint(ctx context.Context, client *http.Client, url, username, password string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("falha ao criar requisição: %w", err)
	}

	if username != "" {
		req.SetBasicAuth(username, password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("falha ao conectar em %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("endpoint %s retornou status %d", url, resp.StatusCode)
	}

	return nil
}
