package imagelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

type LineError struct {
	Line    int
	Message string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("linha %d: %s", e.Line, e.Message)
}

type ParseErrors []*LineError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return fmt.Sprintf("lista de imagens inválida: 1 erro (%s)", e[0].Error())
	}

	lines := make([]string, 0, len(e))
	for _, lineErr := range e {
		lines = append(lines, lineErr.Error())
	}
	return fmt.Sprintf("lista de imagens inválida: %d erros (%s)", len(e), strings.Join(lines, "; "))
}

type Parser struct {
	configured map[types.RegistryKind]bool
	logger     *logger.Logger
}

func NewParser(configured []types.RegistryKind, log *logger.Logger) *Parser {
	kinds := make(map[types.RegistryKind]bool, len(configured))
	for _, kind := range configured {
		kinds[kind] = true
	}

	return &Parser{
		configured: kinds,
		logger:     log,
	}
}

func (p *Parser) ParseFile(path string) ([]types.MirrorJob, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir lista de imagens %s: %w", path, err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse lê a lista inteira antes de retornar: todos os erros são
// coletados com o número da linha, nunca apenas o primeiro.
func (p *Parser) Parse(r io.Reader) ([]types.MirrorJob, error) {
	var jobs []types.MirrorJob
	var errs ParseErrors

	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
			continue
		}

		job, lineErrs := p.parseLine(lineNumber, line)
		if len(lineErrs) > 0 {
			errs = append(errs, lineErrs...)
			continue
		}

		jobs = append(jobs, job)
		p.logger.Debug("image_list_entry").
			Int("line", lineNumber).
			Str("image", job.SourceImage).
			Int("destinations", len(job.Destinations)).
			Send()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("falha ao ler lista de imagens: %w", err)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return jobs, nil
}

func (p *Parser) parseLine(lineNumber int, line string) (types.MirrorJob, ParseErrors) {
	var errs ParseErrors

	fields := strings.Fields(line)
	if len(fields) < 2 {
		errs = append(errs, &LineError{
			Line:    lineNumber,
			Message: fmt.Sprintf("formato inválido, esperado 'DESTINOS IMAGEM': %s", line),
		})
		return types.MirrorJob{}, errs
	}

	destinations, destErrs := p.parseDestinations(lineNumber, fields[0])
	errs = append(errs, destErrs...)

	sourceImage := fields[1]
	if parsed := types.ParseImageName(sourceImage); parsed.Repository == "" {
		errs = append(errs, &LineError{
			Line:    lineNumber,
			Message: fmt.Sprintf("imagem de origem inválida: %s", sourceImage),
		})
	}

	if len(errs) > 0 {
		return types.MirrorJob{}, errs
	}

	return types.MirrorJob{
		Line:         lineNumber,
		SourceImage:  sourceImage,
		Destinations: destinations,
	}, nil
}

func (p *Parser) parseDestinations(lineNumber int, field string) ([]types.RegistryKind, ParseErrors) {
	var errs ParseErrors
	var destinations []types.RegistryKind

	seen := make(map[types.RegistryKind]bool)

	for _, token := range strings.Split(field, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			errs = append(errs, &LineError{
				Line:    lineNumber,
				Message: "destino vazio na lista de destinos",
			})
			continue
		}

		kind, err := types.ParseRegistryKind(token)
		if err != nil {
			errs = append(errs, &LineError{
				Line:    lineNumber,
				Message: err.Error(),
			})
			continue
		}

		if !p.configured[kind] {
			errs = append(errs, &LineError{
				Line:    lineNumber,
				Message: fmt.Sprintf("registry %s não está configurado", kind),
			})
			continue
		}

		// Destinos repetidos na mesma linha contam uma única vez,
		// preservando a posição da primeira ocorrência.
		if seen[kind] {
			continue
		}
		seen[kind] = true

		destinations = append(destinations, kind)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return destinations, nil
}
