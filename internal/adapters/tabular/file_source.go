package tabular

import (
	"context"
	"fmt"
	"os"

	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

// FileSource es la fuente de fallback: un archivo de trades estático en disco
// que se pasa por el parser tabular. Implementa ports.TradeSource.
type FileSource struct {
	path string
}

// NewFileSource crea la fuente de fallback para la ruta dada.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implementa ports.TradeSource.
func (s *FileSource) Name() domain.Source {
	return domain.SourceFallback
}

// Fetch carga y parsea el archivo. Un parse vacío cuenta como fallo
// (ports.ErrEmptyResult) para que el orquestador avance a la etapa sintética.
func (s *FileSource) Fetch(ctx context.Context) ([]domain.Trade, []domain.MarketOpportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("tabular.Fetch: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("tabular.Fetch: read %q: %w", s.path, err)
	}

	trades, err := Parse(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("tabular.Fetch: parse %q: %w", s.path, err)
	}
	if len(trades) == 0 {
		return nil, nil, fmt.Errorf("tabular.Fetch: %q has no data rows: %w", s.path, ports.ErrEmptyResult)
	}

	return trades, nil, nil
}
