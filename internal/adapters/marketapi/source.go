package marketapi

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

// TradeDeriver produce trades históricos demo a partir de oportunidades.
// La API remota solo expone mercados, no un ledger propio — para ejercitar
// el pipeline de analytics con datos del mercado real, la derivación se
// inyecta desde cmd/ (normalmente el generador sintético).
type TradeDeriver func(opps []domain.MarketOpportunity) []domain.Trade

// Source es la fuente primaria de la cadena. Implementa ports.TradeSource.
type Source struct {
	client *Client
	limit  int
	params domain.ScoreParams
	derive TradeDeriver
}

// NewSource crea la fuente primaria. limit acota el sample de eventos pedido.
func NewSource(client *Client, limit int, params domain.ScoreParams, derive TradeDeriver) *Source {
	if limit <= 0 {
		limit = 20
	}
	return &Source{client: client, limit: limit, params: params, derive: derive}
}

// Name implementa ports.TradeSource.
func (s *Source) Name() domain.Source {
	return domain.SourcePrimary
}

// Fetch obtiene eventos, los transforma a oportunidades y deriva los trades.
// Política de resultado vacío: una respuesta válida de la que no sale ni una
// oportunidad (o ni un trade) cuenta como fallo, no como éxito.
func (s *Source) Fetch(ctx context.Context) ([]domain.Trade, []domain.MarketOpportunity, error) {
	events, err := s.client.FetchEvents(ctx, s.limit)
	if err != nil {
		return nil, nil, err
	}

	opps := mapOpportunities(events, s.params)
	if len(opps) == 0 {
		return nil, nil, fmt.Errorf("marketapi.Fetch: no market maps to the internal schema: %w", ports.ErrEmptyResult)
	}

	trades := s.derive(opps)
	if len(trades) == 0 {
		return nil, nil, fmt.Errorf("marketapi.Fetch: no trades derived: %w", ports.ErrEmptyResult)
	}
	domain.SortByTimestamp(trades)

	return trades, opps, nil
}
