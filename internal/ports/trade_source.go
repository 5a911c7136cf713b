package ports

import (
	"context"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// TradeSource es una fuente candidata de trades dentro de la cadena de
// fallback. Cada fuente o bien produce una secuencia no vacía de trades
// (y opcionalmente oportunidades), o bien falla con un error de la
// taxonomía de errors.go — nunca ambas cosas.
type TradeSource interface {
	// Name identifica la etapa para observabilidad (primary|fallback|synthetic).
	Name() domain.Source

	// Fetch obtiene los trades de la fuente. La secuencia devuelta viene
	// ordenada ascendente por timestamp. Debe respetar la cancelación del
	// contexto si la fuente hace I/O.
	Fetch(ctx context.Context) ([]domain.Trade, []domain.MarketOpportunity, error)
}
