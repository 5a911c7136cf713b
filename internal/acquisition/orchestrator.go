// Package acquisition implementa la cadena de fallback de adquisición de
// datos: primaria remota → archivo local → generador sintético.
package acquisition

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/tradeledger/internal/adapters/synthetic"
	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

// Orchestrator prueba las fuentes en orden estricto de prioridad, una sola
// vez cada una por ciclo. El fallo de la etapa n es la condición de arranque
// de la etapa n+1; no hay retries ni vuelta atrás dentro de un ciclo.
type Orchestrator struct {
	sources   []ports.TradeSource
	emergency *synthetic.Generator
}

// New crea el orquestador. sources viene en orden de prioridad y normalmente
// termina en el generador sintético; emergency es la garantía de última
// instancia por si ninguna etapa de la lista produjo resultado (un defecto,
// no un camino esperado — la adquisición nunca termina sin output).
func New(sources []ports.TradeSource, emergency *synthetic.Generator) *Orchestrator {
	return &Orchestrator{sources: sources, emergency: emergency}
}

// Acquire ejecuta un ciclo de adquisición y devuelve el set ganador.
// Nunca falla: la última etapa es infalible por construcción.
func (o *Orchestrator) Acquire(ctx context.Context) ([]domain.Trade, []domain.MarketOpportunity, domain.Source) {
	for _, src := range o.sources {
		trades, opps, err := src.Fetch(ctx)
		if err != nil {
			slog.Warn("source failed, advancing to next stage",
				"source", src.Name(),
				"err", err,
			)
			continue
		}
		if len(trades) == 0 {
			// Éxito requiere trades; un set vacío es fallo aunque la
			// fuente no lo haya reportado como tal.
			slog.Warn("source returned no trades, advancing to next stage",
				"source", src.Name(),
			)
			continue
		}

		slog.Info("acquisition satisfied",
			"source", src.Name(),
			"trades", len(trades),
			"opportunities", len(opps),
		)
		return trades, opps, src.Name()
	}

	slog.Error("all acquisition stages failed, falling back to emergency generator")
	trades, opps, _ := o.emergency.Fetch(ctx)
	return trades, opps, domain.SourceSynthetic
}
