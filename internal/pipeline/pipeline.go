// Package pipeline orquesta un ciclo completo: adquisición → análisis →
// notificación + persistencia. Un ciclo es independiente del siguiente;
// no hay estado compartido entre ciclos más allá del histórico en disco.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/tradeledger/internal/acquisition"
	"github.com/alejandrodnm/tradeledger/internal/analytics"
	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

// Config contiene la configuración del loop del pipeline.
type Config struct {
	Interval time.Duration // intervalo entre ciclos en modo loop
	Once     bool          // ejecutar un solo ciclo y salir
}

// Pipeline encadena el orquestador de adquisición con los dos analizadores.
type Pipeline struct {
	cfg       Config
	orch      *acquisition.Orchestrator
	portfolio *analytics.Analyzer
	series    *analytics.SeriesGenerator
	storage   ports.Storage  // opcional
	notifier  ports.Notifier // opcional
}

// New crea un Pipeline con las dependencias inyectadas. storage y notifier
// pueden ser nil; en modo servidor el Result se sirve como JSON sin pasar
// por consola, pero el ciclo se persiste igual.
func New(
	cfg Config,
	orch *acquisition.Orchestrator,
	portfolio *analytics.Analyzer,
	series *analytics.SeriesGenerator,
	storage ports.Storage,
	notifier ports.Notifier,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		orch:      orch,
		portfolio: portfolio,
		series:    series,
		storage:   storage,
		notifier:  notifier,
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el Result. Nunca falla:
// la cadena de adquisición es infalible en su última etapa y los
// analizadores son funciones totales.
func (p *Pipeline) RunOnce(ctx context.Context) *domain.Result {
	trades, opps, source := p.orch.Acquire(ctx)

	// Ambos analizadores consumen la misma secuencia finalizada e inmutable.
	summary := p.portfolio.Analyze(trades)
	performance, returns := p.series.Generate(trades)

	return &domain.Result{
		Trades:           trades,
		Opportunities:    opps,
		PortfolioSummary: summary,
		PerformanceData:  performance,
		DailyReturns:     returns,
		SourceUsed:       source,
	}
}

// Run ejecuta ciclos hasta que el contexto se cancele. Con cfg.Once ejecuta
// exactamente un ciclo y devuelve.
func (p *Pipeline) Run(ctx context.Context) error {
	slog.Info("pipeline starting", "interval", p.cfg.Interval, "once", p.cfg.Once)

	p.RunCycle(ctx)

	if p.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("pipeline stopped")
			return nil
		case <-ticker.C:
			p.RunCycle(ctx)
		}
	}
}

// RunCycle ejecuta un ciclo y reparte el resultado a notifier y storage.
// Los fallos de salida se loguean pero no interrumpen: el Result ya existe.
// Es el punto de entrada común del loop y del API server, para que todo
// ciclo quede registrado en el histórico venga de donde venga.
func (p *Pipeline) RunCycle(ctx context.Context) *domain.Result {
	start := time.Now()
	result := p.RunOnce(ctx)

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, result); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	if p.storage != nil {
		rec := domain.CycleRecord{
			ID:            uuid.New().String(),
			AcquiredAt:    time.Now().UTC(),
			Source:        result.SourceUsed,
			Opportunities: len(result.Opportunities),
			Summary:       result.PortfolioSummary,
		}
		if err := p.storage.SaveCycle(ctx, rec); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	slog.Info("cycle complete",
		"source", result.SourceUsed,
		"trades", len(result.Trades),
		"opportunities", len(result.Opportunities),
		"capital", result.PortfolioSummary.Capital,
		"win_rate", result.PortfolioSummary.WinRate,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return result
}
