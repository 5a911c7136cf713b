// Package analytics deriva el estado del portfolio y la serie de performance
// a partir de una secuencia inmutable de trades. Las dos funciones son puras
// y totales: entrada malformada degrada a defaults documentados, nunca a un
// error — el dashboard no puede quedarse sin datos que mostrar.
package analytics

import (
	"math"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// DefaultStartingCapital es el capital asumido cuando no hay trades o el
// último trade no informa cash. El histórico tenía revisiones con 0 y con
// 100; se consolida en 100, configurable.
const DefaultStartingCapital = 100

// Analyzer calcula el PortfolioSummary de una secuencia de trades.
type Analyzer struct {
	startingCapital float64
}

// NewAnalyzer crea un Analyzer. startingCapital <= 0 usa el default.
func NewAnalyzer(startingCapital float64) *Analyzer {
	if startingCapital <= 0 {
		startingCapital = DefaultStartingCapital
	}
	return &Analyzer{startingCapital: startingCapital}
}

// Analyze recorre los trades (ya ordenados por timestamp) y devuelve el
// resumen derivado. Determinista y sin efectos.
func (a *Analyzer) Analyze(trades []domain.Trade) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		Capital:     a.startingCapital,
		TotalTrades: len(trades),
	}

	wins := 0
	for _, t := range trades {
		summary.TotalPnL += t.PnL
		if t.PnL > 0 {
			wins++
		}
	}
	if summary.TotalTrades > 0 {
		summary.WinRate = int(math.Round(100 * float64(wins) / float64(summary.TotalTrades)))
	}

	// Capital = cash tras el último trade. Cero se trata como "no informado"
	// y cae al capital inicial.
	if len(trades) > 0 {
		if cash := trades[len(trades)-1].CashRemaining; cash > 0 {
			summary.Capital = cash
		}
	}

	summary.OpenPositions, summary.ClosedPositions = netPositions(trades)
	return summary
}

// netPositions aplica el modelo de exposición neta por símbolo: BUY suma
// shares al running total, SELL resta, y cuando el total cae a cero o menos
// la posición se considera cerrada. No es un motor de matching por lotes —
// los empates y ventas parciales se resuelven solo por el signo del total.
func netPositions(trades []domain.Trade) (open, closed int) {
	positions := make(map[string]float64)

	for _, t := range trades {
		if t.Symbol == "" || t.Action == "" {
			continue // trade sin identidad: no afecta los conteos
		}

		switch {
		case t.IsBuy():
			positions[t.Symbol] += t.Shares
		case t.IsSell():
			remaining := positions[t.Symbol] - t.Shares
			if remaining <= 0 {
				delete(positions, t.Symbol)
				closed++
			} else {
				positions[t.Symbol] = remaining
			}
		}
	}

	return len(positions), closed
}
