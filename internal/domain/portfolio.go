package domain

// PortfolioSummary es el estado derivado del portfolio tras un ciclo de
// adquisición. Se recalcula desde cero en cada ciclo; nunca se muta in place.
type PortfolioSummary struct {
	Capital         float64 `json:"capital"`  // cash tras el último trade
	TotalPnL        float64 `json:"totalPnL"` // suma de pnl de todos los trades
	TotalTrades     int     `json:"totalTrades"`
	OpenPositions   int     `json:"openPositions"`
	ClosedPositions int     `json:"closedPositions"`
	WinRate         int     `json:"winRate"` // % de trades con pnl > 0, redondeado
}
