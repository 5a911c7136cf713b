package domain

import "time"

// Source identifica qué etapa de la cadena de fallback satisfizo el ciclo.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceFallback  Source = "fallback"
	SourceSynthetic Source = "synthetic"
)

// Result es el set completo que consume la capa de presentación tras un
// ciclo de adquisición + análisis. Todos los campos son value objects
// recién construidos; el ciclo siguiente produce un Result nuevo.
type Result struct {
	Trades           []Trade                `json:"trades"`
	Opportunities    []MarketOpportunity    `json:"opportunities"`
	PortfolioSummary PortfolioSummary       `json:"portfolioSummary"`
	PerformanceData  []PerformanceDataPoint `json:"performanceData"`
	DailyReturns     []DailyReturn          `json:"dailyReturns"`
	SourceUsed       Source                 `json:"sourceUsed"`
}

// CycleRecord es el resumen persistido de un ciclo, para histórico.
// No guarda los trades crudos — solo el derivado, que es lo que aporta señal.
type CycleRecord struct {
	ID            string           `json:"id"`
	AcquiredAt    time.Time        `json:"acquiredAt"`
	Source        Source           `json:"source"`
	Opportunities int              `json:"opportunities"`
	Summary       PortfolioSummary `json:"summary"`
}
