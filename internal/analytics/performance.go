package analytics

import (
	"math"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// DefaultHorizon es el largo objetivo de la serie de performance. El
// histórico osciló entre 5 y 14; se consolida en 14, configurable.
const DefaultHorizon = 14

// SeriesGenerator produce la serie de capital por día y los retornos
// diarios alineados, extrapolando históricos cortos hasta el horizonte.
type SeriesGenerator struct {
	horizon         int
	startingCapital float64
}

// NewSeriesGenerator crea un SeriesGenerator. Valores <= 0 usan los defaults.
func NewSeriesGenerator(horizon int, startingCapital float64) *SeriesGenerator {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if startingCapital <= 0 {
		startingCapital = DefaultStartingCapital
	}
	return &SeriesGenerator{horizon: horizon, startingCapital: startingCapital}
}

// Generate agrupa los trades por día, toma el cash de cierre de cada día y
// calcula el retorno día-contra-día. Con input vacío devuelve la serie
// mínima determinista (día 1, capital inicial, retorno 0). Nunca falla.
func (g *SeriesGenerator) Generate(trades []domain.Trade) ([]domain.PerformanceDataPoint, []domain.DailyReturn) {
	if len(trades) == 0 {
		return []domain.PerformanceDataPoint{{Day: 1, Capital: g.startingCapital}},
			[]domain.DailyReturn{{Day: 1, Return: 0}}
	}

	// Agrupar por fecha preservando el orden de primera aparición; el
	// capital del día es el cash del último trade de esa fecha.
	var days []string
	closing := make(map[string]float64)
	for _, t := range trades {
		day := t.Day()
		if _, seen := closing[day]; !seen {
			days = append(days, day)
		}
		closing[day] = t.CashRemaining
	}

	points := make([]domain.PerformanceDataPoint, 0, g.horizon)
	returns := make([]domain.DailyReturn, 0, g.horizon)

	prev := g.startingCapital
	for i, day := range days {
		capital := closing[day]
		if capital <= 0 {
			capital = prev // cash no informado: arrastra el día anterior
		}

		points = append(points, domain.PerformanceDataPoint{Day: i + 1, Capital: capital})

		// El día 1 es el baseline de la serie; su retorno es 0 por
		// definición y no entra en el promedio de extrapolación.
		ret := 0.0
		if i > 0 {
			ret = (capital - prev) / prev * 100
		}
		returns = append(returns, domain.DailyReturn{Day: i + 1, Return: round1(ret)})

		prev = capital
	}

	g.extrapolate(&points, &returns)
	return points, returns
}

// extrapolate extiende la serie hasta el horizonte repitiendo el retorno
// diario promedio, compuesto desde el último capital conocido. Es una
// política de suavizado placeholder, no un forecast.
func (g *SeriesGenerator) extrapolate(points *[]domain.PerformanceDataPoint, returns *[]domain.DailyReturn) {
	known := len(*points)
	if known >= g.horizon {
		return
	}

	avg := 0.0
	if known > 1 {
		sum := 0.0
		for _, r := range (*returns)[1:] {
			sum += r.Return
		}
		avg = sum / float64(known-1)
	}

	capital := (*points)[known-1].Capital
	for day := known + 1; day <= g.horizon; day++ {
		capital = math.Round(capital*(1+avg/100)*100) / 100
		*points = append(*points, domain.PerformanceDataPoint{Day: day, Capital: capital})
		*returns = append(*returns, domain.DailyReturn{Day: day, Return: round1(avg)})
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
