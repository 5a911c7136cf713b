// Package synthetic es la fuente de emergencia: datos con forma determinista
// y contenido aleatorio, garantizada a no fallar nunca. Solo se usa cuando
// las dos fuentes reales fallaron, y para derivar histórico demo a partir de
// oportunidades del mercado real.
package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// Parámetros de forma del generador.
const (
	minMarketsPerEvent = 1
	maxMarketsPerEvent = 3
	minVolume          = 1000
	maxVolume          = 50000
	minOpenInterest    = 500
	maxOpenInterest    = 10000

	// Sizing de los trades simulados.
	maxPositionPct  = 0.3 // máx fracción del cash por trade
	maxRiskPerTrade = 50.0
)

var strategies = []string{"sentiment", "breakout", "mean_reversion"}

// Config controla el tamaño del set sintético.
type Config struct {
	Events          int     // eventos mock a generar
	Days            int     // días de histórico simulado
	TradesPerDay    int     // round-trips promedio por día
	StartingCapital float64 // cash inicial de la simulación
	ScoreParams     domain.ScoreParams
}

// Generator implementa ports.TradeSource. La fuente de aleatoriedad se
// inyecta para que los tests puedan fijar la semilla. El mutex serializa
// el acceso al rng: en modo serve cada request corre un ciclo y el mismo
// Generator sirve tanto la derivación de trades de la primaria como la
// etapa sintética, y *rand.Rand no tolera uso concurrente.
type Generator struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New crea un Generator. Con rng nil usa una semilla derivada del reloj.
func New(cfg Config, rng *rand.Rand) *Generator {
	if cfg.Events <= 0 {
		cfg.Events = 20
	}
	if cfg.Days <= 0 {
		cfg.Days = 14
	}
	if cfg.TradesPerDay <= 0 {
		cfg.TradesPerDay = 3
	}
	if cfg.StartingCapital <= 0 {
		cfg.StartingCapital = 100
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Name implementa ports.TradeSource.
func (g *Generator) Name() domain.Source {
	return domain.SourceSynthetic
}

// Fetch implementa ports.TradeSource. Por contrato nunca devuelve error:
// es la etapa terminal de la cadena de fallback.
func (g *Generator) Fetch(_ context.Context) ([]domain.Trade, []domain.MarketOpportunity, error) {
	opps := g.Opportunities()
	trades := g.TradesFromOpportunities(opps)
	return trades, opps, nil
}

// Opportunities genera oportunidades mock con la misma forma que las que
// produce el adapter primario: mercados binarios YES/NO con precios
// complementarios y liquidez plausible.
func (g *Generator) Opportunities() []domain.MarketOpportunity {
	g.mu.Lock()
	defer g.mu.Unlock()

	var opps []domain.MarketOpportunity

	for i := 0; i < g.cfg.Events; i++ {
		eventTicker := fmt.Sprintf("EVT-%d", 1000+g.rng.Intn(9000))
		markets := minMarketsPerEvent + g.rng.Intn(maxMarketsPerEvent-minMarketsPerEvent+1)

		for j := 0; j < markets; j++ {
			yes := round2(0.1 + g.rng.Float64()*0.8)
			no := round2(1 - yes)
			volume := float64(minVolume + g.rng.Intn(maxVolume-minVolume))
			openInterest := float64(minOpenInterest + g.rng.Intn(maxOpenInterest-minOpenInterest))

			action, confidence := domain.Score(yes, no, volume, openInterest, g.cfg.ScoreParams)

			opps = append(opps, domain.MarketOpportunity{
				MarketTicker: fmt.Sprintf("%s-MKT%d", eventTicker, j),
				MarketTitle:  fmt.Sprintf("Synthetic market %d of %s", j+1, eventTicker),
				YesPrice:     yes,
				NoPrice:      no,
				Volume:       volume,
				OpenInterest: openInterest,
				Action:       action,
				Confidence:   confidence,
			})
		}
	}

	domain.SortByConfidence(opps)
	return opps
}

// TradesFromOpportunities simula un histórico de round-trips sobre las
// oportunidades dadas: cada día abre y cierra posiciones, con el resultado
// sesgado por el confidence. Mantiene el running cash en cada trade.
// Devuelve la secuencia ordenada ascendente por timestamp.
func (g *Generator) TradesFromOpportunities(opps []domain.MarketOpportunity) []domain.Trade {
	if len(opps) == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Ancla el histórico terminando hoy, para que la serie de performance
	// tenga días contiguos.
	anchor := time.Now().UTC().AddDate(0, 0, -(g.cfg.Days - 1))
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	cash := g.cfg.StartingCapital
	var trades []domain.Trade

	for day := 0; day < g.cfg.Days; day++ {
		date := anchor.AddDate(0, 0, day)
		n := 1 + g.rng.Intn(g.cfg.TradesPerDay*2) // 1..2*tpd round-trips

		for k := 0; k < n; k++ {
			opp := opps[(day*g.cfg.TradesPerDay+k)%len(opps)]
			entry := domain.ClampPrice(opp.EntryPrice())

			budget := math.Min(cash*maxPositionPct, maxRiskPerTrade) * opp.Confidence
			shares := math.Floor(budget / entry)
			if shares < 1 {
				continue
			}

			side := "YES"
			if !opp.IsYesSide() {
				side = "NO"
			}
			symbol := opp.MarketTicker + "-" + side
			strategy := strategies[g.rng.Intn(len(strategies))]

			openAt := date.Add(9*time.Hour + 30*time.Minute +
				time.Duration(k)*37*time.Minute +
				time.Duration(g.rng.Intn(20))*time.Minute)

			cash -= entry * shares
			trades = append(trades, domain.Trade{
				Timestamp:     openAt,
				Symbol:        symbol,
				Action:        "BUY " + side,
				Price:         entry,
				Shares:        shares,
				Strategy:      strategy,
				CashRemaining: round2(cash),
			})

			// Movimiento del mercado: base aleatoria más el boost
			// de convicción.
			performance := (g.rng.Float64()*0.8 - 0.3) + (opp.Confidence-0.5)*2
			exit := domain.ClampPrice(round2(entry * (1 + performance)))

			cash += exit * shares
			trades = append(trades, domain.Trade{
				Timestamp:     openAt.Add(1*time.Hour + time.Duration(g.rng.Intn(180))*time.Minute),
				Symbol:        symbol,
				Action:        "SELL " + side,
				Price:         exit,
				Shares:        shares,
				PnL:           round2(domain.RoundTripPnL(entry, exit, shares)),
				Strategy:      strategy,
				CashRemaining: round2(cash),
			})
		}
	}

	domain.SortByTimestamp(trades)
	return trades
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
