package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const (
	defaultMaxTrades = 10
	defaultMaxOpps   = 8
	chartWidth       = 40
)

// Console implementa ports.Notifier imprimiendo tablas y un chart de texto.
// Es el consumidor de datos que reemplaza al dashboard: lee el Result y lo
// presenta, sin participar en la adquisición ni el análisis.
type Console struct {
	out       io.Writer
	maxTrades int
	maxOpps   int
	full      bool
}

// NewConsole crea un notificador que escribe a stdout. full imprime todas
// las filas en vez del recorte compacto.
func NewConsole(full bool) *Console {
	return &Console{out: os.Stdout, maxTrades: defaultMaxTrades, maxOpps: defaultMaxOpps, full: full}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w, maxTrades: defaultMaxTrades, maxOpps: defaultMaxOpps}
}

// Notify imprime el resultado completo de un ciclo.
func (c *Console) Notify(_ context.Context, result *domain.Result) error {
	fmt.Fprintf(c.out, "\n[%s] acquisition cycle — source=%s trades=%d opportunities=%d\n",
		time.Now().Format("15:04:05"),
		result.SourceUsed, len(result.Trades), len(result.Opportunities))

	c.printSummary(result.PortfolioSummary)
	c.printTrades(result.Trades)
	c.printOpportunities(result.Opportunities)
	c.printCapitalChart(result.PerformanceData, result.DailyReturns)

	return nil
}

// printSummary imprime el bloque de métricas del portfolio.
func (c *Console) printSummary(s domain.PortfolioSummary) {
	fmt.Fprintf(c.out, "  Capital: $%.2f | P&L: $%.2f | Trades: %d | Win rate: %d%%\n",
		s.Capital, s.TotalPnL, s.TotalTrades, s.WinRate)
	fmt.Fprintf(c.out, "  Positions: %d open / %d closed\n",
		s.OpenPositions, s.ClosedPositions)
}

// printTrades imprime los trades más recientes en tabla.
func (c *Console) printTrades(trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "  no trades")
		return
	}

	recent := trades
	if !c.full && len(recent) > c.maxTrades {
		recent = recent[len(recent)-c.maxTrades:]
	}

	fmt.Fprintf(c.out, "\n  Recent trades (%d of %d):\n", len(recent), len(trades))

	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Symbol", "Action", "Price", "Shares", "PnL", "Strategy", "Cash")
	for _, t := range recent {
		table.Append(
			t.Timestamp.Format(domain.TimeLayout),
			t.Symbol,
			t.Action,
			fmt.Sprintf("$%.2f", t.Price),
			fmt.Sprintf("%.4f", t.Shares),
			fmt.Sprintf("$%.2f", t.PnL),
			t.Strategy,
			fmt.Sprintf("$%.2f", t.CashRemaining),
		)
	}
	table.Render()
}

// printOpportunities imprime las oportunidades top por confidence.
func (c *Console) printOpportunities(opps []domain.MarketOpportunity) {
	if len(opps) == 0 {
		return
	}

	top := opps
	if !c.full && len(top) > c.maxOpps {
		top = top[:c.maxOpps]
	}

	fmt.Fprintf(c.out, "\n  Top opportunities (%d of %d):\n", len(top), len(opps))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Yes", "No", "Volume", "OI", "Action", "Conf")
	for i, o := range top {
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(o.MarketTitle, 32),
			fmt.Sprintf("%.2f", o.YesPrice),
			fmt.Sprintf("%.2f", o.NoPrice),
			fmt.Sprintf("%.0f", o.Volume),
			fmt.Sprintf("%.0f", o.OpenInterest),
			o.Action,
			fmt.Sprintf("%.2f", o.Confidence),
		)
	}
	table.Render()
}

// printCapitalChart dibuja la serie de capital como barras de texto,
// con el retorno diario al lado de cada barra.
func (c *Console) printCapitalChart(points []domain.PerformanceDataPoint, returns []domain.DailyReturn) {
	if len(points) == 0 {
		return
	}

	max := 0.0
	for _, p := range points {
		if p.Capital > max {
			max = p.Capital
		}
	}
	if max <= 0 {
		return
	}

	fmt.Fprintln(c.out, "\n  Capital by day:")
	for i, p := range points {
		bar := strings.Repeat("█", int(p.Capital/max*chartWidth))
		ret := ""
		if i < len(returns) {
			ret = fmt.Sprintf(" (%+.1f%%)", returns[i].Return)
		}
		fmt.Fprintf(c.out, "  Day %-3d %s $%.2f%s\n", p.Day, bar, p.Capital, ret)
	}
}

// truncate recorta s a maxLen runas con elipsis. Corta por runas, no por
// bytes: los títulos de mercado pueden traer caracteres multi-byte.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
