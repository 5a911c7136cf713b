package acquisition_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alejandrodnm/tradeledger/internal/acquisition"
	"github.com/alejandrodnm/tradeledger/internal/adapters/synthetic"
	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource es una etapa programable de la cadena, con contador de llamadas.
type fakeSource struct {
	name   domain.Source
	trades []domain.Trade
	err    error
	calls  int
}

func (f *fakeSource) Name() domain.Source { return f.name }

func (f *fakeSource) Fetch(_ context.Context) ([]domain.Trade, []domain.MarketOpportunity, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.trades, nil, nil
}

func someTrades(n int) []domain.Trade {
	trades := make([]domain.Trade, n)
	for i := range trades {
		trades[i] = domain.Trade{Symbol: fmt.Sprintf("S%d", i), Action: "BUY", Shares: 1}
	}
	return trades
}

func testGenerator() *synthetic.Generator {
	return synthetic.New(synthetic.Config{Events: 5, Days: 3, TradesPerDay: 2}, rand.New(rand.NewSource(7)))
}

func TestAcquire_PrimaryWins(t *testing.T) {
	primary := &fakeSource{name: domain.SourcePrimary, trades: someTrades(3)}
	fallback := &fakeSource{name: domain.SourceFallback, trades: someTrades(1)}

	orch := acquisition.New([]ports.TradeSource{primary, fallback}, testGenerator())
	trades, _, source := orch.Acquire(context.Background())

	assert.Equal(t, domain.SourcePrimary, source)
	assert.Len(t, trades, 3)
	assert.Equal(t, 0, fallback.calls, "el fallback no debe tocarse si la primaria responde")
}

func TestAcquire_FailureAdvancesToNextStage(t *testing.T) {
	primary := &fakeSource{name: domain.SourcePrimary, err: fmt.Errorf("boom: %w", ports.ErrNetworkTimeout)}
	fallback := &fakeSource{name: domain.SourceFallback, trades: someTrades(2)}

	orch := acquisition.New([]ports.TradeSource{primary, fallback}, testGenerator())
	trades, _, source := orch.Acquire(context.Background())

	assert.Equal(t, domain.SourceFallback, source)
	assert.Len(t, trades, 2)
	assert.Equal(t, 1, primary.calls, "una sola llamada por ciclo, sin retries")
}

func TestAcquire_EmptySuccessCountsAsFailure(t *testing.T) {
	primary := &fakeSource{name: domain.SourcePrimary, trades: nil}
	fallback := &fakeSource{name: domain.SourceFallback, trades: someTrades(1)}

	orch := acquisition.New([]ports.TradeSource{primary, fallback}, testGenerator())
	_, _, source := orch.Acquire(context.Background())

	assert.Equal(t, domain.SourceFallback, source)
}

func TestAcquire_AllStagesFailFallsToSynthetic(t *testing.T) {
	primary := &fakeSource{name: domain.SourcePrimary, err: ports.ErrNetwork}
	fallback := &fakeSource{name: domain.SourceFallback, err: ports.ErrEmptyResult}

	orch := acquisition.New([]ports.TradeSource{primary, fallback}, testGenerator())
	trades, opps, source := orch.Acquire(context.Background())

	assert.Equal(t, domain.SourceSynthetic, source)
	require.NotEmpty(t, trades)
	require.NotEmpty(t, opps)
}

func TestAcquire_SyntheticAsFinalListedStage(t *testing.T) {
	gen := testGenerator()
	primary := &fakeSource{name: domain.SourcePrimary, err: errors.New("down")}
	fallback := &fakeSource{name: domain.SourceFallback, err: errors.New("missing")}

	orch := acquisition.New([]ports.TradeSource{primary, fallback, gen}, gen)
	trades, _, source := orch.Acquire(context.Background())

	assert.Equal(t, domain.SourceSynthetic, source)
	assert.NotEmpty(t, trades)
}

func TestAcquire_StrictPriorityOrder(t *testing.T) {
	first := &fakeSource{name: domain.SourcePrimary, err: errors.New("a")}
	second := &fakeSource{name: domain.SourceFallback, err: errors.New("b")}
	third := &fakeSource{name: domain.SourceSynthetic, trades: someTrades(1)}

	orch := acquisition.New([]ports.TradeSource{first, second, third}, testGenerator())
	orch.Acquire(context.Background())

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}
