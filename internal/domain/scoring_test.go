package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiquidity_PrefersVolume(t *testing.T) {
	assert.Equal(t, 5000.0, Liquidity(5000, 800))
}

func TestLiquidity_FallsBackToOpenInterest(t *testing.T) {
	assert.Equal(t, 800.0, Liquidity(0, 800))
}

func TestLiquidity_DeadMarketFloor(t *testing.T) {
	// Piso en 1 para que log10 nunca sea negativo.
	assert.Equal(t, 1.0, Liquidity(0, 0))
}

func TestScore_RicherSideWins(t *testing.T) {
	action, _ := Score(0.70, 0.30, 10000, 0, DefaultScoreParams())
	assert.Equal(t, ActionBuyYes, action)

	action, _ = Score(0.30, 0.70, 10000, 0, DefaultScoreParams())
	assert.Equal(t, ActionBuyNo, action)
}

func TestScore_ConfidenceFormula(t *testing.T) {
	// liq=10000 → log10=4, factor=4/50=0.08, conf=0.70+0.08=0.78
	_, conf := Score(0.70, 0.30, 10000, 0, DefaultScoreParams())
	assert.InDelta(t, 0.78, conf, 0.001)
}

func TestScore_LiquidityFactorCapped(t *testing.T) {
	// log10(1e15)/50 = 0.3 > cap 0.2 → conf=0.50+0.20=0.70
	_, conf := Score(0.50, 0.50, 1e15, 0, DefaultScoreParams())
	assert.InDelta(t, 0.70, conf, 0.001)
}

func TestScore_ConfidenceCeiling(t *testing.T) {
	_, conf := Score(0.95, 0.05, 1e10, 0, DefaultScoreParams())
	assert.InDelta(t, 0.99, conf, 0.001)
}

func TestScore_RoundedToTwoDecimals(t *testing.T) {
	// liq=1000 → factor=3/50=0.06, conf=0.667+0.06=0.727 → 0.73
	_, conf := Score(0.333, 0.667, 1000, 0, DefaultScoreParams())
	assert.InDelta(t, 0.73, conf, 1e-9)
}

func TestScore_CustomParams(t *testing.T) {
	params := ScoreParams{LiquidityCap: 0.1, LiquidityDivisor: 25, MaxConfidence: 0.8}
	// log10(100)/25 = 0.08 < cap → conf=min(0.8, 0.75+0.08)=0.8
	_, conf := Score(0.75, 0.25, 100, 0, params)
	assert.InDelta(t, 0.8, conf, 0.001)
}

func TestClampPrice_Bounds(t *testing.T) {
	assert.Equal(t, 0.01, ClampPrice(-0.5))
	assert.Equal(t, 0.01, ClampPrice(0.0))
	assert.Equal(t, 0.99, ClampPrice(1.2))
	assert.Equal(t, 0.55, ClampPrice(0.55))
}

func TestRoundTripPnL(t *testing.T) {
	assert.InDelta(t, 4.0, RoundTripPnL(0.50, 0.60, 40), 0.001)
	assert.InDelta(t, -2.0, RoundTripPnL(0.50, 0.45, 40), 0.001)
}
