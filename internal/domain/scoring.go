package domain

import "math"

// Acciones recomendadas sobre un mercado binario.
const (
	ActionBuyYes = "BUY YES"
	ActionBuyNo  = "BUY NO"
)

// ScoreParams parametriza la heurística de confidence. Las constantes
// históricas no son verdades fijas: se exponen para poder ajustarlas
// desde config.
type ScoreParams struct {
	// LiquidityCap es el aporte máximo del factor de liquidez al confidence.
	LiquidityCap float64
	// LiquidityDivisor escala log10(liquidez) antes de aplicar el cap.
	LiquidityDivisor float64
	// MaxConfidence es el techo absoluto del confidence final.
	MaxConfidence float64
}

// DefaultScoreParams devuelve los parámetros históricos de la heurística.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{
		LiquidityCap:     0.2,
		LiquidityDivisor: 50,
		MaxConfidence:    0.99,
	}
}

// Liquidity resuelve el indicador de liquidez efectivo: volumen si hay,
// si no open interest, y 1 como piso para que log10 nunca sea negativo
// con mercados muertos.
func Liquidity(volume, openInterest float64) float64 {
	if volume > 0 {
		return volume
	}
	if openInterest > 0 {
		return openInterest
	}
	return 1
}

// Score calcula la acción recomendada y el confidence de un mercado binario.
//
//	liquidityFactor = min(cap, log10(liquidez) / divisor)
//	confidence      = min(maxConfidence, precioDelLadoCaro + liquidityFactor)
//
// El lado recomendado es el más caro: el mercado ya está pagando por esa
// resolución, y la liquidez sube la convicción de forma logarítmica.
func Score(yesPrice, noPrice, volume, openInterest float64, p ScoreParams) (action string, confidence float64) {
	liq := Liquidity(volume, openInterest)

	factor := math.Log10(liq) / p.LiquidityDivisor
	if factor > p.LiquidityCap {
		factor = p.LiquidityCap
	}

	base := noPrice
	action = ActionBuyNo
	if yesPrice > noPrice {
		base = yesPrice
		action = ActionBuyYes
	}

	confidence = base + factor
	if confidence > p.MaxConfidence {
		confidence = p.MaxConfidence
	}
	// Dos decimales, como reporta el resto del pipeline.
	confidence = math.Round(confidence*100) / 100

	return action, confidence
}
