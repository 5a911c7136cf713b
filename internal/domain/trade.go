package domain

import (
	"sort"
	"strings"
	"time"
)

// Formatos de timestamp del ledger. Todas las fuentes normalizan a estos.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DayLayout  = "2006-01-02"
)

// Trade representa un evento ejecutado del ledger: compra, venta o settlement.
// Es el registro normalizado que producen las tres fuentes de adquisición.
type Trade struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Action    string    `json:"action"` // el prefijo BUY/SELL determina el netting
	Price     float64   `json:"price"`
	Shares    float64   `json:"shares"` // puede ser fraccional
	PnL       float64   `json:"pnl"`    // realizado; 0 en trades de apertura
	Strategy  string    `json:"strategy"`
	// CashRemaining es el balance de cash inmediatamente después del trade.
	// Cero significa "no informado" — las fuentes reales siempre lo reportan.
	CashRemaining float64 `json:"cashRemaining"`
	// Extra conserva columnas desconocidas del formato tabular, tal cual.
	Extra map[string]string `json:"extra,omitempty"`
}

// IsBuy devuelve true si la acción abre o aumenta exposición (prefijo BUY).
func (t Trade) IsBuy() bool {
	return strings.HasPrefix(t.Action, "BUY")
}

// IsSell devuelve true si la acción reduce exposición (prefijo SELL).
func (t Trade) IsSell() bool {
	return strings.HasPrefix(t.Action, "SELL")
}

// Day devuelve la fecha del trade (porción YYYY-MM-DD del timestamp).
func (t Trade) Day() string {
	return t.Timestamp.Format(DayLayout)
}

// SortByTimestamp ordena los trades ascendente por timestamp, in place.
// El orden es estable: trades del mismo instante conservan su orden de llegada.
func SortByTimestamp(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
}

// RoundTripPnL calcula el P&L realizado de cerrar shares a exit habiendo
// entrado a entry. Compartido por el generador sintético y la derivación
// de trades demo del adapter primario.
func RoundTripPnL(entry, exit, shares float64) float64 {
	return (exit - entry) * shares
}

// ClampPrice limita un precio de contrato binario al rango válido (0.01, 0.99).
func ClampPrice(p float64) float64 {
	if p < 0.01 {
		return 0.01
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}
