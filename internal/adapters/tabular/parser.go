// Package tabular parsea el formato de ledger delimitado por comas y expone
// la fuente de fallback que lo carga desde disco.
//
// La política de coerción es deliberadamente permisiva: una fila corta o un
// número que no parsea degradan al default del campo en vez de abortar el
// batch completo. El único fallo duro es la ausencia de la fila de header.
package tabular

import (
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/ports"
)

const delimiter = ","

// Columnas con coerción especial. Cualquier otro header pasa verbatim
// al mapa Extra del trade como string.
const (
	colTimestamp = "timestamp"
	colSymbol    = "symbol"
	colAction    = "action"
	colPrice     = "price"
	colShares    = "shares"
	colPnL       = "pnl"
	colStrategy  = "strategy"
	colCash      = "cash_remaining" // se traduce a CashRemaining
)

// Parse convierte texto delimitado en una secuencia de trades ordenada
// ascendente por timestamp. La primera línea no vacía es el header; las
// líneas en blanco se saltan. Devuelve ports.ErrMissingHeader únicamente
// si el input está vacío tras recortar espacios.
func Parse(raw string) ([]domain.Trade, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ports.ErrMissingHeader
	}

	lines := strings.Split(trimmed, "\n")
	headers := splitRow(lines[0])

	trades := make([]domain.Trade, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		trades = append(trades, parseRow(headers, splitRow(line)))
	}

	domain.SortByTimestamp(trades)
	return trades, nil
}

// splitRow parte una línea por el delimitador y recorta espacios de cada campo.
func splitRow(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r"), delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseRow construye un Trade desde una fila. Las filas con menos valores que
// headers dejan los campos restantes en su default.
func parseRow(headers, values []string) domain.Trade {
	var t domain.Trade

	for i, header := range headers {
		value := ""
		if i < len(values) {
			value = values[i]
		}

		switch strings.ToLower(header) {
		case colTimestamp:
			t.Timestamp = parseTime(value)
		case colSymbol:
			t.Symbol = value
		case colAction:
			t.Action = value
		case colStrategy:
			t.Strategy = value
		case colPrice:
			t.Price = parseFloat(value)
		case colShares:
			t.Shares = parseFloat(value)
		case colPnL:
			t.PnL = parseFloat(value)
		case colCash:
			t.CashRemaining = parseFloat(value)
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]string)
			}
			t.Extra[header] = value
		}
	}

	return t
}

// parseTime parsea el timestamp del ledger; devuelve el zero time si no parsea.
func parseTime(s string) time.Time {
	t, err := time.Parse(domain.TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseFloat coerce un campo numérico, con 0 como default si está en blanco
// o no parsea.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
