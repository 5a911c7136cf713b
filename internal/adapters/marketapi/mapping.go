package marketapi

import (
	"strings"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

const (
	yesSuffix = "-YES"
	noSuffix  = "-NO"
)

// mapOpportunities transforma los eventos raw en oportunidades del schema
// interno. Los mercados sin par YES/NO completo se saltan — es la señal de
// que el payload no mapea de forma confiable. El resultado viene ordenado
// por confidence descendente.
func mapOpportunities(events []apiEvent, params domain.ScoreParams) []domain.MarketOpportunity {
	var opps []domain.MarketOpportunity

	for _, ev := range events {
		for _, m := range ev.Markets {
			yes, no, ok := findContracts(m)
			if !ok {
				continue
			}

			volume := m.Volume24h
			if volume == 0 {
				volume = yes.Volume + no.Volume
			}
			openInterest := m.OpenInterest
			if openInterest == 0 {
				openInterest = yes.OpenInterest + no.OpenInterest
			}

			action, confidence := domain.Score(yes.Price, no.Price, volume, openInterest, params)

			opps = append(opps, domain.MarketOpportunity{
				MarketTicker: m.Ticker,
				MarketTitle:  m.Title,
				YesPrice:     yes.Price,
				NoPrice:      no.Price,
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

// findContracts localiza los contratos YES y NO de un mercado por sufijo
// de ticker. ok es false si falta cualquiera de los dos lados.
func findContracts(m apiMarket) (yes, no apiContract, ok bool) {
	var hasYes, hasNo bool
	for _, c := range m.Contracts {
		switch {
		case strings.HasSuffix(c.Ticker, yesSuffix):
			yes, hasYes = c, true
		case strings.HasSuffix(c.Ticker, noSuffix):
			no, hasNo = c, true
		}
	}
	return yes, no, hasYes && hasNo
}
