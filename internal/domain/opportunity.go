package domain

import "sort"

// MarketOpportunity es una señal accionable derivada de un mercado binario.
// No es un Trade: es un candidato que la capa de presentación muestra tal cual.
type MarketOpportunity struct {
	MarketTicker string  `json:"marketTicker"`
	MarketTitle  string  `json:"marketTitle"`
	YesPrice     float64 `json:"yesPrice"`
	NoPrice      float64 `json:"noPrice"`
	Volume       float64 `json:"volume"`
	OpenInterest float64 `json:"openInterest"`
	Action       string  `json:"action"`     // "BUY YES" | "BUY NO"
	Confidence   float64 `json:"confidence"` // [0, 1]
}

// IsYesSide devuelve true si la acción recomendada es comprar el lado YES.
func (o MarketOpportunity) IsYesSide() bool {
	return o.Action == ActionBuyYes
}

// EntryPrice devuelve el precio del lado recomendado.
func (o MarketOpportunity) EntryPrice() float64 {
	if o.IsYesSide() {
		return o.YesPrice
	}
	return o.NoPrice
}

// PriceSpread devuelve la distancia absoluta entre ambos lados del mercado.
func (o MarketOpportunity) PriceSpread() float64 {
	s := o.YesPrice - o.NoPrice
	if s < 0 {
		return -s
	}
	return s
}

// SortByConfidence ordena las oportunidades por confidence descendente, in place.
func SortByConfidence(opps []MarketOpportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Confidence > opps[j].Confidence
	})
}
