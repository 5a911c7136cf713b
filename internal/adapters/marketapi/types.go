package marketapi

// DTOs raw de la API de eventos. Solo se usan dentro de este paquete;
// la conversión al schema interno se hace en mapping.go.

// eventsResponse es la respuesta de GET /events.
type eventsResponse struct {
	Events []apiEvent `json:"events"`
}

// apiEvent es un evento con sus mercados asociados.
type apiEvent struct {
	ID      string      `json:"id"`
	Ticker  string      `json:"ticker"`
	Title   string      `json:"title"`
	Markets []apiMarket `json:"markets"`
}

// apiMarket es un mercado binario dentro de un evento. Los indicadores de
// liquidez a nivel mercado son opcionales en el payload.
type apiMarket struct {
	ID           string        `json:"id"`
	Ticker       string        `json:"ticker"`
	Title        string        `json:"title"`
	Contracts    []apiContract `json:"contracts"`
	Volume24h    float64       `json:"volume24h"`
	OpenInterest float64       `json:"open_interest"`
}

// apiContract es uno de los lados del mercado. El sufijo del ticker
// (-YES / -NO) identifica el lado.
type apiContract struct {
	Ticker       string  `json:"ticker"`
	Price        float64 `json:"price"`
	Volume       float64 `json:"volume"`
	OpenInterest float64 `json:"open_interest"`
}
