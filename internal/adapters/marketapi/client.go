// Package marketapi es el adapter de la fuente primaria: la API remota de
// mercados de eventos binarios. El payload upstream (events → markets →
// contracts YES/NO) no garantiza mapear al schema interno — cualquier
// desviación se reporta como fallo para que el orquestador avance de etapa.
package marketapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/ports"
	"golang.org/x/time/rate"
)

const (
	eventsPath = "/events"

	// Límite de cortesía: la API demo tolera ráfagas cortas pero castiga
	// el polling agresivo en modo serve.
	requestsPerSec = 5
	burstSize      = 10
)

// Client es el HTTP client de la API de mercados, con auth bearer,
// rate limiting y budget de tiempo por request.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient crea un Client para el base URL dado. El timeout acota cada
// request individual; el contexto del caller puede cancelar antes.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{},
		baseURL: baseURL,
		token:   token,
		timeout: timeout,
		limiter: rate.NewLimiter(requestsPerSec, burstSize),
	}
}

// FetchEvents hace GET /events con el límite de resultados dado.
// Un solo intento por ciclo: sin retries ni backoff — el fallo es la señal
// que dispara la siguiente etapa de la cadena.
func (c *Client) FetchEvents(ctx context.Context, limit int) ([]apiEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("marketapi.FetchEvents: rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s%s?limit=%d", c.baseURL, eventsPath, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("marketapi.FetchEvents: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("marketapi.FetchEvents: no response within %s: %w", c.timeout, ports.ErrNetworkTimeout)
		}
		return nil, fmt.Errorf("marketapi.FetchEvents: %v: %w", err, ports.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("marketapi.FetchEvents: status %d: %w", resp.StatusCode, ports.ErrNetwork)
	}

	var payload eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// Body que no decodifica = shape inutilizable, no fallo de red.
		return nil, fmt.Errorf("marketapi.FetchEvents: decode: %v: %w", err, ports.ErrEmptyResult)
	}
	if len(payload.Events) == 0 {
		return nil, fmt.Errorf("marketapi.FetchEvents: zero events: %w", ports.ErrEmptyResult)
	}

	return payload.Events, nil
}
