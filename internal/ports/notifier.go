package ports

import (
	"context"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// Notifier presenta el resultado de un ciclo al usuario.
type Notifier interface {
	// Notify muestra el resumen del portfolio, los trades recientes y las
	// oportunidades. En la implementación de consola, imprime tablas.
	Notify(ctx context.Context, result *domain.Result) error
}
