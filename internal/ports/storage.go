package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/domain"
)

// Storage persiste el resumen de cada ciclo de adquisición.
type Storage interface {
	// SaveCycle persiste el registro derivado de un ciclo.
	SaveCycle(ctx context.Context, rec domain.CycleRecord) error

	// GetHistory devuelve los ciclos registrados en el rango de tiempo dado,
	// más recientes primero.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.CycleRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
