package storage

// sqlite.go — histórico de ciclos de adquisición.
//
// Una fila por ciclo con el resumen derivado (fuente, conteos, capital).
// Los trades crudos no se persisten: el record set vive en memoria durante
// un ciclo y el derivado es lo único con valor como histórico. Prune
// automático al arrancar para que el archivo no crezca sin límite.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/tradeledger/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
    id               TEXT PRIMARY KEY,
    acquired_at      DATETIME NOT NULL,
    source           TEXT     NOT NULL,
    opportunities    INTEGER  NOT NULL DEFAULT 0,
    total_trades     INTEGER  NOT NULL DEFAULT 0,
    total_pnl        REAL     NOT NULL DEFAULT 0,
    win_rate         INTEGER  NOT NULL DEFAULT 0,
    capital          REAL     NOT NULL DEFAULT 0,
    open_positions   INTEGER  NOT NULL DEFAULT 0,
    closed_positions INTEGER  NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_cycles_at     ON cycles(acquired_at DESC);
CREATE INDEX IF NOT EXISTS idx_cycles_source ON cycles(source);
`

// retention acota el histórico de ciclos.
const retention = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia ciclos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveCycle persiste el registro de un ciclo.
func (s *SQLiteStorage) SaveCycle(ctx context.Context, rec domain.CycleRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cycles (
			id, acquired_at, source, opportunities,
			total_trades, total_pnl, win_rate, capital,
			open_positions, closed_positions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.AcquiredAt.UTC(),
		string(rec.Source),
		rec.Opportunities,
		rec.Summary.TotalTrades,
		rec.Summary.TotalPnL,
		rec.Summary.WinRate,
		rec.Summary.Capital,
		rec.Summary.OpenPositions,
		rec.Summary.ClosedPositions,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveCycle: %w", err)
	}
	return nil
}

// GetHistory devuelve los ciclos del rango dado, más recientes primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.CycleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, acquired_at, source, opportunities,
		       total_trades, total_pnl, win_rate, capital,
		       open_positions, closed_positions
		FROM cycles
		WHERE acquired_at >= ? AND acquired_at <= ?
		ORDER BY acquired_at DESC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: %w", err)
	}
	defer rows.Close()

	var records []domain.CycleRecord
	for rows.Next() {
		var rec domain.CycleRecord
		var source string
		if err := rows.Scan(
			&rec.ID, &rec.AcquiredAt, &source, &rec.Opportunities,
			&rec.Summary.TotalTrades, &rec.Summary.TotalPnL,
			&rec.Summary.WinRate, &rec.Summary.Capital,
			&rec.Summary.OpenPositions, &rec.Summary.ClosedPositions,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan: %w", err)
		}
		rec.Source = domain.Source(source)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetHistory: rows: %w", err)
	}

	return records, nil
}

// Close cierra la conexión.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld borra ciclos fuera de la ventana de retención.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	res, err := s.db.ExecContext(ctx, `DELETE FROM cycles WHERE acquired_at < ?`, cutoff)
	if err != nil {
		slog.Warn("storage: prune failed", "err", err)
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Debug("storage: pruned old cycles", "rows", n)
	}
}
