package storage

// sqlite.go: caché local de series de precios.
//
// Estrategia:
//   - `price_series`: una fila por query (symbol:currency:days:interval) con el momento del fetch.
//   - `price_points`: los pares (ts, price) de cada serie. Se reemplazan completos en cada SavePrices.
//   - La API pública de CoinGecko limita a ~30 req/min; repetir un barrido sobre la misma
//     serie no debe volver a pegarle a la red.
//   - Prune automático al arrancar: series con más de 30 días sin refrescar.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS price_series (
    key        TEXT    PRIMARY KEY,
    fetched_at INTEGER NOT NULL, -- unix seconds
    points     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS price_points (
    series_key TEXT    NOT NULL,
    ts         INTEGER NOT NULL,
    price      REAL    NOT NULL,
    PRIMARY KEY (series_key, ts)
);

CREATE INDEX IF NOT EXISTS idx_series_fetched ON price_series(fetched_at DESC);
`

const retentionSeries = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.PriceCache usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia series antiguas.
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

	s := &SQLiteStorage{db: db, now: time.Now}
	s.pruneOld(context.Background())
	return s, nil
}

// LoadPrices devuelve la serie guardada bajo key si su fetch no es más viejo que maxAge.
// maxAge <= 0 desactiva el vencimiento.
func (s *SQLiteStorage) LoadPrices(ctx context.Context, key string, maxAge time.Duration) ([]domain.PricePoint, bool, error) {
	var fetchedAt int64
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, points FROM price_series WHERE key = ?`, key,
	).Scan(&fetchedAt, &count)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage.LoadPrices: query series: %w", err)
	}

	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, price FROM price_points WHERE series_key = ? ORDER BY ts ASC`, key,
	)
	if err != nil {
		return nil, false, fmt.Errorf("storage.LoadPrices: query points: %w", err)
	}
	defer rows.Close()

	points := make([]domain.PricePoint, 0, count)
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.Timestamp, &p.Price); err != nil {
			return nil, false, fmt.Errorf("storage.LoadPrices: scan row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("storage.LoadPrices: rows: %w", err)
	}
	if len(points) == 0 {
		return nil, false, nil
	}
	return points, true, nil
}

// SavePrices reemplaza la serie guardada bajo key en una sola transacción.
func (s *SQLiteStorage) SavePrices(ctx context.Context, key string, points []domain.PricePoint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SavePrices: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_points WHERE series_key = ?`, key); err != nil {
		return fmt.Errorf("storage.SavePrices: clear points: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_points (series_key, ts, price) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage.SavePrices: prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, key, p.Timestamp, p.Price); err != nil {
			return fmt.Errorf("storage.SavePrices: insert %s@%d: %w", key, p.Timestamp, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO price_series (key, fetched_at, points) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			points     = excluded.points
	`, key, s.now().Unix(), len(points)); err != nil {
		return fmt.Errorf("storage.SavePrices: upsert series: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SavePrices: commit: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina series que no se refrescaron en retentionSeries.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := s.now().Add(-retentionSeries).Unix()
	s.db.ExecContext(ctx,
		`DELETE FROM price_points WHERE series_key IN (SELECT key FROM price_series WHERE fetched_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM price_series WHERE fetched_at < ?`, cutoff)
}
