package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/mazid79/MemoraTodoApp/errors"
)

var _ Gateway = (*SQLiteGateway)(nil)

// SQLiteGateway stores the task blob in a one-row-per-key table. It
// gives the app durable local storage without an external service.
type SQLiteGateway struct {
	db  *sql.DB
	key string
}

// NewSQLiteGateway opens (and if needed creates) the database at the
// given path.
func NewSQLiteGateway(path, key string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	gw := &SQLiteGateway{db: db, key: key}
	if err := gw.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return gw, nil
}

func (g *SQLiteGateway) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := g.db.Exec(schema)
	return err
}

func (g *SQLiteGateway) Load(ctx context.Context) (string, bool, error) {
	var value string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, g.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewGatewayError("failed to load task blob", map[string]any{
			"error": err.Error(),
		})
	}

	return value, true, nil
}

func (g *SQLiteGateway) Save(ctx context.Context, blob string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		g.key, blob)
	if err != nil {
		return apperrors.NewGatewayError("failed to save task blob", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

// Close closes the database connection.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
