package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spec-kit/contact-service/internal/config"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

// SQLite provides a single-connection writer and a small reader pool over
// the same database file. One writer avoids "database is locked" errors.
type SQLite struct {
	Writer *sql.DB
	Reader *sql.DB
}

// NewSQLite opens the configured database file in WAL mode.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&%s", cfg.Path, sqlitePragmas)
	db, err := OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}
	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return db, nil
}

// MemorySQLiteDSN returns a DSN for a named, shared in-memory database.
// Connections using the same name see the same data.
func MemorySQLiteDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", url.PathEscape(name), sqlitePragmas)
}

// OpenSQLite opens writer and reader handles for dsn.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)
	if err := writer.PingContext(ctx); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)
	if err := reader.PingContext(ctx); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &SQLite{Writer: writer, Reader: reader}, nil
}

// Ping verifies both handles are usable.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.Writer.PingContext(ctx); err != nil {
		return fmt.Errorf("ping writer: %w", err)
	}
	if err := s.Reader.PingContext(ctx); err != nil {
		return fmt.Errorf("ping reader: %w", err)
	}
	return nil
}

// Close closes both handles and returns the first error encountered.
func (s *SQLite) Close() error {
	var firstErr error
	if err := s.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}
	if err := s.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}
	return firstErr
}
