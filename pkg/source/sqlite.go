package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/easyops/telepager-go/pkg/core/record"
)

// ScanFunc 把一行查询结果转换为一条记录
type ScanFunc[T any] func(rows *sql.Rows) (record.Record[T], error)

// SQLiteSource 流式读取 SQLite 查询结果的源
//
// 持有一个打开的游标，逐行扫描为记录。游标天然是单消费者的，
// 行耗尽后自动关闭并在之后一直返回 ErrExhausted。
type SQLiteSource[T any] struct {
	rows *sql.Rows
	scan ScanFunc[T]
	done bool
	g    guard
}

// OpenSQLite 打开 SQLite 数据库并验证连接
func OpenSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewSQLite 对数据库执行查询并创建流式源
//
// scan 为空时使用 ScanRow：按 (text, quality, meta) 三列扫描。
func NewSQLite[T any](ctx context.Context, db *sql.DB, query string, scan ScanFunc[T], args ...any) (*SQLiteSource[T], error) {
	if scan == nil {
		scan = ScanRow[T]
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	return &SQLiteSource[T]{rows: rows, scan: scan}, nil
}

// ScanRow 默认行扫描：期望 (text, quality, meta) 三列
func ScanRow[T any](rows *sql.Rows) (record.Record[T], error) {
	var rec record.Record[T]
	if err := rows.Scan(&rec.Text, &rec.Quality, &rec.Meta); err != nil {
		return rec, fmt.Errorf("failed to scan record: %w", err)
	}
	return rec, nil
}

// Next 返回下一行对应的记录
func (s *SQLiteSource[T]) Next(ctx context.Context) (record.Record[T], error) {
	var zero record.Record[T]
	if !s.g.enter() {
		return zero, ErrBusy
	}
	defer s.g.leave()

	if s.done {
		return zero, ErrExhausted
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if !s.rows.Next() {
		s.done = true
		if err := s.rows.Err(); err != nil {
			return zero, err
		}
		_ = s.rows.Close()
		return zero, ErrExhausted
	}

	return s.scan(s.rows)
}

// Close 关闭底层游标
func (s *SQLiteSource[T]) Close() error {
	s.done = true
	return s.rows.Close()
}

// compile-time interface check
var _ Source[int] = (*SQLiteSource[int])(nil)
