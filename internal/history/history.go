// Package history 保存每次抛竿的定位结果和等待结果, 用于事后调整检测参数
package history

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"time"

	"fishing-tool/internal/geom"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// 抛竿结果, 前三个与等待器的结果一一对应
const (
	OutcomeAppeared = "appeared"
	OutcomeFaded    = "faded"
	OutcomeTimedOut = "timed_out"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error" // 截图失败, 本轮没有结果
)

//go:embed schema.sql
var schemaSQL string

type Cast struct {
	ID        string
	StartedAt time.Time
	Strategy  string
	Found     bool
	Position  geom.Point // Found为false时无意义
	Hits      int
	Weight    float64
	Outcome   string
	Duration  time.Duration
}

type Summary struct {
	Total      int
	Found      int
	Caught     int
	Faded      int
	TimedOut   int
	Errors     int
	MeanWeight float64 // 只统计找到浮漂的记录
}

// FoundRate 找到浮漂的比例
func (s Summary) FoundRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Found) / float64(s.Total)
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开记录数据库失败: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化记录数据库失败: %w", err)
	}

	log.Printf("[记录器] 已打开抛竿记录 %s\n", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record 写入一条记录, ID为空时自动生成
func (s *Store) Record(c *Cast) error {
	if c.Outcome == "" {
		return errors.New("抛竿结果不能为空")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	var x, y sql.NullFloat64
	if c.Found {
		x = sql.NullFloat64{Float64: c.Position.X, Valid: true}
		y = sql.NullFloat64{Float64: c.Position.Y, Valid: true}
	}

	query := `
		INSERT INTO casts (id, started_at, strategy, found, x, y, hits, weight, outcome, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, c.ID, c.StartedAt.UnixMilli(), c.Strategy, c.Found, x, y, c.Hits, c.Weight, c.Outcome, c.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("写入抛竿记录失败: %w", err)
	}
	return nil
}

// Recent 最近的limit条记录, 新的在前
func (s *Store) Recent(limit int) ([]Cast, error) {
	query := `
		SELECT id, started_at, strategy, found, x, y, hits, weight, outcome, duration_ms
		FROM casts
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("查询抛竿记录失败: %w", err)
	}
	defer rows.Close()

	var casts []Cast
	for rows.Next() {
		var (
			c          Cast
			startedAt  int64
			durationMs int64
			x, y       sql.NullFloat64
		)
		if err := rows.Scan(&c.ID, &startedAt, &c.Strategy, &c.Found, &x, &y, &c.Hits, &c.Weight, &c.Outcome, &durationMs); err != nil {
			return nil, fmt.Errorf("读取抛竿记录失败: %w", err)
		}
		c.StartedAt = time.UnixMilli(startedAt)
		c.Duration = time.Duration(durationMs) * time.Millisecond
		if x.Valid && y.Valid {
			c.Position = geom.Pt(x.Float64, y.Float64)
		}
		casts = append(casts, c)
	}
	return casts, rows.Err()
}

func (s *Store) Summary() (Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(found), 0),
			COALESCE(SUM(outcome = ?), 0),
			COALESCE(SUM(outcome = ?), 0),
			COALESCE(SUM(outcome = ?), 0),
			COALESCE(SUM(outcome = ?), 0),
			COALESCE(AVG(CASE WHEN found THEN weight END), 0)
		FROM casts
	`
	var sum Summary
	err := s.db.QueryRow(query, OutcomeAppeared, OutcomeFaded, OutcomeTimedOut, OutcomeError).
		Scan(&sum.Total, &sum.Found, &sum.Caught, &sum.Faded, &sum.TimedOut, &sum.Errors, &sum.MeanWeight)
	if err != nil {
		return Summary{}, fmt.Errorf("统计抛竿记录失败: %w", err)
	}
	return sum, nil
}
