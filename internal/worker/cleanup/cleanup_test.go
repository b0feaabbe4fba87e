package cleanup

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// mockExecutor はExecutorのモック実装。
type mockExecutor struct {
	execFn func(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (m *mockExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return m.execFn(ctx, query, args...)
}

// mockResult はsql.Resultのモック実装。
type mockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (m *mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m *mockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.rowsErr
}

func TestCleanupJob_Run_DeletesExpiredSessions(t *testing.T) {
	var gotQuery string
	executor := &mockExecutor{
		execFn: func(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
			gotQuery = query
			return &mockResult{rowsAffected: 5}, nil
		},
	}

	job := NewCleanupJob(executor, slog.Default())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.Contains(gotQuery, "DELETE FROM sessions") {
		t.Errorf("query should delete from sessions, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "expires_at < now()") {
		t.Errorf("query should filter by expiry, got %q", gotQuery)
	}
}

// 削除対象がなくてもエラーにならない（冪等）
func TestCleanupJob_Run_NoExpiredSessions(t *testing.T) {
	executor := &mockExecutor{
		execFn: func(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
			return &mockResult{rowsAffected: 0}, nil
		},
	}

	job := NewCleanupJob(executor, slog.Default())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestCleanupJob_Run_ExecError(t *testing.T) {
	executor := &mockExecutor{
		execFn: func(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
			return nil, errors.New("connection lost")
		},
	}

	job := NewCleanupJob(executor, slog.Default())

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCleanupJob_Run_RowsAffectedError(t *testing.T) {
	executor := &mockExecutor{
		execFn: func(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
			return &mockResult{rowsErr: errors.New("driver does not support RowsAffected")}, nil
		},
	}

	job := NewCleanupJob(executor, slog.Default())

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Startはctxキャンセルで停止する
func TestCleanupJob_Start_StopsOnContextCancel(t *testing.T) {
	runCount := 0
	executor := &mockExecutor{
		execFn: func(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
			runCount++
			return &mockResult{}, nil
		},
	}

	job := NewCleanupJob(executor, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not stop after context cancel")
	}

	// 起動直後の1回は実行される
	if runCount != 1 {
		t.Errorf("run count = %d, want 1", runCount)
	}
}
