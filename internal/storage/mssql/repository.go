package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"ekantipur-scraper/internal/observability"
	"ekantipur-scraper/internal/scraper"
	"ekantipur-scraper/internal/storage"
)

const (
	insertRunQuery = `
		INSERT INTO TblScrapeRuns ([StartedAt], [FinishedAt], [OutputPath], [CheckSum], [ArticleCount])
		OUTPUT INSERTED.[UID]
		VALUES (@StartedAt, @FinishedAt, @OutputPath, @CheckSum, @ArticleCount);
	`
	insertArticleQuery = `
		INSERT INTO TblEntertainmentNews ([Run_UID], [SequenceNum], [Title], [ImageURL], [Category], [Author])
		VALUES (@RunUID, @SequenceNum, @Title, @ImageURL, @Category, @Author);
	`
	insertCartoonQuery = `
		INSERT INTO TblCartoons ([Run_UID], [Title], [ImageURL], [Author])
		VALUES (@RunUID, @Title, @ImageURL, @Author);
	`
)

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

var _ storage.Archive = (*Repository)(nil)

func NewRepository(ctx context.Context, dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger.With("component", "mssql"),
	}, nil
}

// SaveRun inserts the run row and its records in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run *storage.Run) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); !rollbackDone(err) {
			r.logger.Error("Failed to rollback transaction", "error", err.Error())
		}
	}()

	// Run header first, its UID keys the child rows
	var runUID int64
	err = tx.QueryRowContext(ctx, insertRunQuery,
		sql.Named("StartedAt", run.StartedAt),
		sql.Named("FinishedAt", run.FinishedAt),
		sql.Named("OutputPath", run.OutputPath),
		sql.Named("CheckSum", run.CheckSum),
		sql.Named("ArticleCount", len(run.Bundle.EntertainmentNews)),
	).Scan(&runUID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	// Articles keep their listing position in SequenceNum
	stmt, err := tx.PrepareContext(ctx, insertArticleQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	for i, article := range run.Bundle.EntertainmentNews {
		_, err := stmt.ExecContext(ctx, articleArgs(runUID, i, article)...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article %d: %w", i, err)
		}
	}

	if cartoon := run.Bundle.CartoonOfTheDay; cartoon != nil {
		_, err := tx.ExecContext(ctx, insertCartoonQuery, cartoonArgs(runUID, cartoon)...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert cartoon: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runUID, nil
}

// rollbackDone reports whether a deferred Rollback left nothing to report:
// either it succeeded or the transaction was already committed.
func rollbackDone(err error) bool {
	return err == nil || errors.Is(err, sql.ErrTxDone)
}

func articleArgs(runUID int64, seq int, a scraper.ArticleRecord) []any {
	return []any{
		sql.Named("RunUID", runUID),
		sql.Named("SequenceNum", seq),
		sql.Named("Title", nullString(a.Title)),
		sql.Named("ImageURL", nullString(a.ImageURL)),
		sql.Named("Category", a.Category),
		sql.Named("Author", nullString(a.Author)),
	}
}

func cartoonArgs(runUID int64, c *scraper.CartoonRecord) []any {
	return []any{
		sql.Named("RunUID", runUID),
		sql.Named("Title", nullString(c.Title)),
		sql.Named("ImageURL", nullString(c.ImageURL)),
		sql.Named("Author", nullString(c.Author)),
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
