package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/subm/domain"
)

type pgSubmRepo struct {
	pool *pgxpool.Pool
}

func NewPgSubmRepo(pool *pgxpool.Pool) *pgSubmRepo {
	return &pgSubmRepo{pool: pool}
}

const submColumns = `uuid, author_uuid, problem_id, language, code, started_at, submitted_at,
	status, duration_ms, memory_kb, passed, rank, raw_results`

// StoreSubm inserts a finished submission. Submissions are never updated.
func (r *pgSubmRepo) StoreSubm(ctx context.Context, subm domain.Subm) error {
	log := logger.FromContext(ctx)
	log.Debug("storing submission", "subm_uuid", subm.UUID, "author_uuid", subm.AuthorUUID, "problem_id", subm.ProblemID)

	query := `
		INSERT INTO submissions (` + submColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var raw []byte
	if len(subm.RawResults) > 0 {
		raw = subm.RawResults
	}

	log.Debug("executing insert query", "query", query)
	_, err := r.pool.Exec(ctx, query,
		subm.UUID,
		subm.AuthorUUID,
		subm.ProblemID,
		subm.Language,
		subm.Code,
		subm.StartedAt,
		subm.SubmittedAt,
		string(subm.Status),
		subm.DurationMs,
		subm.MemoryKb,
		subm.Passed,
		subm.Rank,
		raw,
	)
	if err != nil {
		log.Debug("failed to insert submission", "error", err)
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	log.Debug("submission stored successfully", "subm_uuid", subm.UUID)
	return nil
}

func (r *pgSubmRepo) GetSubm(ctx context.Context, submUuid uuid.UUID) (domain.Subm, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting submission", "subm_uuid", submUuid)

	query := `SELECT ` + submColumns + ` FROM submissions WHERE uuid = $1`

	log.Debug("executing select query", "query", query)
	s, err := scanSubm(r.pool.QueryRow(ctx, query, submUuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("submission not found", "subm_uuid", submUuid)
			return domain.Subm{}, domain.ErrSubmNotFound().SetDebug(err)
		}
		log.Debug("failed to query submission", "error", err)
		return domain.Subm{}, fmt.Errorf("failed to query submission: %w", err)
	}
	return s, nil
}

// ListSubms returns submissions matching the filter, newest first.
func (r *pgSubmRepo) ListSubms(ctx context.Context, f domain.SubmFilter) ([]domain.Subm, error) {
	log := logger.FromContext(ctx)

	var (
		conds []string
		args  []any
	)
	if f.AuthorUUID != nil {
		args = append(args, *f.AuthorUUID)
		conds = append(conds, fmt.Sprintf("author_uuid = $%d", len(args)))
	}
	if f.ProblemID != nil {
		args = append(args, *f.ProblemID)
		conds = append(conds, fmt.Sprintf("problem_id = $%d", len(args)))
	}
	if f.MinDurationMs != nil {
		args = append(args, *f.MinDurationMs)
		conds = append(conds, fmt.Sprintf("duration_ms >= $%d", len(args)))
	}

	query := `SELECT ` + submColumns + ` FROM submissions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY submitted_at DESC, uuid"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	log.Debug("executing list query", "query", query, "args", len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Debug("failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	res := []domain.Subm{}
	for rows.Next() {
		s, err := scanSubm(rows)
		if err != nil {
			log.Debug("failed to scan submission", "error", err)
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		log.Debug("error iterating submissions", "error", err)
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	log.Debug("listed submissions", "count", len(res))
	return res, nil
}

func (r *pgSubmRepo) GetStats(ctx context.Context, authorUuid uuid.UUID) (domain.SubmStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting submission stats", "author_uuid", authorUuid)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE passed),
			(AVG(duration_ms) FILTER (WHERE passed))::float8,
			COUNT(DISTINCT problem_id) FILTER (WHERE passed)
		FROM submissions
		WHERE author_uuid = $1
	`
	var st domain.SubmStats
	log.Debug("executing stats query", "query", query)
	err := r.pool.QueryRow(ctx, query, authorUuid).Scan(
		&st.Total,
		&st.Successful,
		&st.AvgDurationMs,
		&st.ProblemsSolved,
	)
	if err != nil {
		log.Debug("failed to query stats", "error", err)
		return domain.SubmStats{}, fmt.Errorf("failed to query submission stats: %w", err)
	}
	return st, nil
}

func scanSubm(row pgx.Row) (domain.Subm, error) {
	var (
		s      domain.Subm
		status string
		raw    []byte
	)
	err := row.Scan(
		&s.UUID,
		&s.AuthorUUID,
		&s.ProblemID,
		&s.Language,
		&s.Code,
		&s.StartedAt,
		&s.SubmittedAt,
		&status,
		&s.DurationMs,
		&s.MemoryKb,
		&s.Passed,
		&s.Rank,
		&raw,
	)
	if err != nil {
		return domain.Subm{}, err
	}
	s.Status = execsrvc.Status(status)
	s.RawResults = raw
	return s, nil
}
