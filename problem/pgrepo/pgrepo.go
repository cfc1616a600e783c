package pgrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/problem/domain"
)

type problemPgRepo struct {
	pool *pgxpool.Pool
}

func NewProblemPgRepo(pool *pgxpool.Pool) *problemPgRepo {
	return &problemPgRepo{pool: pool}
}

const problemColumns = `id, slug, title, description_md, tags, difficulty, time_thresholds,
	solution_templates, reference_solutions, harness_eval_files, enabled, created_at, updated_at`

func (r *problemPgRepo) GetProblem(ctx context.Context, id int64) (domain.Problem, error) {
	return r.getBy(ctx, "id", id)
}

func (r *problemPgRepo) GetProblemBySlug(ctx context.Context, slug string) (domain.Problem, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *problemPgRepo) getBy(ctx context.Context, column string, value any) (domain.Problem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting problem", column, value)

	query := `SELECT ` + problemColumns + ` FROM problems WHERE ` + column + ` = $1`
	log.Debug("executing select query", "query", query)
	p, err := scanProblem(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Problem{}, domain.ErrProblemNotFound().SetDebug(err)
		}
		log.Debug("failed to query problem", "error", err)
		return domain.Problem{}, fmt.Errorf("failed to query problem: %w", err)
	}
	return p, nil
}

func (r *problemPgRepo) ListProblems(ctx context.Context, f domain.ListFilter) ([]domain.Problem, error) {
	log := logger.FromContext(ctx)

	var (
		conds []string
		args  []any
	)
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if f.Difficulty != "" {
		args = append(args, f.Difficulty)
		conds = append(conds, fmt.Sprintf("LOWER(difficulty) = LOWER($%d)", len(args)))
	}
	if f.Slug != "" {
		args = append(args, f.Slug)
		conds = append(conds, fmt.Sprintf("slug = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.EnabledOnly {
		conds = append(conds, "enabled")
	}

	query := `SELECT ` + problemColumns + ` FROM problems`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// sort field comes from a closed set, never from raw input
	sortBy, _ := domain.ParseSort(string(f.SortBy), "")
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id", sortBy, dir)

	log.Debug("executing list query", "query", query)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Debug("failed to list problems", "error", err)
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	res := []domain.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating problems: %w", err)
	}
	log.Debug("listed problems", "count", len(res))
	return res, nil
}

func (r *problemPgRepo) ListEnabled(ctx context.Context) ([]domain.Problem, error) {
	return r.ListProblems(ctx, domain.ListFilter{EnabledOnly: true, SortBy: domain.SortByTitle})
}

// StoreProblem inserts a problem when its ID is zero and updates it
// otherwise. It returns the ID of the stored row.
func (r *problemPgRepo) StoreProblem(ctx context.Context, p domain.Problem) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("storing problem", "id", p.ID, "slug", p.Slug)

	thresholds, err := json.Marshal(nonNil(p.TimeThresholds))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal time thresholds: %w", err)
	}
	templates, err := json.Marshal(nonNilMap(p.SolutionTemplates))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal solution templates: %w", err)
	}
	references, err := json.Marshal(nonNilMap(p.ReferenceSolutions))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal reference solutions: %w", err)
	}
	harness, err := json.Marshal(nonNil(p.HarnessFiles))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal harness files: %w", err)
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	args := []any{
		p.Slug, p.Title, p.DescriptionMd, tags, p.Difficulty,
		thresholds, templates, references, harness, p.Enabled,
	}

	var query string
	if p.ID == 0 {
		query = `
			INSERT INTO problems (
				slug, title, description_md, tags, difficulty, time_thresholds,
				solution_templates, reference_solutions, harness_eval_files, enabled
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
	} else {
		args = append(args, p.ID)
		query = `
			UPDATE problems SET
				slug = $1, title = $2, description_md = $3, tags = $4, difficulty = $5,
				time_thresholds = $6, solution_templates = $7, reference_solutions = $8,
				harness_eval_files = $9, enabled = $10, updated_at = NOW()
			WHERE id = $11
			RETURNING id
		`
	}

	log.Debug("executing store query", "query", query)
	var id int64
	err = r.pool.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrProblemNotFound().SetDebug(err)
		}
		log.Debug("failed to store problem", "error", err)
		return 0, fmt.Errorf("failed to store problem: %w", err)
	}
	log.Debug("problem stored successfully", "id", id)
	return id, nil
}

func scanProblem(row pgx.Row) (domain.Problem, error) {
	var (
		p                                        domain.Problem
		thresholds, templates, references, files []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.DescriptionMd,
		&p.Tags,
		&p.Difficulty,
		&thresholds,
		&templates,
		&references,
		&files,
		&p.Enabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Problem{}, err
	}
	if err := unmarshalJsonb(thresholds, &p.TimeThresholds); err != nil {
		return domain.Problem{}, fmt.Errorf("bad time_thresholds of problem %d: %w", p.ID, err)
	}
	if err := unmarshalJsonb(templates, &p.SolutionTemplates); err != nil {
		return domain.Problem{}, fmt.Errorf("bad solution_templates of problem %d: %w", p.ID, err)
	}
	if err := unmarshalJsonb(references, &p.ReferenceSolutions); err != nil {
		return domain.Problem{}, fmt.Errorf("bad reference_solutions of problem %d: %w", p.ID, err)
	}
	if err := unmarshalJsonb(files, &p.HarnessFiles); err != nil {
		return domain.Problem{}, fmt.Errorf("bad harness_eval_files of problem %d: %w", p.ID, err)
	}
	return p, nil
}

func unmarshalJsonb(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
