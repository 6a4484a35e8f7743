package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// RoadmapFilter captures roadmap listing parameters.
type RoadmapFilter struct {
	Statuses []domain.RoadmapStatus
	Quarter  *string
	Limit    int
	Offset   int
}

// RoadmapRepository encapsulates roadmap item persistence.
type RoadmapRepository interface {
	Create(ctx context.Context, item *domain.RoadmapItem) error
	Update(ctx context.Context, item *domain.RoadmapItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error)
	ListWithFilter(ctx context.Context, filter RoadmapFilter) ([]domain.RoadmapItem, error)
}

type roadmapRepository struct {
	pool *pgxpool.Pool
}

// NewRoadmapRepository returns a Postgres-backed implementation.
func NewRoadmapRepository(pool *pgxpool.Pool) RoadmapRepository {
	return &roadmapRepository{pool: pool}
}

func (r *roadmapRepository) Create(ctx context.Context, item *domain.RoadmapItem) error {
	const query = `
        INSERT INTO roadmap_items (id, title, description, status, priority, quarter,
            estimated_completion, assigned_to, related_suggestions, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Status,
		item.Priority,
		item.Quarter,
		item.EstimatedCompletion,
		item.AssignedTo,
		item.RelatedSuggestions,
		item.CreatedAt,
	)
	return err
}

func (r *roadmapRepository) Update(ctx context.Context, item *domain.RoadmapItem) error {
	const query = `
        UPDATE roadmap_items SET title=$1, description=$2, status=$3, priority=$4, quarter=$5,
            estimated_completion=$6, assigned_to=$7, related_suggestions=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		item.Title,
		item.Description,
		item.Status,
		item.Priority,
		item.Quarter,
		item.EstimatedCompletion,
		item.AssignedTo,
		item.RelatedSuggestions,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roadmapRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM roadmap_items WHERE id=$1`, id)
	return err
}

func (r *roadmapRepository) GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error) {
	const query = `
        SELECT id, title, description, status, priority, quarter, estimated_completion,
               assigned_to, related_suggestions, created_at
        FROM roadmap_items WHERE id=$1`
	var item domain.RoadmapItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Status,
		&item.Priority,
		&item.Quarter,
		&item.EstimatedCompletion,
		&item.AssignedTo,
		&item.RelatedSuggestions,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *roadmapRepository) ListWithFilter(ctx context.Context, filter RoadmapFilter) ([]domain.RoadmapItem, error) {
	base := `SELECT id, title, description, status, priority, quarter, estimated_completion,
                    assigned_to, related_suggestions, created_at
             FROM roadmap_items`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Quarter != nil && *filter.Quarter != "" {
		args = append(args, *filter.Quarter)
		clauses = append(clauses, fmt.Sprintf("quarter=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoadmapItem
	for rows.Next() {
		var item domain.RoadmapItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Status,
			&item.Priority,
			&item.Quarter,
			&item.EstimatedCompletion,
			&item.AssignedTo,
			&item.RelatedSuggestions,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
