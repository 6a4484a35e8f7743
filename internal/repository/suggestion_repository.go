package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// SuggestionFilter captures listing parameters.
type SuggestionFilter struct {
	AuthorID   *string
	Statuses   []domain.SuggestionStatus
	Categories []domain.SuggestionCategory
	Priorities []domain.Priority
	SearchTerm *string
	Limit      int
	Offset     int
}

// SuggestionRepository encapsulates suggestion persistence. Listing is
// most-recent-first; Delete is idempotent and succeeds on absent ids.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) error
	Update(ctx context.Context, suggestion *domain.Suggestion) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Suggestion, error)
	ListWithFilter(ctx context.Context, filter SuggestionFilter) ([]domain.Suggestion, error)
	SaveVoteSession(ctx context.Context, suggestionID string, session *domain.VoteSession) error
	UpsertVote(ctx context.Context, suggestionID string, vote domain.Vote) error
	AllTags(ctx context.Context) ([]string, error)
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository returns a Postgres-backed implementation.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *domain.Suggestion) error {
	const query = `
        INSERT INTO suggestions (id, title, description, category, status, priority,
            author_id, author_name, created_at, updated_at, votes, admin_notes, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.pool.Exec(ctx, query,
		suggestion.ID,
		suggestion.Title,
		suggestion.Description,
		suggestion.Category,
		suggestion.Status,
		suggestion.Priority,
		suggestion.AuthorID,
		suggestion.AuthorName,
		suggestion.CreatedAt,
		suggestion.UpdatedAt,
		suggestion.Votes,
		suggestion.AdminNotes,
		suggestion.Tags,
	)
	return err
}

func (r *suggestionRepository) Update(ctx context.Context, suggestion *domain.Suggestion) error {
	const query = `
        UPDATE suggestions SET title=$1, description=$2, category=$3, status=$4, priority=$5,
            votes=$6, admin_notes=$7, tags=$8, updated_at=$9
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		suggestion.Title,
		suggestion.Description,
		suggestion.Category,
		suggestion.Status,
		suggestion.Priority,
		suggestion.Votes,
		suggestion.AdminNotes,
		suggestion.Tags,
		suggestion.UpdatedAt,
		suggestion.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *suggestionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM suggestions WHERE id=$1`, id)
	return err
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	const query = `
        SELECT id, title, description, category, status, priority, author_id, author_name,
               created_at, updated_at, votes, admin_notes, tags,
               vote_session_active, vote_session_started_at
        FROM suggestions WHERE id=$1`
	suggestion, err := r.scanOne(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if suggestion.VoteSession != nil {
		votes, err := r.listVotes(ctx, suggestion.ID)
		if err != nil {
			return nil, err
		}
		suggestion.VoteSession.Votes = votes
	}
	return suggestion, nil
}

func (r *suggestionRepository) ListWithFilter(ctx context.Context, filter SuggestionFilter) ([]domain.Suggestion, error) {
	base := `SELECT id, title, description, category, status, priority, author_id, author_name,
                    created_at, updated_at, votes, admin_notes, tags,
                    vote_session_active, vote_session_started_at
             FROM suggestions`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("author_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, category := range filter.Categories {
			args = append(args, category)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
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
	return scanSuggestions(rows)
}

func (r *suggestionRepository) SaveVoteSession(ctx context.Context, suggestionID string, session *domain.VoteSession) error {
	const query = `
        UPDATE suggestions SET vote_session_active=$1, vote_session_started_at=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, session.IsActive, session.StartedAt, suggestionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *suggestionRepository) UpsertVote(ctx context.Context, suggestionID string, vote domain.Vote) error {
	const query = `
        INSERT INTO suggestion_votes (suggestion_id, user_id, vote_type)
        VALUES ($1,$2,$3)
        ON CONFLICT (suggestion_id, user_id) DO UPDATE SET vote_type=EXCLUDED.vote_type`
	_, err := r.pool.Exec(ctx, query, suggestionID, vote.UserID, vote.VoteType)
	return err
}

func (r *suggestionRepository) AllTags(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT unnest(tags) FROM suggestions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *suggestionRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Suggestion, error) {
	var suggestion domain.Suggestion
	var sessionActive bool
	var sessionStartedAt *time.Time
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&suggestion.ID,
		&suggestion.Title,
		&suggestion.Description,
		&suggestion.Category,
		&suggestion.Status,
		&suggestion.Priority,
		&suggestion.AuthorID,
		&suggestion.AuthorName,
		&suggestion.CreatedAt,
		&suggestion.UpdatedAt,
		&suggestion.Votes,
		&suggestion.AdminNotes,
		&suggestion.Tags,
		&sessionActive,
		&sessionStartedAt,
	); err != nil {
		return nil, err
	}
	attachSession(&suggestion, sessionActive, sessionStartedAt)
	return &suggestion, nil
}

func (r *suggestionRepository) listVotes(ctx context.Context, suggestionID string) ([]domain.Vote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, vote_type FROM suggestion_votes WHERE suggestion_id=$1 ORDER BY created_at`,
		suggestionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.UserID, &vote.VoteType); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

func scanSuggestions(rows pgx.Rows) ([]domain.Suggestion, error) {
	var result []domain.Suggestion
	for rows.Next() {
		var suggestion domain.Suggestion
		var sessionActive bool
		var sessionStartedAt *time.Time
		if err := rows.Scan(
			&suggestion.ID,
			&suggestion.Title,
			&suggestion.Description,
			&suggestion.Category,
			&suggestion.Status,
			&suggestion.Priority,
			&suggestion.AuthorID,
			&suggestion.AuthorName,
			&suggestion.CreatedAt,
			&suggestion.UpdatedAt,
			&suggestion.Votes,
			&suggestion.AdminNotes,
			&suggestion.Tags,
			&sessionActive,
			&sessionStartedAt,
		); err != nil {
			return nil, err
		}
		attachSession(&suggestion, sessionActive, sessionStartedAt)
		result = append(result, suggestion)
	}
	return result, rows.Err()
}

// attachSession rebuilds the embedded session from its columns. A null
// started_at means no session was ever opened for the suggestion.
func attachSession(suggestion *domain.Suggestion, active bool, startedAt *time.Time) {
	if startedAt == nil {
		return
	}
	suggestion.VoteSession = &domain.VoteSession{
		IsActive:  active,
		StartedAt: *startedAt,
		Votes:     []domain.Vote{},
	}
}
