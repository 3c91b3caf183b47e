package questionnaire

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/requestcontext"
)

// PostgresStore persists questionnaires as JSONB documents with the status
// extracted into a column for filtered listings.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, q *Questionnaire) error {
	doc, err := json.Marshal(q.ToAPI())
	if err != nil {
		return fmt.Errorf("encode questionnaire: %w", err)
	}
	query := `
		INSERT INTO questionnaires (id, statut, created_at, updated_at, doc)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			statut = EXCLUDED.statut,
			updated_at = EXCLUDED.updated_at,
			doc = EXCLUDED.doc
	`
	if _, err := s.db.ExecContext(ctx, query, q.ID, q.Statut.String(), q.CreatedAt, q.UpdatedAt, doc); err != nil {
		return fmt.Errorf("save questionnaire: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Questionnaire, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM questionnaires WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s not found", id)
		}
		return nil, fmt.Errorf("get questionnaire: %w", err)
	}
	return s.decode(ctx, doc)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Questionnaire, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM questionnaires ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list questionnaires: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]*Questionnaire, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM questionnaires WHERE statut = $1 ORDER BY created_at, id`, status.String())
	if err != nil {
		return nil, fmt.Errorf("list questionnaires by status: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questionnaires WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete questionnaire: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "questionnaire %s not found", id)
	}
	return nil
}

func (s *PostgresStore) collect(ctx context.Context, rows *sql.Rows) ([]*Questionnaire, error) {
	var out []*Questionnaire
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan questionnaire: %w", err)
		}
		q, err := s.decode(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questionnaires: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) decode(ctx context.Context, doc []byte) (*Questionnaire, error) {
	var in API
	if err := json.Unmarshal(doc, &in); err != nil {
		return nil, fmt.Errorf("decode questionnaire: %w", err)
	}
	q, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stored questionnaire is invalid")
	}
	return q, nil
}
