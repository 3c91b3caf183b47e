package producteur

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/requestcontext"
)

// PostgresStore persists producer profiles as JSONB documents. Status, region
// and cultures are extracted into columns so listings filter in the database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p *Producteur) error {
	doc, err := json.Marshal(p.ToAPI())
	if err != nil {
		return fmt.Errorf("encode producteur: %w", err)
	}
	query := `
		INSERT INTO producteurs (id, status_verification, region, cultures, created_at, updated_at, doc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status_verification = EXCLUDED.status_verification,
			region = EXCLUDED.region,
			cultures = EXCLUDED.cultures,
			updated_at = EXCLUDED.updated_at,
			doc = EXCLUDED.doc
	`
	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.StatusVerification.String(), p.Region,
		pq.Array(p.PrincipalesCultures), p.CreatedAt, p.UpdatedAt, doc)
	if err != nil {
		return fmt.Errorf("save producteur: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Producteur, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM producteurs WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "producteur %s not found", id)
		}
		return nil, fmt.Errorf("get producteur: %w", err)
	}
	return s.decode(ctx, doc)
}

func (s *PostgresStore) List(ctx context.Context) ([]*Producteur, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM producteurs ORDER BY doc->>'nom', id`)
	if err != nil {
		return nil, fmt.Errorf("list producteurs: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status VerificationStatus) ([]*Producteur, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM producteurs WHERE status_verification = $1 ORDER BY doc->>'nom', id`, status.String())
	if err != nil {
		return nil, fmt.Errorf("list producteurs by status: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *PostgresStore) ListByRegion(ctx context.Context, region string) ([]*Producteur, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM producteurs WHERE lower(region) = lower($1) ORDER BY doc->>'nom', id`, region)
	if err != nil {
		return nil, fmt.Errorf("list producteurs by region: %w", err)
	}
	defer rows.Close()
	return s.collect(ctx, rows)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM producteurs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producteur: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "producteur %s not found", id)
	}
	return nil
}

func (s *PostgresStore) collect(ctx context.Context, rows *sql.Rows) ([]*Producteur, error) {
	var out []*Producteur
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan producteur: %w", err)
		}
		p, err := s.decode(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate producteurs: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) decode(ctx context.Context, doc []byte) (*Producteur, error) {
	var in API
	if err := json.Unmarshal(doc, &in); err != nil {
		return nil, fmt.Errorf("decode producteur: %w", err)
	}
	p, err := FromAPI(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stored producteur is invalid")
	}
	return p, nil
}
