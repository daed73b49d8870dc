package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/contact/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, owner_id, name, email, phone, created_at, updated_at`

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectContacts(rows pgx.Rows) ([]domain.Contact, error) {
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE owner_id = $1
		ORDER BY created_at;
	`, contactColumns)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return collectContacts(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE id = $1
		LIMIT 1;
	`, contactColumns)

	contact, err := scanContact(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Create(ctx context.Context, contact *domain.Contact) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO contacts (id, owner_id, name, email, phone, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func (r *PostgresRepository) Update(ctx context.Context, contact *domain.Contact) error {
	_, err := r.db.Exec(ctx, `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`, contact.ID, contact.Name, contact.Email, contact.Phone, contact.UpdatedAt)

	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	return err
}

// Search matches any of the provided terms case-insensitively, always
// scoped to the owner. Empty terms are passed as empty strings and skipped
// in SQL.
func (r *PostgresRepository) Search(ctx context.Context, ownerID, name, email, phone string) ([]domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE owner_id = $1
		  AND (($2 <> '' AND name ILIKE '%%' || $2 || '%%')
		    OR ($3 <> '' AND email ILIKE '%%' || $3 || '%%')
		    OR ($4 <> '' AND phone ILIKE '%%' || $4 || '%%'))
		ORDER BY created_at;
	`, contactColumns)

	rows, err := r.db.Query(ctx, query, ownerID, name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return collectContacts(rows)
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM contacts WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM contacts
		WHERE owner_id = $1 AND id = ANY($2)
	`, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete contacts: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) FindByEmailOrPhone(ctx context.Context, ownerID, email, phone string) (*domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE owner_id = $1 AND (email = $2 OR phone = $3)
		LIMIT 1;
	`, contactColumns)

	contact, err := scanContact(r.db.QueryRow(ctx, query, ownerID, email, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact by email or phone: %w", err)
	}

	return contact, nil
}
