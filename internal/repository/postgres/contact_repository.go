package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.ContactRepository = (*ContactRepository)(nil)

const contactColumns = `id::text, owner_id::text, name, email, phone, type, created_at, updated_at`

// ContactRepository stores contacts in PostgreSQL.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (owner_id, name, email, phone, type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id::text, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		contact.OwnerID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Type,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	return mapError("create contact", err)
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	if !isUUID(ownerID) || !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 AND id = $2`
	return r.fetchSingle(ctx, "get contact", query, ownerID, id)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, ownerID, email, excludeID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 AND email = $2`
	args := []any{ownerID, email}
	if excludeID != "" {
		query += ` AND id <> $3`
		args = append(args, excludeID)
	}
	return r.fetchSingle(ctx, "find contact by email", query, args...)
}

func (r *ContactRepository) List(ctx context.Context, filter repository.ContactFilter) ([]domain.Contact, error) {
	where, args := buildWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY name COLLATE "C" ASC, id ASC LIMIT %d OFFSET %d`,
		contactColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list contacts", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	return contacts, mapError("scan contacts", err)
}

func (r *ContactRepository) Count(ctx context.Context, filter repository.ContactFilter) (int64, error) {
	where, args := buildWhere(filter)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&n)
	return n, mapError("count contacts", err)
}

func (r *ContactRepository) Update(ctx context.Context, ownerID, id string, fields domain.ContactFields) (*domain.Contact, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.Name != nil {
		set("name", *fields.Name)
	}
	if fields.Email != nil {
		set("email", *fields.Email)
	}
	if fields.Phone != nil {
		set("phone", *fields.Phone)
	}
	if fields.Type != nil {
		set("type", *fields.Type)
	}
	if !isUUID(ownerID) || !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	args = append(args, ownerID, id)

	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE owner_id = $%d AND id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), contactColumns)
	return r.fetchSingle(ctx, "update contact", query, args...)
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(ownerID) || !isUUID(id) {
		return repository.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError("delete contact", err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ValidID accepts canonical UUID strings, so malformed ids never reach a uuid cast.
func (r *ContactRepository) ValidID(id string) bool {
	return isUUID(id)
}

func (r *ContactRepository) fetchSingle(ctx context.Context, op, query string, args ...any) (*domain.Contact, error) {
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, args...).Scan(contactDest(&contact)...); err != nil {
		return nil, mapError(op, err)
	}
	return &contact, nil
}

func buildWhere(filter repository.ContactFilter) (string, []any) {
	args := []any{filter.OwnerID}
	clauses := []string{"owner_id = $1"}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if term := filter.SearchTerm(); term != "" {
		args = append(args, "%"+repository.EscapeLike(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(`(name ILIKE %[1]s ESCAPE '\' OR email ILIKE %[1]s ESCAPE '\' OR phone ILIKE %[1]s ESCAPE '\')`, placeholder))
	}
	return strings.Join(clauses, " AND "), args
}

func contactDest(c *domain.Contact) []any {
	return []any{
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Type,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanContacts(rows pgx.Rows) ([]domain.Contact, error) {
	result := []domain.Contact{}
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(contactDest(&contact)...); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
