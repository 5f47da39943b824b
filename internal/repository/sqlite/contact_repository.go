package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/persistence"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.ContactRepository = (*ContactRepository)(nil)

const contactColumns = `id, owner_id, name, email, phone, type, created_at, updated_at`

// ContactRepository is the SQLite implementation of repository.ContactRepository.
type ContactRepository struct {
	db *persistence.SQLite
}

// NewContactRepository creates a ContactRepository backed by db.
func NewContactRepository(db *persistence.SQLite) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (id, owner_id, name, email, phone, type, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.db.Writer.ExecContext(ctx, query,
		id,
		contact.OwnerID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Type,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create contact %s: %w", contact.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("create contact: %w", err)
	}

	contact.ID = id
	contact.CreatedAt = now
	contact.UpdatedAt = now
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = ? AND id = ?`
	return r.fetchSingle(ctx, r.db.Reader, query, ownerID, id)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, ownerID, email, excludeID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = ? AND email = ?`
	args := []any{ownerID, email}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	return r.fetchSingle(ctx, r.db.Reader, query, args...)
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

	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY name ASC, id ASC LIMIT ? OFFSET ?`,
		contactColumns, where)
	args = append(args, limit, offset)

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Count(ctx context.Context, filter repository.ContactFilter) (int64, error) {
	where, args := buildWhere(filter)
	var n int64
	if err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func (r *ContactRepository) Update(ctx context.Context, ownerID, id string, fields domain.ContactFields) (*domain.Contact, error) {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}
	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *fields.Email)
	}
	if fields.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *fields.Phone)
	}
	if fields.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *fields.Type)
	}
	args = append(args, ownerID, id)

	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE owner_id = ? AND id = ? RETURNING %s`,
		strings.Join(sets, ", "), contactColumns)

	contact, err := r.fetchSingle(ctx, r.db.Writer, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update contact %s: %w", id, repository.ErrDuplicate)
		}
		return nil, err
	}
	return contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM contacts WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ValidID accepts canonical UUID strings.
func (r *ContactRepository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func (r *ContactRepository) fetchSingle(ctx context.Context, db *sql.DB, query string, args ...any) (*domain.Contact, error) {
	contact, err := scanContact(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func buildWhere(filter repository.ContactFilter) (string, []any) {
	clauses := []string{"owner_id = ?"}
	args := []any{filter.OwnerID}

	if filter.Type != nil {
		clauses = append(clauses, "type = ?")
		args = append(args, *filter.Type)
	}
	if term := filter.SearchTerm(); term != "" {
		pattern := "%" + repository.EscapeLike(strings.ToLower(term)) + "%"
		clauses = append(clauses, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	return strings.Join(clauses, " AND "), args
}

func scanContact(s scanner) (*domain.Contact, error) {
	var (
		contact            domain.Contact
		createdAt, updated string
	)
	if err := s.Scan(
		&contact.ID,
		&contact.OwnerID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.Type,
		&createdAt,
		&updated,
	); err != nil {
		return nil, err
	}

	var err error
	if contact.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if contact.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &contact, nil
}
