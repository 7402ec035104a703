package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/staffdir"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ staffdir.ContactService = (*ContactService)(nil)

// ContactService implements staffdir.ContactService using SQLite.
type ContactService struct {
	db *DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *DB) *ContactService {
	return &ContactService{db: db}
}

// HashContact computes the xxHash of the contact's key and returns it as hex.
// Contacts with identical fields have identical hashes.
func HashContact(c *staffdir.Contact) string {
	h := xxhash.Sum64String(c.Key())
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// WriteBatch stores every contact in the batch in a single transaction.
func (s *ContactService) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, prefix, first_name, last_name, department_code, department_title,
			position, address, contacts, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	for _, c := range batch {
		address, err := json.Marshal(c.Address)
		if err != nil {
			return fmt.Errorf("failed to encode address: %w", err)
		}
		contacts, err := json.Marshal(c.Contacts)
		if err != nil {
			return fmt.Errorf("failed to encode contacts: %w", err)
		}

		var code, title sql.NullString
		if c.Department != nil {
			code = sql.NullString{String: c.Department.Code, Valid: true}
			title = sql.NullString{String: c.Department.Title, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, uuid.New().String(), prefix, c.FirstName, c.LastName,
			code, title, c.Position, string(address), string(contacts), HashContact(c), createdAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindContacts retrieves contacts matching the filter in insertion order.
func (s *ContactService) FindContacts(ctx context.Context, filter staffdir.ContactFilter) ([]*staffdir.Contact, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT first_name, last_name, department_code, department_title, position, address, contacts
		FROM contacts WHERE 1=1`)
	appendFilter(&query, &args, filter)
	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*staffdir.Contact
	for rows.Next() {
		var c staffdir.Contact
		var code, title sql.NullString
		var address, labels string

		if err := rows.Scan(&c.FirstName, &c.LastName, &code, &title, &c.Position, &address, &labels); err != nil {
			return nil, err
		}

		if code.Valid || title.Valid {
			c.Department = &staffdir.Department{Code: code.String, Title: title.String}
		}
		if err := json.Unmarshal([]byte(address), &c.Address); err != nil {
			return nil, fmt.Errorf("failed to decode address: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &c.Contacts); err != nil {
			return nil, fmt.Errorf("failed to decode contacts: %w", err)
		}
		if c.Contacts == nil {
			c.Contacts = map[string]string{}
		}

		contacts = append(contacts, &c)
	}

	return contacts, rows.Err()
}

// CountContacts returns the number of contacts matching the filter.
func (s *ContactService) CountContacts(ctx context.Context, filter staffdir.ContactFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM contacts WHERE 1=1")
	appendFilter(&query, &args, filter)

	var n int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// appendFilter appends the WHERE conditions for filter to a query builder.
func appendFilter(query *strings.Builder, args *[]any, filter staffdir.ContactFilter) {
	if filter.LastName != nil {
		query.WriteString(` AND last_name LIKE ? ESCAPE '\'`)
		*args = append(*args, likePrefix(*filter.LastName))
	}
	if filter.Prefix != nil {
		query.WriteString(" AND prefix = ?")
		*args = append(*args, *filter.Prefix)
	}
	if filter.Hash != nil {
		query.WriteString(" AND content_hash = ?")
		*args = append(*args, *filter.Hash)
	}
}
