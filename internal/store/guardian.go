package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ytakeda/mimamori/internal/model"
)

// ErrGuardianExists is returned when setup runs twice for the same uid.
var ErrGuardianExists = errors.New("guardian already exists")

type GuardianStore struct {
	db *sql.DB
}

func NewGuardianStore(db *sql.DB) *GuardianStore {
	return &GuardianStore{db: db}
}

func scanGuardian(scanner interface{ Scan(...any) error }) (*model.Guardian, error) {
	var g model.Guardian
	err := scanner.Scan(&g.UID, &g.FirstName, &g.LastName, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

const guardianCols = `uid, first_name, last_name, created_at`

// Create inserts the guardian row for a first-time setup. A second call for
// the same uid fails with ErrGuardianExists and changes nothing.
func (s *GuardianStore) Create(uid, firstName, lastName string) (*model.Guardian, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO guardians (uid, first_name, last_name) VALUES (?, ?, ?)`,
		uid, firstName, lastName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert guardian: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrGuardianExists
	}
	return s.GetByUID(uid)
}

func (s *GuardianStore) GetByUID(uid string) (*model.Guardian, error) {
	row := s.db.QueryRow(`SELECT `+guardianCols+` FROM guardians WHERE uid = ?`, uid)
	g, err := scanGuardian(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guardian: %w", err)
	}
	return g, nil
}

// AddManagedElder merges elderID into the guardian's managed set. The merge
// is additive at the storage layer (INSERT OR IGNORE), never a
// read-modify-write, so concurrent registrations by the same guardian cannot
// clobber each other's additions.
func (s *GuardianStore) AddManagedElder(guardianUID, elderID string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO guardian_elders (guardian_id, elder_id) VALUES (?, ?)`,
		guardianUID, elderID,
	)
	if err != nil {
		return fmt.Errorf("add managed elder: %w", err)
	}
	return nil
}

// ManagedElderIDs returns the guardian's managed set. A guardian with no
// elders (or no row at all) yields an empty slice, not an error.
func (s *GuardianStore) ManagedElderIDs(guardianUID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT elder_id FROM guardian_elders WHERE guardian_id = ?`,
		guardianUID,
	)
	if err != nil {
		return nil, fmt.Errorf("query managed elders: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan elder id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
