package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ytakeda/mimamori/internal/model"
)

type ElderStore struct {
	db *sql.DB
}

func NewElderStore(db *sql.DB) *ElderStore {
	return &ElderStore{db: db}
}

const elderCols = `id, guardian_id, name, age, prefecture, city, notification_email,
	medical_conditions, physical_characteristics, qr_id, created_at`

func scanElder(scanner interface{ Scan(...any) error }) (*model.Elder, error) {
	var e model.Elder
	err := scanner.Scan(&e.ID, &e.GuardianID, &e.Name, &e.Age, &e.Prefecture, &e.City,
		&e.NotificationEmail, &e.MedicalConditions, &e.PhysicalCharacteristics,
		&e.QRID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persists the elder profile and its photo URLs in one transaction.
// The write is all-or-nothing: either the full profile (photos included)
// becomes visible or nothing does.
func (s *ElderStore) Create(e *model.Elder) (*model.Elder, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO elders (id, guardian_id, name, age, prefecture, city,
			notification_email, medical_conditions, physical_characteristics, qr_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GuardianID, e.Name, e.Age, e.Prefecture, e.City,
		e.NotificationEmail, e.MedicalConditions, e.PhysicalCharacteristics, e.QRID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert elder: %w", err)
	}

	for i, url := range e.ClothingPhotos {
		if _, err := tx.Exec(
			`INSERT INTO elder_photos (elder_id, position, url) VALUES (?, ?, ?)`,
			e.ID, i, url,
		); err != nil {
			return nil, fmt.Errorf("insert photo %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.GetByID(e.ID)
}

func (s *ElderStore) GetByID(id string) (*model.Elder, error) {
	row := s.db.QueryRow(`SELECT `+elderCols+` FROM elders WHERE id = ?`, id)
	e, err := scanElder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get elder: %w", err)
	}
	if err := s.loadPhotos(e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetByQRID resolves the elder a scanned QR code refers to.
func (s *ElderStore) GetByQRID(qrID string) (*model.Elder, error) {
	row := s.db.QueryRow(`SELECT `+elderCols+` FROM elders WHERE qr_id = ?`, qrID)
	e, err := scanElder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get elder by qr id: %w", err)
	}
	if err := s.loadPhotos(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByIDs batch-fetches the elders whose id is in ids with a single IN
// query. The dashboard's two-step read (managed set, then this) depends on
// it; result order follows creation time.
func (s *ElderStore) ListByIDs(ids []string) ([]model.Elder, error) {
	if len(ids) == 0 {
		return []model.Elder{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		`SELECT `+elderCols+` FROM elders WHERE id IN (`+placeholders+`) ORDER BY created_at, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query elders: %w", err)
	}
	defer rows.Close()

	var elders []model.Elder
	for rows.Next() {
		e, err := scanElder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan elder: %w", err)
		}
		elders = append(elders, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range elders {
		if err := s.loadPhotos(&elders[i]); err != nil {
			return nil, err
		}
	}
	return elders, nil
}

func (s *ElderStore) loadPhotos(e *model.Elder) error {
	rows, err := s.db.Query(
		`SELECT url FROM elder_photos WHERE elder_id = ? ORDER BY position`,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	e.ClothingPhotos = []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return fmt.Errorf("scan photo: %w", err)
		}
		e.ClothingPhotos = append(e.ClothingPhotos, url)
	}
	return rows.Err()
}
