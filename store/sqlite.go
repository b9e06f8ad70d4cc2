// ABOUTME: SQLite-backed persistence for subjects, containers, and their appointments.
// ABOUTME: Imports payload documents and reloads them; open-ended tenures get today's date on the way out.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/redpolitica/trayectoria/feed"
)

// Store wraps the SQLite handle holding the entity catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at the given path. Runs the
// schema idempotently and enables WAL and foreign keys.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS entities (
			entity_id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK (kind IN ('subject', 'container')),
			display_name TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS appointments (
			appointment_id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL,
			appointment_label TEXT NOT NULL,
			counterpart_label TEXT NOT NULL,
			category TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT,
			tags TEXT NOT NULL,
			notes TEXT NOT NULL,
			FOREIGN KEY (entity_id) REFERENCES entities(entity_id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_entity
			ON appointments(entity_id);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ImportPayload replaces each imported entity's record set with the payload
// contents. Entities missing an id get a generated UUID; appointment rows
// get ULIDs so insertion order stays recoverable. Returns the number of
// entities imported.
func (s *Store) ImportPayload(p feed.Payload) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	now := time.Now().UTC().Format(time.RFC3339)
	for _, kind := range []feed.Kind{feed.KindSubject, feed.KindContainer} {
		for _, e := range p.Entities(kind) {
			if err := importEntity(tx, kind, e, now); err != nil {
				return 0, err
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return count, nil
}

// importEntity upserts one entity and rewrites its appointment rows.
func importEntity(tx *sql.Tx, kind feed.Kind, e feed.Entity, now string) error {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := tx.Exec(
		`INSERT INTO entities (entity_id, kind, display_name, imported_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(entity_id) DO UPDATE SET
			kind = excluded.kind,
			display_name = excluded.display_name,
			imported_at = excluded.imported_at`,
		id, string(kind), e.DisplayName, now,
	)
	if err != nil {
		return fmt.Errorf("upsert entity %s: %w", id, err)
	}

	if _, err := tx.Exec(`DELETE FROM appointments WHERE entity_id = ?`, id); err != nil {
		return fmt.Errorf("clear appointments for %s: %w", id, err)
	}

	for _, a := range e.Appointments {
		tags, err := json.Marshal(a.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		var end any
		if a.EndDate != "" {
			end = a.EndDate
		}
		_, err = tx.Exec(
			`INSERT INTO appointments
				(appointment_id, entity_id, appointment_label, counterpart_label,
				 category, start_date, end_date, tags, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ulid.Make().String(), id, a.AppointmentLabel, a.CounterpartLabel,
			a.Category, a.StartDate, end, string(tags), a.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert appointment for %s: %w", id, err)
		}
	}
	return nil
}

// LoadPayload reassembles the full payload from the catalog. Appointments
// stored with a NULL end date are ongoing tenures; they are serialized with
// the current date, matching the upstream backend's behavior.
func (s *Store) LoadPayload() (feed.Payload, error) {
	return s.loadPayloadAt(time.Now())
}

// loadPayloadAt is the clock-injected implementation backing LoadPayload.
func (s *Store) loadPayloadAt(now time.Time) (feed.Payload, error) {
	var p feed.Payload

	rows, err := s.db.Query(
		`SELECT entity_id, kind, display_name FROM entities ORDER BY display_name, entity_id`)
	if err != nil {
		return p, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	type entityRow struct {
		entity feed.Entity
		kind   feed.Kind
	}
	var entities []entityRow
	for rows.Next() {
		var er entityRow
		var kind string
		if err := rows.Scan(&er.entity.ID, &kind, &er.entity.DisplayName); err != nil {
			return p, fmt.Errorf("scan entity: %w", err)
		}
		er.kind = feed.Kind(kind)
		entities = append(entities, er)
	}
	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("iterate entities: %w", err)
	}

	today := now.Format("2006-01-02")
	for i := range entities {
		apps, err := s.loadAppointments(entities[i].entity.ID, today)
		if err != nil {
			return p, err
		}
		entities[i].entity.Appointments = apps
		if entities[i].kind == feed.KindContainer {
			p.Containers = append(p.Containers, entities[i].entity)
		} else {
			p.Subjects = append(p.Subjects, entities[i].entity)
		}
	}

	return p, nil
}

// loadAppointments reads one entity's appointment rows in insertion order.
func (s *Store) loadAppointments(entityID, today string) ([]feed.Appointment, error) {
	rows, err := s.db.Query(
		`SELECT appointment_label, counterpart_label, category, start_date, end_date, tags, notes
		 FROM appointments WHERE entity_id = ? ORDER BY appointment_id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("list appointments for %s: %w", entityID, err)
	}
	defer rows.Close()

	var apps []feed.Appointment
	for rows.Next() {
		var a feed.Appointment
		var end sql.NullString
		var tags string
		if err := rows.Scan(&a.AppointmentLabel, &a.CounterpartLabel, &a.Category,
			&a.StartDate, &end, &tags, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		if end.Valid {
			a.EndDate = end.String
		} else {
			a.EndDate = today
		}
		if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
			a.Tags = nil
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// EntityCount returns the number of stored entities, for status output.
func (s *Store) EntityCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entities`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return n, nil
}
