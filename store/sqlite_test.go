// ABOUTME: Tests for the SQLite catalog store.
// ABOUTME: Covers import/load round-trips, id generation, re-import replacement, and ongoing-tenure dates.
package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/redpolitica/trayectoria/feed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testPayload() feed.Payload {
	return feed.Payload{
		Subjects: []feed.Entity{{
			ID:          "7",
			DisplayName: "Ana Torres",
			Appointments: []feed.Appointment{{
				AppointmentLabel: "Secretaria de Salud",
				CounterpartLabel: "Gobierno Federal",
				Category:         "federal",
				StartDate:        "2006-12-01",
				EndDate:          "2012-11-30",
				Tags:             []string{"salud", "gabinete"},
				Notes:            "Primera titular.",
			}},
		}},
		Containers: []feed.Entity{{
			ID:          "inst-3",
			DisplayName: "Ayuntamiento de Morelia",
		}},
	}
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	n, err := s.ImportPayload(testPayload())
	if err != nil {
		t.Fatalf("ImportPayload: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}

	p, err := s.LoadPayload()
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if len(p.Subjects) != 1 || len(p.Containers) != 1 {
		t.Fatalf("loaded %d subjects, %d containers", len(p.Subjects), len(p.Containers))
	}

	got := p.Subjects[0]
	if got.ID != "7" || got.DisplayName != "Ana Torres" {
		t.Errorf("subject = %+v", got)
	}
	if len(got.Appointments) != 1 {
		t.Fatalf("appointments = %d, want 1", len(got.Appointments))
	}
	a := got.Appointments[0]
	if a.AppointmentLabel != "Secretaria de Salud" || a.Category != "federal" {
		t.Errorf("appointment = %+v", a)
	}
	if a.StartDate != "2006-12-01" || a.EndDate != "2012-11-30" {
		t.Errorf("dates = %q..%q", a.StartDate, a.EndDate)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "salud" {
		t.Errorf("tags = %v", a.Tags)
	}
	if a.Notes != "Primera titular." {
		t.Errorf("notes = %q", a.Notes)
	}
}

func TestImportGeneratesMissingIDs(t *testing.T) {
	s := openTestStore(t)

	p := feed.Payload{Subjects: []feed.Entity{{DisplayName: "Sin ID"}}}
	if _, err := s.ImportPayload(p); err != nil {
		t.Fatalf("ImportPayload: %v", err)
	}

	loaded, err := s.LoadPayload()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Subjects) != 1 {
		t.Fatalf("subjects = %d", len(loaded.Subjects))
	}
	if loaded.Subjects[0].ID == "" {
		t.Error("expected a generated entity id")
	}
}

func TestReimportReplacesAppointments(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.ImportPayload(testPayload()); err != nil {
		t.Fatal(err)
	}

	updated := testPayload()
	updated.Subjects[0].Appointments = []feed.Appointment{{
		AppointmentLabel: "Senadora",
		CounterpartLabel: "Senado",
		Category:         "federal",
		StartDate:        "2018-09-01",
		EndDate:          "2024-08-31",
	}}
	if _, err := s.ImportPayload(updated); err != nil {
		t.Fatal(err)
	}

	p, err := s.LoadPayload()
	if err != nil {
		t.Fatal(err)
	}
	apps := p.Subjects[0].Appointments
	if len(apps) != 1 {
		t.Fatalf("appointments = %d, want replacement not accumulation", len(apps))
	}
	if apps[0].AppointmentLabel != "Senadora" {
		t.Errorf("label = %q", apps[0].AppointmentLabel)
	}

	// Entity count must not grow on re-import either.
	n, err := s.EntityCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("entity count = %d, want 2", n)
	}
}

func TestOngoingTenureSerializesAsToday(t *testing.T) {
	s := openTestStore(t)

	p := feed.Payload{Subjects: []feed.Entity{{
		ID:          "1",
		DisplayName: "Actual",
		Appointments: []feed.Appointment{{
			AppointmentLabel: "Gobernadora",
			Category:         "state",
			StartDate:        "2021-10-01",
			EndDate:          "", // still in office
		}},
	}}}
	if _, err := s.ImportPayload(p); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	loaded, err := s.loadPayloadAt(now)
	if err != nil {
		t.Fatal(err)
	}
	got := loaded.Subjects[0].Appointments[0].EndDate
	if got != "2026-08-28" {
		t.Errorf("ongoing end date = %q, want current date 2026-08-28", got)
	}
}

func TestLoadPayloadOrdersByDisplayName(t *testing.T) {
	s := openTestStore(t)

	p := feed.Payload{Subjects: []feed.Entity{
		{ID: "1", DisplayName: "Zavala"},
		{ID: "2", DisplayName: "Arriaga"},
		{ID: "3", DisplayName: "Mendoza"},
	}}
	if _, err := s.ImportPayload(p); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadPayload()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Arriaga", "Mendoza", "Zavala"}
	for i, e := range loaded.Subjects {
		if e.DisplayName != want[i] {
			t.Errorf("position %d = %q, want %q", i, e.DisplayName, want[i])
		}
	}
}

func TestEmptyStoreLoadsEmptyPayload(t *testing.T) {
	s := openTestStore(t)

	p, err := s.LoadPayload()
	if err != nil {
		t.Fatalf("LoadPayload on empty store: %v", err)
	}
	if !p.Empty() {
		t.Errorf("expected empty payload, got %+v", p)
	}
}
