// ABOUTME: Data model for the document-scoped timeline payload produced by the ingestion backend.
// ABOUTME: Decoding is deliberately tolerant: absent or malformed sections degrade to empty, never to an error.
package feed

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Kind distinguishes the two selectable entity kinds in the payload.
type Kind string

const (
	KindSubject   Kind = "subject"
	KindContainer Kind = "container"
)

// Appointment is one tenure record attached to an entity. Dates are
// "YYYY-MM-DD" strings straight off the wire; the timeline package owns
// parsing and validation.
type Appointment struct {
	AppointmentLabel string   `json:"appointmentLabel"`
	CounterpartLabel string   `json:"counterpartLabel"`
	Category         string   `json:"category"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Tags             []string `json:"tags,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// Entity is a selectable subject (person) or container (institution) with
// its full appointment history.
type Entity struct {
	ID           string        `json:"id"`
	DisplayName  string        `json:"displayName"`
	Appointments []Appointment `json:"appointments"`
}

// UnmarshalJSON accepts the id field as either a JSON string or a JSON
// number; the upstream serializer emits integer primary keys.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		DisplayName  string          `json:"displayName"`
		Appointments []Appointment   `json:"appointments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.DisplayName = raw.DisplayName
	e.Appointments = raw.Appointments
	e.ID = decodeID(raw.ID)
	return nil
}

// decodeID renders a raw JSON id value as a string. Strings are unquoted,
// numbers are formatted verbatim, anything else becomes empty.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Payload is the document-scoped input contract: two ordered entity lists.
type Payload struct {
	Subjects   []Entity `json:"subjects"`
	Containers []Entity `json:"containers"`
}

// Empty reports whether the payload carries no entities at all.
func (p Payload) Empty() bool {
	return len(p.Subjects) == 0 && len(p.Containers) == 0
}

// Entities returns the list for the given kind.
func (p Payload) Entities(kind Kind) []Entity {
	if kind == KindContainer {
		return p.Containers
	}
	return p.Subjects
}

// Parse decodes a payload document. It never fails: a malformed document or
// malformed subjects/containers arrays decode to empty lists, which callers
// surface as an empty-state render rather than an error.
func Parse(data []byte) Payload {
	var raw struct {
		Subjects   json.RawMessage `json:"subjects"`
		Containers json.RawMessage `json:"containers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}
	}
	return Payload{
		Subjects:   parseEntities(raw.Subjects),
		Containers: parseEntities(raw.Containers),
	}
}

// parseEntities decodes one outer array, dropping it wholesale when malformed.
func parseEntities(raw json.RawMessage) []Entity {
	if len(raw) == 0 {
		return nil
	}
	var entities []Entity
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil
	}
	return entities
}

// Load reads and parses a payload file. I/O errors are reported; content
// problems are not (Parse is tolerant).
func Load(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, err
	}
	return Parse(data), nil
}

// FindEntity looks up an entity by id within the given kind.
func (p Payload) FindEntity(kind Kind, id string) (Entity, bool) {
	for _, e := range p.Entities(kind) {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Summary is a one-line description of payload contents for validate mode.
func (p Payload) Summary() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(p.Subjects)))
	b.WriteString(" subjects, ")
	b.WriteString(strconv.Itoa(len(p.Containers)))
	b.WriteString(" containers, ")
	total := 0
	for _, e := range p.Subjects {
		total += len(e.Appointments)
	}
	for _, e := range p.Containers {
		total += len(e.Appointments)
	}
	b.WriteString(strconv.Itoa(total))
	b.WriteString(" appointments")
	return b.String()
}
