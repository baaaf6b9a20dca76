// Package snapshot serializes the guest graph to and from its JSON document.
//
// # Document Format
//
// A snapshot is the complete state of a [store.Store]:
//
//	{
//	  "people": [
//	    {"id": "P0001", "name": "Ada", "side": "Bride", "invited": true, ...}
//	  ],
//	  "relationships": [
//	    {"person1Id": "P0001", "person2Id": "P0002", "relationshipType": "spouse"}
//	  ],
//	  "root": "P0001",
//	  "id_counter": 3
//	}
//
// People entries keep the snake_case keys of the original file format so old
// saves load unchanged. A person entry needs an id and a name; every other
// field is optional, with invited defaulting to true when the key is absent. Relationship entries come in two schemas: the typed
// schema above, and the legacy pre-typed schema {"parent": ..., "child": ...}
// which always meant a parent-child edge. Entries are sniffed per the fields
// they carry and normalized before any further processing.
//
// # Atomicity
//
// [Parse] builds a brand-new store and never touches existing state; callers
// swap their store reference only on success, so a failed import leaves the
// prior session intact.
//
// Output is pretty-printed and stable to support manual editing and diffing.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

// document is the top-level snapshot schema.
type document struct {
	People        []personEntry `json:"people"`
	Relationships []relEntry    `json:"relationships"`
	Root          *string       `json:"root"`
	IDCounter     *int          `json:"id_counter,omitempty"`
}

// personEntry mirrors model.Person with the wire field names.
type personEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Side     string `json:"side"`
	Notes    string `json:"notes"`
	Invited  bool   `json:"invited"`
	PlusOne  bool   `json:"plus_one"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Expanded bool   `json:"expanded,omitempty"`
}

// UnmarshalJSON decodes a person entry, distinguishing absent fields from
// zero values. A person without a name is malformed; an absent invited key
// defaults to true, matching what hand-edited files expect (everyone listed
// is a guest unless marked otherwise).
func (e *personEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string  `json:"id"`
		Name     *string `json:"name"`
		Side     string  `json:"side"`
		Notes    string  `json:"notes"`
		Invited  *bool   `json:"invited"`
		PlusOne  bool    `json:"plus_one"`
		Email    string  `json:"email"`
		Phone    string  `json:"phone"`
		Expanded bool    `json:"expanded"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		return errors.New(errors.ErrCodeInvalidSnapshot, "person entry %q missing name", raw.ID)
	}

	invited := true
	if raw.Invited != nil {
		invited = *raw.Invited
	}

	*e = personEntry{
		ID:       raw.ID,
		Name:     *raw.Name,
		Side:     raw.Side,
		Notes:    raw.Notes,
		Invited:  invited,
		PlusOne:  raw.PlusOne,
		Email:    raw.Email,
		Phone:    raw.Phone,
		Expanded: raw.Expanded,
	}
	return nil
}

// relEntry is the normalized form of a relationship entry after dual-format
// decoding. Legacy entries arrive as {"parent", "child"} and are converted to
// parent_child during unmarshal.
type relEntry struct {
	Person1 string `json:"person1Id"`
	Person2 string `json:"person2Id"`
	Kind    string `json:"relationshipType"`
	Notes   string `json:"notes,omitempty"`
}

// UnmarshalJSON sniffs the entry schema by field presence: an entry carrying
// "parent" or "child" is the legacy pre-typed format.
func (e *relEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parent  *string `json:"parent"`
		Child   *string `json:"child"`
		Person1 *string `json:"person1Id"`
		Person2 *string `json:"person2Id"`
		Kind    *string `json:"relationshipType"`
		Notes   string  `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Parent != nil || raw.Child != nil {
		if raw.Parent == nil || raw.Child == nil {
			return errors.New(errors.ErrCodeInvalidSnapshot, "legacy relationship entry needs both parent and child")
		}
		*e = relEntry{
			Person1: *raw.Parent,
			Person2: *raw.Child,
			Kind:    model.KindParentChild.String(),
			Notes:   raw.Notes,
		}
		return nil
	}

	if raw.Person1 == nil || raw.Person2 == nil || raw.Kind == nil {
		return errors.New(errors.ErrCodeInvalidSnapshot, "relationship entry missing person1Id, person2Id or relationshipType")
	}
	*e = relEntry{
		Person1: *raw.Person1,
		Person2: *raw.Person2,
		Kind:    *raw.Kind,
		Notes:   raw.Notes,
	}
	return nil
}

// Marshal encodes the store as a pretty-printed snapshot document.
func Marshal(st *store.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(st, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the store as a snapshot document to w.
func Write(st *store.Store, w io.Writer) error {
	doc := document{
		People:        make([]personEntry, 0, st.PersonCount()),
		Relationships: make([]relEntry, 0, st.RelationshipCount()),
	}

	for _, p := range st.People() {
		doc.People = append(doc.People, personEntry{
			ID:       p.ID,
			Name:     p.Name,
			Side:     p.Side,
			Notes:    p.Notes,
			Invited:  p.Invited,
			PlusOne:  p.PlusOne,
			Email:    p.Email,
			Phone:    p.Phone,
			Expanded: p.Expanded,
		})
	}
	for _, r := range st.Relationships() {
		doc.Relationships = append(doc.Relationships, relEntry{
			Person1: r.Person1,
			Person2: r.Person2,
			Kind:    r.Kind.String(),
			Notes:   r.Notes,
		})
	}
	if root := st.Root(); root != "" {
		doc.Root = &root
	}
	counter := st.IDCounter()
	doc.IDCounter = &counter

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes the snapshot to a JSON file at path.
func ExportFile(st *store.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(st, f)
}

// Parse decodes a snapshot document into a fresh store.
//
// The returned store is completely independent; Parse never mutates existing
// state, so callers get import atomicity by swapping their reference only on
// success. Errors carry errors.ErrCodeInvalidSnapshot for structural problems
// and errors.ErrCodeUnknownKind for relationship types outside the closed
// vocabulary - the latter fails the whole import, never default-coerces.
func Parse(data []byte) (*store.Store, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}

	st := store.New()

	for i, p := range doc.People {
		if strings.TrimSpace(p.ID) == "" {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "person entry %d has no id", i)
		}
		if err := st.Insert(model.Person{
			ID:       p.ID,
			Name:     p.Name,
			Side:     p.Side,
			Notes:    p.Notes,
			Invited:  p.Invited,
			PlusOne:  p.PlusOne,
			Email:    p.Email,
			Phone:    p.Phone,
			Expanded: p.Expanded,
		}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "person entry %d", i)
		}
	}

	for i, r := range doc.Relationships {
		kind, err := model.ParseKind(r.Kind)
		if err != nil {
			return nil, errors.New(errors.ErrCodeUnknownKind, "relationship entry %d: %s", i, err)
		}
		// Unknown endpoints and duplicates fall under the store's silent
		// no-op rules, same as interactive adds.
		st.AddRelationshipRecord(model.Relationship{
			Person1: r.Person1,
			Person2: r.Person2,
			Kind:    kind,
			Notes:   r.Notes,
		})
	}

	if doc.Root != nil && *doc.Root != "" {
		st.SetRoot(*doc.Root)
	}

	st.SetIDCounter(restoredCounter(doc.IDCounter, st.IDs()))
	return st, nil
}

// Read decodes a snapshot document from r into a fresh store.
func Read(r io.Reader) (*store.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(data)
}

// ImportFile reads the snapshot file at path and returns the decoded store.
func ImportFile(path string) (*store.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// restoredCounter picks the ID counter after import: the stored value when
// present, floored at 1 + the highest numeric suffix among existing IDs so a
// stale counter can never mint a colliding ID.
func restoredCounter(stored *int, ids []string) int {
	floor := 1
	for _, id := range ids {
		if n, ok := idSuffix(id); ok && n+1 > floor {
			floor = n + 1
		}
	}
	if stored != nil && *stored > floor {
		return *stored
	}
	return floor
}

// idSuffix extracts the numeric suffix of a "P####" person ID.
func idSuffix(id string) (int, bool) {
	if len(id) < 2 || id[0] != 'P' {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
