// Package store owns the in-memory graph of people and typed relationships.
//
// A [Store] holds the guest list for one planning session: people keyed by
// their assigned ID, relationships in insertion order, an optional tree root
// and the ID counter. It is the single mutable state of the program and is
// passed explicitly to everything that needs it - there is no package-level
// session.
//
// The store is deliberately forgiving on relationship writes: adding a
// self-relationship, a duplicate, or an edge to an unknown person is a silent
// no-op, not an error. Callers that want to surface a notice can inspect the
// boolean result.
//
// Store is not safe for concurrent use. The program mutates it from a single
// logical actor, so no locking is needed.
package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/model"
)

// Store is the in-memory graph of people and relationships.
// The zero value is not usable - use [New].
type Store struct {
	people  map[string]*model.Person
	order   []string // person IDs in insertion order
	rels    []model.Relationship
	root    string
	counter int // next numeric ID suffix, never reused
}

// New creates an empty store. The ID sequence starts at 1.
func New() *Store {
	return &Store{
		people:  make(map[string]*model.Person),
		counter: 1,
	}
}

// nextID mints a new person ID of the form "P" + zero-padded sequence number.
// The sequence is strictly increasing for the lifetime of the store, even
// after deletions.
func (s *Store) nextID() string {
	id := fmt.Sprintf("P%04d", s.counter)
	s.counter++
	return id
}

// AddPerson creates a person, assigns the next ID and returns it.
// String fields are trimmed. The store does not reject empty names here -
// validation is the caller's responsibility before invocation.
func (s *Store) AddPerson(name, side, notes string, invited, plusOne bool, email, phone string) string {
	id := s.nextID()
	s.people[id] = &model.Person{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Side:    strings.TrimSpace(side),
		Notes:   strings.TrimSpace(notes),
		Invited: invited,
		PlusOne: plusOne,
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
	}
	s.order = append(s.order, id)
	return id
}

// Insert adds a person under their existing ID, preserving it.
// This is the restore path used by snapshot import; interactive creation
// goes through [Store.AddPerson] instead.
func (s *Store) Insert(p model.Person) error {
	if p.ID == "" {
		return errors.New(errors.ErrCodeInvalidPersonID, "person ID cannot be empty")
	}
	if _, exists := s.people[p.ID]; exists {
		return errors.New(errors.ErrCodeInvalidPersonID, "duplicate person ID %q", p.ID)
	}
	cp := p
	s.people[p.ID] = &cp
	s.order = append(s.order, p.ID)
	return nil
}

// UpdatePerson overwrites the mutable fields of an existing person.
// The ID is immutable; a person whose ID is unknown is left alone and
// false is returned.
func (s *Store) UpdatePerson(p model.Person) bool {
	existing, ok := s.people[p.ID]
	if !ok {
		return false
	}
	existing.Name = strings.TrimSpace(p.Name)
	existing.Side = strings.TrimSpace(p.Side)
	existing.Notes = strings.TrimSpace(p.Notes)
	existing.Invited = p.Invited
	existing.PlusOne = p.PlusOne
	existing.Email = strings.TrimSpace(p.Email)
	existing.Phone = strings.TrimSpace(p.Phone)
	existing.Expanded = p.Expanded
	return true
}

// DeletePerson removes a person, every relationship touching them, and
// clears the root pointer if it pointed at them. Deleting an unknown ID
// is a no-op.
func (s *Store) DeletePerson(id string) {
	if _, ok := s.people[id]; !ok {
		return
	}
	delete(s.people, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	s.rels = slices.DeleteFunc(s.rels, func(r model.Relationship) bool { return r.Touches(id) })
	if s.root == id {
		s.root = ""
	}
}

// Person returns the person with the given ID.
func (s *Store) Person(id string) (model.Person, bool) {
	p, ok := s.people[id]
	if !ok {
		return model.Person{}, false
	}
	return *p, true
}

// Has reports whether a person with the given ID exists.
func (s *Store) Has(id string) bool {
	_, ok := s.people[id]
	return ok
}

// People returns all people in insertion order.
// The returned slice holds copies; mutations do not affect the store.
func (s *Store) People() []model.Person {
	out := make([]model.Person, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.people[id])
	}
	return out
}

// IDs returns all person IDs in insertion order.
func (s *Store) IDs() []string {
	return slices.Clone(s.order)
}

// PersonCount returns the number of people in the store.
func (s *Store) PersonCount() int { return len(s.people) }

// RelationshipCount returns the number of relationships in the store.
func (s *Store) RelationshipCount() int { return len(s.rels) }

// AddRelationship connects two people. It reports whether the relationship
// was stored: unknown endpoints, self-relationships and duplicates (ordered
// for parent_child, unordered for every other kind) are silently ignored.
func (s *Store) AddRelationship(p1, p2 string, kind model.Kind, notes string) bool {
	return s.addRelationship(model.Relationship{
		Person1: p1,
		Person2: p2,
		Kind:    kind,
		Notes:   strings.TrimSpace(notes),
	})
}

// AddRelationshipRecord stores a pre-built relationship under the same
// no-op rules as [Store.AddRelationship].
func (s *Store) AddRelationshipRecord(r model.Relationship) bool {
	return s.addRelationship(r)
}

func (s *Store) addRelationship(r model.Relationship) bool {
	if r.Person1 == r.Person2 {
		return false
	}
	if !s.Has(r.Person1) || !s.Has(r.Person2) {
		return false
	}
	for _, existing := range s.rels {
		if existing.Same(r) {
			return false
		}
	}
	s.rels = append(s.rels, r)
	return true
}

// RemoveRelationship deletes the relationship matching the given endpoints
// and kind under the duplicate rule. It reports whether anything was removed.
func (s *Store) RemoveRelationship(p1, p2 string, kind model.Kind) bool {
	probe := model.Relationship{Person1: p1, Person2: p2, Kind: kind}
	for i, r := range s.rels {
		if r.Same(probe) {
			s.rels = slices.Delete(s.rels, i, i+1)
			return true
		}
	}
	return false
}

// Relationships returns all relationships in insertion order.
func (s *Store) Relationships() []model.Relationship {
	return slices.Clone(s.rels)
}

// RelationshipsOf returns every relationship touching id, in store order.
func (s *Store) RelationshipsOf(id string) []model.Relationship {
	var out []model.Relationship
	for _, r := range s.rels {
		if r.Touches(id) {
			out = append(out, r)
		}
	}
	return out
}

// ChildrenOf returns the child IDs of all parent_child relationships where
// id is the parent.
func (s *Store) ChildrenOf(id string) []string {
	var out []string
	for _, r := range s.rels {
		if r.Kind == model.KindParentChild && r.Person1 == id {
			out = append(out, r.Person2)
		}
	}
	return out
}

// ParentsOf returns the parent IDs of all parent_child relationships where
// id is the child.
func (s *Store) ParentsOf(id string) []string {
	var out []string
	for _, r := range s.rels {
		if r.Kind == model.KindParentChild && r.Person2 == id {
			out = append(out, r.Person1)
		}
	}
	return out
}

// RelatedPeople returns the opposite endpoint of every relationship touching
// id, in store order. A non-empty kind restricts the result to that kind.
func (s *Store) RelatedPeople(id string, kind model.Kind) []string {
	var out []string
	for _, r := range s.rels {
		if kind != "" && r.Kind != kind {
			continue
		}
		if other := r.Other(id); other != "" {
			out = append(out, other)
		}
	}
	return out
}

// UniqueGuestCount returns the expected head count: one per invited person,
// plus one more for each invited person with a plus-one. People not on the
// guest list contribute nothing.
func (s *Store) UniqueGuestCount() int {
	total := 0
	for _, p := range s.people {
		if !p.Invited {
			continue
		}
		total++
		if p.PlusOne {
			total++
		}
	}
	return total
}

// InvitedCount returns the number of people marked invited.
func (s *Store) InvitedCount() int {
	n := 0
	for _, p := range s.people {
		if p.Invited {
			n++
		}
	}
	return n
}

// Root returns the user-selected tree root ID, or "" if none is set.
func (s *Store) Root() string { return s.root }

// SetRoot points the tree root at an existing person.
// It reports whether the ID was known.
func (s *Store) SetRoot(id string) bool {
	if !s.Has(id) {
		return false
	}
	s.root = id
	return true
}

// ClearRoot removes the root selection.
func (s *Store) ClearRoot() { s.root = "" }

// IDCounter returns the next numeric ID suffix to be assigned.
func (s *Store) IDCounter() int { return s.counter }

// SetIDCounter overrides the ID sequence. Used by snapshot restore; the
// snapshot layer is responsible for flooring the value against existing IDs.
func (s *Store) SetIDCounter(n int) {
	if n < 1 {
		n = 1
	}
	s.counter = n
}
