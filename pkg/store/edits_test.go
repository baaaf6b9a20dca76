package store

import (
	"testing"

	"github.com/lhartmann/guestree/pkg/model"
)

func TestRows_SortedBySideThenName(t *testing.T) {
	s := New()
	s.AddPerson("Zoe", "Bride", "", true, false, "", "")
	s.AddPerson("Ada", "Groom", "", true, false, "", "")
	s.AddPerson("Ben", "Bride", "", true, false, "", "")

	rows := s.Rows()
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Name
	}

	want := []string{"Ben", "Zoe", "Ada"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rows() order = %v, want %v", got, want)
		}
	}
}

func TestApplyTableEdits_CreateUpdateDelete(t *testing.T) {
	s := New()
	keep := s.AddPerson("Ada", "Bride", "", true, false, "", "")
	drop := s.AddPerson("Ben", "Groom", "", true, false, "", "")

	res := s.ApplyTableEdits([]Row{
		{ID: keep, Name: "Ada Lovelace", Side: "Bride", Invited: true, PlusOne: true},
		{Name: "Cleo", Side: "Groom", Invited: true},
		// drop is absent, so reconciliation deletes them.
	})

	if res.Created != 1 || res.Updated != 1 || res.Removed != 1 {
		t.Errorf("ApplyTableEdits() = %+v, want {1 1 1}", res)
	}
	if s.Has(drop) {
		t.Error("person missing from the table still exists")
	}
	p, _ := s.Person(keep)
	if p.Name != "Ada Lovelace" || !p.PlusOne {
		t.Errorf("updated person = %+v", p)
	}
}

func TestApplyTableEdits_BlankNameSkipsRow(t *testing.T) {
	s := New()
	id := s.AddPerson("Ada", "", "", true, false, "", "")

	// A blanked-out name neither updates nor retains the person.
	res := s.ApplyTableEdits([]Row{{ID: id, Name: "   "}})

	if res.Created != 0 || res.Updated != 0 || res.Removed != 1 {
		t.Errorf("ApplyTableEdits() = %+v, want {0 0 1}", res)
	}
	if s.PersonCount() != 0 {
		t.Errorf("PersonCount() = %d, want 0", s.PersonCount())
	}
}

func TestApplyTableEdits_EmptyRowIgnored(t *testing.T) {
	s := New()
	id := s.AddPerson("Ada", "", "", true, false, "", "")

	// A row with neither ID nor name does nothing at all: no person is
	// created and no counter is consumed.
	res := s.ApplyTableEdits([]Row{
		{ID: id, Name: "Ada", Invited: true},
		{},
		{Name: "   "},
	})

	if res.Created != 0 || res.Updated != 1 || res.Removed != 0 {
		t.Errorf("ApplyTableEdits() = %+v, want {0 1 0}", res)
	}
	if s.PersonCount() != 1 {
		t.Errorf("PersonCount() = %d, want 1", s.PersonCount())
	}
	if s.IDCounter() != 2 {
		t.Errorf("IDCounter() = %d, want 2 (no ID minted for empty rows)", s.IDCounter())
	}
}

func TestApplyTableEdits_UnknownIDCreates(t *testing.T) {
	s := New()

	res := s.ApplyTableEdits([]Row{{ID: "P0042", Name: "Ghost"}})

	if res.Created != 1 {
		t.Errorf("Created = %d, want 1", res.Created)
	}
	// The row's stale ID is not honored; a fresh one is minted.
	if s.Has("P0042") {
		t.Error("stale row ID was adopted, want fresh ID")
	}
	if !s.Has("P0001") {
		t.Error("fresh ID P0001 not assigned")
	}
}

func TestApplyTableEdits_DeletionCascades(t *testing.T) {
	s := New()
	a := s.AddPerson("Ada", "", "", true, false, "", "")
	b := s.AddPerson("Ben", "", "", true, false, "", "")
	s.AddRelationship(a, b, model.KindSpouse, "")

	s.ApplyTableEdits([]Row{{ID: a, Name: "Ada", Invited: true}})

	if s.RelationshipCount() != 0 {
		t.Errorf("RelationshipCount() = %d after cascade, want 0", s.RelationshipCount())
	}
}
