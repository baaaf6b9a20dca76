package layout

import (
	"reflect"
	"testing"

	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

func TestLevels_Chain(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	c := s.AddPerson("Cleo", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")
	s.AddRelationship(b, c, model.KindParentChild, "")

	got := Levels(s, a)

	want := map[string]int{a: 0, b: 1, c: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestLevels_EmptyStore(t *testing.T) {
	got := Levels(store.New(), "")
	if len(got) != 0 {
		t.Errorf("Levels() = %v, want empty map", got)
	}
}

func TestLevels_InferredStart(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")

	// No explicit root: the first parentless person in store order starts.
	got := Levels(s, "")

	if got[a] != 0 || got[b] != 1 {
		t.Errorf("Levels() = %v, want {%s:0 %s:1}", got, a, b)
	}
}

func TestLevels_UnknownRootFallsBack(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")

	got := Levels(s, "P0099")

	if got[a] != 0 || got[b] != 1 {
		t.Errorf("Levels() = %v, want inferred start levels", got)
	}
}

func TestLevels_DisconnectedGetZero(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	c := s.AddPerson("Cleo", "", "", false, false, "", "")
	d := s.AddPerson("Dan", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")
	s.AddRelationship(c, d, model.KindParentChild, "")

	got := Levels(s, a)

	// c and d are unreachable from a; both land on level 0.
	want := map[string]int{a: 0, b: 1, c: 0, d: 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestLevels_MultiParentFirstDiscoveryWins(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	c := s.AddPerson("Cleo", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")
	s.AddRelationship(a, c, model.KindParentChild, "")
	s.AddRelationship(b, c, model.KindParentChild, "")

	got := Levels(s, a)

	// c is a's child (level 1) and b's child (level 2); first discovery wins.
	if got[c] != 1 {
		t.Errorf("Levels()[c] = %d, want 1", got[c])
	}
}

func TestLevels_CycleFallbackStart(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")
	s.AddRelationship(b, a, model.KindParentChild, "")

	// Everyone has a parent; the first person in store order starts and the
	// traversal still terminates.
	got := Levels(s, "")

	if got[a] != 0 || got[b] != 1 {
		t.Errorf("Levels() = %v, want {%s:0 %s:1}", got, a, b)
	}
}

func TestLevels_UndirectedEdgesIgnored(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindSpouse, "")

	got := Levels(s, a)

	if got[a] != 0 || got[b] != 0 {
		t.Errorf("Levels() = %v, want both at 0", got)
	}
}

func TestByLevel(t *testing.T) {
	s := store.New()
	a := s.AddPerson("Ada", "", "", false, false, "", "")
	b := s.AddPerson("Ben", "", "", false, false, "", "")
	c := s.AddPerson("Cleo", "", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindParentChild, "")
	s.AddRelationship(a, c, model.KindParentChild, "")

	levels := Levels(s, a)
	grouped := ByLevel(s, levels)

	if !reflect.DeepEqual(grouped[0], []string{a}) {
		t.Errorf("grouped[0] = %v, want [%s]", grouped[0], a)
	}
	if !reflect.DeepEqual(grouped[1], []string{b, c}) {
		t.Errorf("grouped[1] = %v, want [%s %s]", grouped[1], b, c)
	}
	if got := LevelOrder(grouped); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("LevelOrder() = %v, want [0 1]", got)
	}
}
