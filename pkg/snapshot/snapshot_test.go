package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

func buildTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	a := s.AddPerson("Ada", "Bride", "maid of honor", true, true, "ada@example.com", "555-0100")
	b := s.AddPerson("Ben", "Groom", "", true, false, "", "")
	c := s.AddPerson("Cleo", "Bride", "", false, false, "", "")
	s.AddRelationship(a, b, model.KindSpouse, "married 2019")
	s.AddRelationship(a, c, model.KindParentChild, "")
	s.SetRoot(a)
	return s
}

func TestRoundTrip(t *testing.T) {
	orig := buildTestStore(t)

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.PersonCount() != orig.PersonCount() {
		t.Errorf("PersonCount() = %d, want %d", got.PersonCount(), orig.PersonCount())
	}
	if got.RelationshipCount() != orig.RelationshipCount() {
		t.Errorf("RelationshipCount() = %d, want %d", got.RelationshipCount(), orig.RelationshipCount())
	}
	if got.Root() != orig.Root() {
		t.Errorf("Root() = %q, want %q", got.Root(), orig.Root())
	}
	if got.IDCounter() != orig.IDCounter() {
		t.Errorf("IDCounter() = %d, want %d", got.IDCounter(), orig.IDCounter())
	}

	p, ok := got.Person("P0001")
	if !ok {
		t.Fatal("P0001 missing after round trip")
	}
	if p.Name != "Ada" || p.Side != "Bride" || !p.Invited || !p.PlusOne || p.Email != "ada@example.com" {
		t.Errorf("P0001 = %+v", p)
	}
}

func TestParse_LegacyRelationships(t *testing.T) {
	data := []byte(`{
		"people": [
			{"id": "P0001", "name": "Ada"},
			{"id": "P0002", "name": "Ben"}
		],
		"relationships": [
			{"parent": "P0001", "child": "P0002"}
		]
	}`)

	st, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	rels := st.Relationships()
	if len(rels) != 1 {
		t.Fatalf("len(Relationships()) = %d, want 1", len(rels))
	}
	r := rels[0]
	if r.Kind != model.KindParentChild || r.Person1 != "P0001" || r.Person2 != "P0002" {
		t.Errorf("legacy entry decoded as %+v", r)
	}
}

func TestParse_MixedFormats(t *testing.T) {
	data := []byte(`{
		"people": [
			{"id": "P0001", "name": "Ada"},
			{"id": "P0002", "name": "Ben"},
			{"id": "P0003", "name": "Cleo"}
		],
		"relationships": [
			{"parent": "P0001", "child": "P0002"},
			{"person1Id": "P0002", "person2Id": "P0003", "relationshipType": "friend"}
		]
	}`)

	st, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if st.RelationshipCount() != 2 {
		t.Errorf("RelationshipCount() = %d, want 2", st.RelationshipCount())
	}
}

func TestParse_UnknownKindFailsImport(t *testing.T) {
	data := []byte(`{
		"people": [
			{"id": "P0001", "name": "Ada"},
			{"id": "P0002", "name": "Ben"}
		],
		"relationships": [
			{"person1Id": "P0001", "person2Id": "P0002", "relationshipType": "nemesis"}
		]
	}`)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeUnknownKind) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownKind)
	}
}

func TestParse_MalformedEntries(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"relationship missing fields", `{
			"people": [{"id": "P0001", "name": "Ada"}],
			"relationships": [{"person1Id": "P0001"}]
		}`},
		{"legacy missing child", `{
			"people": [{"id": "P0001", "name": "Ada"}],
			"relationships": [{"parent": "P0001"}]
		}`},
		{"person without id", `{
			"people": [{"name": "Ada"}]
		}`},
		{"person without name", `{
			"people": [{"id": "P0001"}]
		}`},
		{"person with blank name", `{
			"people": [{"id": "P0001", "name": "   "}]
		}`},
		{"duplicate person ids", `{
			"people": [{"id": "P0001", "name": "Ada"}, {"id": "P0001", "name": "Twin"}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSnapshot)
			}
		})
	}
}

func TestParse_InvitedDefaultsTrue(t *testing.T) {
	data := []byte(`{
		"people": [
			{"id": "P0001", "name": "Ada"},
			{"id": "P0002", "name": "Ben", "invited": false},
			{"id": "P0003", "name": "Cleo", "invited": true}
		]
	}`)

	st, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// An absent invited key means invited; an explicit false survives.
	tests := []struct {
		id   string
		want bool
	}{
		{"P0001", true},
		{"P0002", false},
		{"P0003", true},
	}
	for _, tt := range tests {
		p, ok := st.Person(tt.id)
		if !ok {
			t.Fatalf("%s missing after import", tt.id)
		}
		if p.Invited != tt.want {
			t.Errorf("%s.Invited = %v, want %v", tt.id, p.Invited, tt.want)
		}
	}
	if got := st.InvitedCount(); got != 2 {
		t.Errorf("InvitedCount() = %d, want 2", got)
	}
}

func TestParse_SkipsDanglingAndDuplicate(t *testing.T) {
	data := []byte(`{
		"people": [
			{"id": "P0001", "name": "Ada"},
			{"id": "P0002", "name": "Ben"}
		],
		"relationships": [
			{"person1Id": "P0001", "person2Id": "P0002", "relationshipType": "spouse"},
			{"person1Id": "P0002", "person2Id": "P0001", "relationshipType": "spouse"},
			{"person1Id": "P0001", "person2Id": "P0099", "relationshipType": "friend"},
			{"person1Id": "P0001", "person2Id": "P0001", "relationshipType": "friend"}
		],
		"root": "P0099"
	}`)

	st, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if st.RelationshipCount() != 1 {
		t.Errorf("RelationshipCount() = %d, want 1", st.RelationshipCount())
	}
	// A root pointing at a missing person is dropped, not an error.
	if st.Root() != "" {
		t.Errorf("Root() = %q, want empty", st.Root())
	}
}

func TestParse_CounterFloor(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{
			name: "stored counter wins when higher",
			data: `{"people": [{"id": "P0001", "name": "Ada"}], "id_counter": 10}`,
			want: 10,
		},
		{
			name: "stale counter floored to max suffix plus one",
			data: `{"people": [{"id": "P0007", "name": "Ada"}], "id_counter": 2}`,
			want: 8,
		},
		{
			name: "missing counter derived from ids",
			data: `{"people": [{"id": "P0003", "name": "Ada"}]}`,
			want: 4,
		},
		{
			name: "empty snapshot starts at one",
			data: `{"people": []}`,
			want: 1,
		},
		{
			name: "non-numeric ids ignored for floor",
			data: `{"people": [{"id": "guest-7", "name": "Ada"}], "id_counter": 3}`,
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if st.IDCounter() != tt.want {
				t.Errorf("IDCounter() = %d, want %d", st.IDCounter(), tt.want)
			}
		})
	}
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("ImportFile() error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.json")
	orig := buildTestStore(t)

	if err := ExportFile(orig, path); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if got.PersonCount() != orig.PersonCount() {
		t.Errorf("PersonCount() = %d, want %d", got.PersonCount(), orig.PersonCount())
	}
}
