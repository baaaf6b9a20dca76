package model

import (
	"fmt"
	"sort"
)

// Kind is the closed vocabulary of relationship types.
//
// The underlying string is the stable machine value used on the wire and in
// snapshot files. Use [ParseKind] to decode untrusted input - it rejects
// anything outside the vocabulary instead of coercing to a default.
type Kind string

// Relationship kinds.
const (
	KindParentChild  Kind = "parent_child"
	KindPartner      Kind = "partner"
	KindSpouse       Kind = "spouse"
	KindFriend       Kind = "friend"
	KindAcquaintance Kind = "acquaintance"
	KindSibling      Kind = "sibling"
)

// displayNames maps each kind to its human-readable name.
var displayNames = map[Kind]string{
	KindParentChild:  "Parent / Child",
	KindPartner:      "Partner",
	KindSpouse:       "Spouse",
	KindFriend:       "Friend",
	KindAcquaintance: "Acquaintance",
	KindSibling:      "Sibling",
}

// Directed reports whether endpoint order matters for this kind.
// Only parent_child is directed.
func (k Kind) Directed() bool { return k == KindParentChild }

// String returns the stable machine value.
func (k Kind) String() string { return string(k) }

// DisplayName returns the human-readable name for the kind.
// Unknown kinds fall back to the machine value.
func (k Kind) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return string(k)
}

// Valid reports whether k is part of the closed vocabulary.
func (k Kind) Valid() bool {
	_, ok := displayNames[k]
	return ok
}

// ParseKind decodes a machine value into a Kind.
// It returns an error for values outside the closed vocabulary.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown relationship type %q", s)
	}
	return k, nil
}

// Kinds returns all relationship kinds sorted by machine value.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(displayNames))
	for k := range displayNames {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
