// Package model defines the core records of the guest graph: people and the
// typed relationships between them.
//
// A [Person] is identified by a store-assigned ID of the form "P0001". A
// [Relationship] connects two people and carries a [Kind] from a closed
// vocabulary. Only [KindParentChild] is directed; every other kind is
// symmetric, so (A, B, spouse) and (B, A, spouse) denote the same relationship.
package model

// Person represents one entry on the guest list and one node in the tree.
//
// ID is assigned by the store and immutable once set. Name is the only
// required field. Side is a free-text group label ("Bride", "Groom", ...).
// Expanded is a UI-only flag carried through serialization untouched.
type Person struct {
	ID       string
	Name     string
	Side     string
	Notes    string
	Invited  bool
	PlusOne  bool
	Email    string
	Phone    string
	Expanded bool
}

// Relationship is a typed connection between two people.
//
// For [KindParentChild], Person1 is the parent and Person2 the child. For all
// other kinds the endpoints are interchangeable.
type Relationship struct {
	Person1 string
	Person2 string
	Kind    Kind
	Notes   string
}

// Directed reports whether the relationship's endpoints have asymmetric roles.
func (r Relationship) Directed() bool { return r.Kind.Directed() }

// ParentChildPair returns the (parent, child) endpoints of a directed
// relationship. ok is false for undirected kinds.
func (r Relationship) ParentChildPair() (parent, child string, ok bool) {
	if r.Kind != KindParentChild {
		return "", "", false
	}
	return r.Person1, r.Person2, true
}

// Touches reports whether id is one of the relationship's endpoints.
func (r Relationship) Touches(id string) bool {
	return r.Person1 == id || r.Person2 == id
}

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (r Relationship) Other(id string) string {
	switch id {
	case r.Person1:
		return r.Person2
	case r.Person2:
		return r.Person1
	}
	return ""
}

// Same reports whether o denotes the same relationship under the duplicate
// rule: directed kinds compare ordered, undirected kinds compare unordered.
func (r Relationship) Same(o Relationship) bool {
	if r.Kind != o.Kind {
		return false
	}
	if r.Person1 == o.Person1 && r.Person2 == o.Person2 {
		return true
	}
	if r.Directed() {
		return false
	}
	return r.Person1 == o.Person2 && r.Person2 == o.Person1
}
