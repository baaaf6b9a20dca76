// Package render converts the guest graph into drawing-surface descriptors
// and Graphviz output.
//
// The package produces three things: node descriptors (label plus a fill
// color encoding invite state), edge descriptors (direction, line style,
// color and label per relationship kind), and DOT text that groups each
// generation onto one rank. [RenderSVG] and [RenderPNG] rasterize the DOT
// via Graphviz.
package render

import (
	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

// Node fill colors by invite state.
const (
	ColorInvited        = "lightblue"  // invited, no plus-one
	ColorInvitedPlusOne = "lightgreen" // invited with plus-one
	ColorNotInvited     = "lightgray"  // not on the guest list
)

// NodeDescriptor describes one person to the drawing surface.
type NodeDescriptor struct {
	ID        string
	Label     string
	FillColor string
}

// EdgeDescriptor describes one relationship to the drawing surface.
type EdgeDescriptor struct {
	From     string
	To       string
	Directed bool
	Style    string // solid, bold, dashed, dotted
	Color    string
	Label    string
}

// edgeStyle is the fixed style/color/label combination for one kind.
type edgeStyle struct {
	style string
	color string
	label string
}

// edgeStyles maps each relationship kind to its rendering. Parent-child
// edges are solid, directed and unlabeled; every other kind is undirected
// with its own combination.
var edgeStyles = map[model.Kind]edgeStyle{
	model.KindParentChild:  {style: "solid", color: "black"},
	model.KindSpouse:       {style: "bold", color: "darkgoldenrod", label: "spouse"},
	model.KindPartner:      {style: "dashed", color: "purple", label: "partner"},
	model.KindSibling:      {style: "dotted", color: "steelblue", label: "sibling"},
	model.KindFriend:       {style: "dashed", color: "forestgreen", label: "friend"},
	model.KindAcquaintance: {style: "dotted", color: "gray50", label: "acquaintance"},
}

// NodeFill returns the fill color encoding a person's invite state.
func NodeFill(p model.Person) string {
	switch {
	case !p.Invited:
		return ColorNotInvited
	case p.PlusOne:
		return ColorInvitedPlusOne
	default:
		return ColorInvited
	}
}

// NodeLabel returns the display label: the name, with the side group on a
// second line when present.
func NodeLabel(p model.Person) string {
	if p.Side != "" {
		return p.Name + "\n(" + p.Side + ")"
	}
	return p.Name
}

// Nodes builds node descriptors for every person, in store order.
func Nodes(st *store.Store) []NodeDescriptor {
	people := st.People()
	out := make([]NodeDescriptor, len(people))
	for i, p := range people {
		out[i] = NodeDescriptor{
			ID:        p.ID,
			Label:     NodeLabel(p),
			FillColor: NodeFill(p),
		}
	}
	return out
}

// Edges builds edge descriptors for every relationship, in store order.
func Edges(st *store.Store) []EdgeDescriptor {
	rels := st.Relationships()
	out := make([]EdgeDescriptor, len(rels))
	for i, r := range rels {
		es := edgeStyles[r.Kind]
		out[i] = EdgeDescriptor{
			From:     r.Person1,
			To:       r.Person2,
			Directed: r.Directed(),
			Style:    es.style,
			Color:    es.color,
			Label:    es.label,
		}
	}
	return out
}
