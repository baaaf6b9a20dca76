// Package guestlist builds the flat guest-list export from the graph.
//
// The export is one row per person with the columns Name, Side, Email,
// Phone, Notes and PlusOne, sorted by (Side, Name). PlusOne reads "Yes" only
// when the person is both invited and allowed a plus-one.
package guestlist

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

// Header is the CSV column order.
var Header = []string{"Name", "Side", "Email", "Phone", "Notes", "PlusOne"}

// Entry is one guest-list row.
type Entry struct {
	Name    string
	Side    string
	Email   string
	Phone   string
	Notes   string
	PlusOne bool // invited AND plus-one allowed
}

// Build assembles the guest list sorted by (Side, Name).
// With invitedOnly set, people not on the guest list are skipped.
func Build(st *store.Store, invitedOnly bool) []Entry {
	var entries []Entry
	for _, p := range st.People() {
		if invitedOnly && !p.Invited {
			continue
		}
		entries = append(entries, Entry{
			Name:    p.Name,
			Side:    p.Side,
			Email:   p.Email,
			Phone:   p.Phone,
			Notes:   p.Notes,
			PlusOne: plusOne(p),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Side != entries[j].Side {
			return entries[i].Side < entries[j].Side
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// WriteCSV writes the guest list, header included, to w.
func WriteCSV(st *store.Store, invitedOnly bool, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range Build(st, invitedOnly) {
		plusOne := "No"
		if e.PlusOne {
			plusOne = "Yes"
		}
		if err := cw.Write([]string{e.Name, e.Side, e.Email, e.Phone, e.Notes, plusOne}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// plusOne reports whether the person contributes an extra seat.
func plusOne(p model.Person) bool {
	return p.Invited && p.PlusOne
}
