package store

import (
	"sort"
	"strings"

	"github.com/lhartmann/guestree/pkg/model"
)

// Row is one editable line of the guest table.
// A blank ID marks a new person; a known ID updates the matching person.
type Row struct {
	ID       string
	Name     string
	Side     string
	Invited  bool
	PlusOne  bool
	Email    string
	Phone    string
	Notes    string
	Expanded bool
}

// EditResult summarizes what a table reconciliation did.
type EditResult struct {
	Created int
	Updated int
	Removed int
}

// Rows returns the full guest table sorted by (Side, Name), the order the
// table view displays.
func (s *Store) Rows() []Row {
	rows := make([]Row, 0, len(s.people))
	for _, id := range s.order {
		p := s.people[id]
		rows = append(rows, Row{
			ID:       p.ID,
			Name:     p.Name,
			Side:     p.Side,
			Invited:  p.Invited,
			PlusOne:  p.PlusOne,
			Email:    p.Email,
			Phone:    p.Phone,
			Notes:    p.Notes,
			Expanded: p.Expanded,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Side != rows[j].Side {
			return rows[i].Side < rows[j].Side
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// ApplyTableEdits reconciles the store against an externally edited row set.
//
// rows must be the COMPLETE table: any existing person whose ID does not
// appear among the processed rows is deleted. Feeding a partial view here
// would wipe everyone off-screen.
//
// Per row: a blank trimmed name skips the row entirely (it neither creates a
// person nor retains an existing one). A known ID updates that person's
// mutable fields; anything else creates a new person with a fresh ID.
func (s *Store) ApplyTableEdits(rows []Row) EditResult {
	var res EditResult
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		id := strings.TrimSpace(row.ID)
		if id != "" && s.Has(id) {
			s.UpdatePerson(model.Person{
				ID:       id,
				Name:     name,
				Side:     row.Side,
				Notes:    row.Notes,
				Invited:  row.Invited,
				PlusOne:  row.PlusOne,
				Email:    row.Email,
				Phone:    row.Phone,
				Expanded: row.Expanded,
			})
			seen[id] = true
			res.Updated++
			continue
		}

		newID := s.AddPerson(name, row.Side, row.Notes, row.Invited, row.PlusOne, row.Email, row.Phone)
		seen[newID] = true
		res.Created++
	}

	for _, id := range s.IDs() {
		if !seen[id] {
			s.DeletePerson(id)
			res.Removed++
		}
	}
	return res
}
