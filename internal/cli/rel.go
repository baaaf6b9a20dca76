package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/model"
	"github.com/lhartmann/guestree/pkg/store"
)

// relCommand creates the rel command group.
func (c *CLI) relCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rel",
		Short: "Manage relationships between people",
		Long: `Manage relationships between people.

Relationship types: ` + kindList() + `.

parent_child is directed (first person is the parent); every other type is
symmetric, so the order of the two people does not matter.`,
	}
	cmd.AddCommand(c.relAddCommand())
	cmd.AddCommand(c.relListCommand())
	cmd.AddCommand(c.relRemoveCommand())
	return cmd
}

func kindList() string {
	kinds := model.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func (c *CLI) relAddCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add <person1> <person2> <type>",
		Short: "Connect two people",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeUnknownKind, "%s (valid: %s)", err, kindList())
			}

			st, err := c.loadStore()
			if err != nil {
				return err
			}

			p1, p2 := args[0], args[1]
			for _, id := range []string{p1, p2} {
				if !st.Has(id) {
					return errors.New(errors.ErrCodePersonNotFound, "no person with ID %q", id)
				}
			}

			if !st.AddRelationship(p1, p2, kind, notes) {
				printWarning("That relationship already exists (or connects a person to themselves).")
				return nil
			}
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Added %s: %s %s %s", kind.DisplayName(), p1, iconArrow, p2)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func (c *CLI) relListCommand() *cobra.Command {
	var of string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			rels := st.Relationships()
			if of != "" {
				rels = st.RelationshipsOf(of)
			}
			if len(rels) == 0 {
				printInfo("No relationships yet. Add one with: %s rel add <id> <id> <type>", appName)
				return nil
			}

			for _, r := range rels {
				arrow := iconArrow
				if !r.Directed() {
					arrow = "·"
				}
				line := fmt.Sprintf("%s %s %s  %s",
					StyleHighlight.Render(personLabel(st, r.Person1)),
					StyleDim.Render(arrow),
					StyleHighlight.Render(personLabel(st, r.Person2)),
					StyleDim.Render(r.Kind.DisplayName()))
				if r.Notes != "" {
					line += "  " + StyleDim.Render(r.Notes)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&of, "of", "", "only relationships touching this person ID")
	return cmd
}

func (c *CLI) relRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <person1> <person2> <type>",
		Short: "Remove a relationship",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeUnknownKind, "%s (valid: %s)", err, kindList())
			}

			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if !st.RemoveRelationship(args[0], args[1], kind) {
				printWarning("No such relationship.")
				return nil
			}
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Removed %s: %s %s %s", kind.DisplayName(), args[0], iconArrow, args[1])
			return nil
		},
	}
}

// personLabel formats "Name (P0001)" for display, falling back to the bare
// ID for dangling references.
func personLabel(st *store.Store, id string) string {
	if p, ok := st.Person(id); ok {
		return fmt.Sprintf("%s (%s)", p.Name, id)
	}
	return id
}
