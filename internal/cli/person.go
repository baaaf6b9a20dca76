package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/errors"
)

// personCommand creates the person command group.
func (c *CLI) personCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people on the guest list",
	}
	cmd.AddCommand(c.personAddCommand())
	cmd.AddCommand(c.personListCommand())
	cmd.AddCommand(c.personDeleteCommand())
	return cmd
}

func (c *CLI) personAddCommand() *cobra.Command {
	var (
		side    string
		notes   string
		email   string
		phone   string
		invited bool
		plusOne bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errors.ValidatePersonName(name); err != nil {
				return err
			}

			st, err := c.loadStore()
			if err != nil {
				return err
			}

			id := st.AddPerson(name, side, notes, invited, plusOne, email, phone)
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Added %s (%s)", name, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&side, "side", "", "side / group label (e.g. Bride, Groom, Family)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().BoolVar(&invited, "invited", true, "on the guest list")
	cmd.Flags().BoolVar(&plusOne, "plus-one", false, "plus one allowed")

	return cmd
}

func (c *CLI) personListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if st.PersonCount() == 0 {
				printInfo("No people yet. Add one with: %s person add <name>", appName)
				return nil
			}

			for _, row := range st.Rows() {
				label := row.Name
				if row.Side != "" {
					label += " (" + row.Side + ")"
				}
				status := "not invited"
				switch {
				case row.Invited && row.PlusOne:
					status = "invited +1"
				case row.Invited:
					status = "invited"
				}
				fmt.Println(StyleHighlight.Render(row.ID) + "  " + StyleValue.Render(label) + "  " + StyleDim.Render(status))
			}
			printGraphStats(st.PersonCount(), st.RelationshipCount(), false)
			return nil
		},
	}
}

func (c *CLI) personDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person and every relationship touching them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			p, ok := st.Person(id)
			if !ok {
				return errors.New(errors.ErrCodePersonNotFound, "no person with ID %q", id)
			}

			st.DeletePerson(id)
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Deleted %s (%s)", p.Name, id)
			return nil
		},
	}
}
