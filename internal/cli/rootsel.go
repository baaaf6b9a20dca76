package cli

import (
	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/errors"
)

// rootSelCommand creates the root command group for choosing the tree root.
func (c *CLI) rootSelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Choose the person the tree is drawn from",
		Long: `Choose the person the tree is drawn from.

Without a root, rendering starts from the first person with no parents.`,
	}
	cmd.AddCommand(c.rootSetCommand())
	cmd.AddCommand(c.rootClearCommand())
	cmd.AddCommand(c.rootShowCommand())
	return cmd
}

func (c *CLI) rootSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id>",
		Short: "Set the tree root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if !st.SetRoot(args[0]) {
				return errors.New(errors.ErrCodePersonNotFound, "no person with ID %q", args[0])
			}
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Root set to %s", personLabel(st, args[0]))
			return nil
		},
	}
}

func (c *CLI) rootClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the tree root (rendering infers one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			st.ClearRoot()
			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Root cleared")
			return nil
		},
	}
}

func (c *CLI) rootShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current tree root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if st.Root() == "" {
				printInfo("No root selected (auto)")
				return nil
			}
			printKeyValue("Root", personLabel(st, st.Root()))
			return nil
		},
	}
}
