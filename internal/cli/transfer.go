package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/errors"
	"github.com/lhartmann/guestree/pkg/guestlist"
	"github.com/lhartmann/guestree/pkg/snapshot"
)

// exportCommand creates the export command group.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the snapshot or the guest list",
	}
	cmd.AddCommand(c.exportJSONCommand())
	cmd.AddCommand(c.exportCSVCommand())
	return cmd
}

func (c *CLI) exportJSONCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export the full snapshot (people, relationships, root)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if output == "" {
				return snapshot.Write(st, os.Stdout)
			}
			if err := snapshot.ExportFile(st, output); err != nil {
				return err
			}
			printSuccess("Exported snapshot")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) exportCSVCommand() *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export the guest list as CSV",
		Long: `Export the guest list as CSV.

Columns: Name, Side, Email, Phone, Notes, PlusOne. Rows are sorted by
(Side, Name). PlusOne reads "Yes" only for invited people with a plus-one.
By default only invited people are exported; --all includes everyone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			if output == "" {
				return guestlist.WriteCSV(st, !all, os.Stdout)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			if err := guestlist.WriteCSV(st, !all, f); err != nil {
				return err
			}
			printSuccess("Exported guest list")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&all, "all", false, "include people not on the guest list")
	return cmd
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the session with a snapshot file",
		Long: `Replace the session with a snapshot file.

The import is atomic: the file is parsed completely before anything is
replaced, so a malformed snapshot leaves the current session untouched.
Files written before relationships were typed (entries with "parent" and
"child" fields) are read as parent-child relationships.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := snapshot.ImportFile(args[0])
			if err != nil {
				if errors.Is(err, errors.ErrCodeInvalidSnapshot) || errors.Is(err, errors.ErrCodeUnknownKind) {
					return fmt.Errorf("import failed, session unchanged: %s", errors.UserMessage(err))
				}
				return err
			}

			if err := c.saveStore(st); err != nil {
				return err
			}

			printSuccess("Imported %d people, %d relationships", st.PersonCount(), st.RelationshipCount())
			return nil
		},
	}
}
