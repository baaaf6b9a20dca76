package cli

import (

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/errors"
)

func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the guest table interactively",
		Long: `Open an interactive table of all people for bulk editing.

Changes are reconciled against the stored graph on save: edited rows
update existing people, rows without an ID create new ones, and people
missing from the table are removed along with their relationships.
Quit without saving (q) to discard all changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				printError("Failed to load data: %s", errors.UserMessage(err))
				return err
			}

			model := NewEditorModel(st.Rows())
			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "editor failed")
			}

			result, ok := final.(EditorModel)
			if !ok || !result.Saved {
				printInfo("No changes saved")
				return nil
			}

			edits := st.ApplyTableEdits(result.Rows)
			if err := c.saveStore(st); err != nil {
				printError("Failed to save: %s", errors.UserMessage(err))
				return err
			}

			printSuccess("Guest table saved")
			printDetail("%d created, %d updated, %d removed",
				edits.Created, edits.Updated, edits.Removed)
			return nil
		},
	}
	return cmd
}
