package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show guest-list metrics",
		Long: `Show guest-list metrics.

The guest count is one per invited person, plus one more for each invited
person with a plus-one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}

			printKeyValue("Total people", strconv.Itoa(st.PersonCount()))
			printKeyValue("On guest list", strconv.Itoa(st.InvitedCount()))
			printKeyValue("Guest count (+1s)", strconv.Itoa(st.UniqueGuestCount()))
			printKeyValue("Relationships", strconv.Itoa(st.RelationshipCount()))
			return nil
		},
	}
}
