package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dosecron/dosecron/holiday"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries with available holiday calendars",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tCOUNTRY")
		for _, c := range holiday.SupportedCountries {
			fmt.Fprintf(tw, "%s\t%s\n", c.Code, c.Name)
		}
		return tw.Flush()
	},
}
