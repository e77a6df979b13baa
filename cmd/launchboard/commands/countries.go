package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backyonatan-alt/launchboard/internal/clock"
	"github.com/backyonatan-alt/launchboard/internal/country"
)

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the selectable countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range country.List() {
				fmt.Fprintf(out, "%s %-10s %-20s %s\n", c.Flag, c.Name, c.ZoneID, c.Image)
			}
			return nil
		},
	}
}

func timeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time <country>",
		Short: "Print the current time in a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := country.Default().Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), clock.New().CurrentTimeAt(c))
			return nil
		},
	}
}
