package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lingmatch/profile"
)

func newProfilesCmd() *cobra.Command {
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available baseline profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := profile.Defaults()
			if profilesPath != "" {
				f, err := os.Open(profilesPath)
				if err != nil {
					return err
				}
				defer f.Close()
				table, err = profile.LoadCSV(f)
				if err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprint(tw, "NAME")
			for _, col := range table.Columns() {
				fmt.Fprintf(tw, "\t%s", col)
			}
			fmt.Fprintln(tw)
			for _, name := range table.Names() {
				fmt.Fprint(tw, name)
				values, _ := table.Profile(name)
				for _, v := range values {
					fmt.Fprintf(tw, "\t%.3f", v)
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&profilesPath, "profiles", "", "CSV of baseline profiles replacing the built-in table")

	return cmd
}

func init() {
	rootCmd.AddCommand(newProfilesCmd())
}
