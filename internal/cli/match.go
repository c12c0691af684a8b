package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lingmatch"
	"github.com/hupe1980/lingmatch/metric"
	"github.com/hupe1980/lingmatch/profile"
)

type matchFlags struct {
	comp      string
	dataPath  string
	compData  string
	compGroup string
	groups    []string
	order     string
	metrics   []string
	preset    string
	drop      bool
	allLevels bool
	format    string
	profiles  string
}

func newMatchCmd() *cobra.Command {
	var flags matchFlags

	cmd := &cobra.Command{
		Use:   "match INPUT",
		Short: "Score an input file against a comparison",
		Long: `Score the rows of INPUT against a comparison. INPUT is either a CSV
feature matrix (header row of column names, optional leading label column)
or a plain text file with one document per line.

The comparison is a keyword ("pairwise", "sequential", "auto", or a profile
name such as "blogs"), a column name resolved against --data, or omitted for
the default group-mean / pairwise behavior.`,
		Example: `  lingmatch match features.csv --comp blogs --metrics canberra
  lingmatch match turns.csv --comp sequential --data meta.csv --group speaker
  lingmatch match texts.txt --type lsm --group condition --output csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.comp, "comp", "c", "", "comparison: keyword, profile name, or column reference")
	cmd.Flags().StringVar(&flags.dataPath, "data", "", "CSV of auxiliary columns (groups, order, comparison vectors)")
	cmd.Flags().StringVar(&flags.compData, "comp-data", "", "CSV of comparison-side columns")
	cmd.Flags().StringVar(&flags.compGroup, "comp-group", "", "comparison-side grouping column")
	cmd.Flags().StringSliceVarP(&flags.groups, "group", "g", nil, "grouping columns, outer to inner")
	cmd.Flags().StringVar(&flags.order, "order", "", "row-order column, or comma-separated indices")
	cmd.Flags().StringSliceVarP(&flags.metrics, "metrics", "m", nil, "metrics to compute (jaccard, euclidean, canberra, cosine, pearson)")
	cmd.Flags().StringVarP(&flags.preset, "type", "t", "", "metric preset: lsm, lsa, or default")
	cmd.Flags().BoolVar(&flags.drop, "drop", false, "drop all-zero columns before scoring")
	cmd.Flags().BoolVar(&flags.allLevels, "all-levels", false, "report each grouping depth instead of the composite")
	cmd.Flags().StringVarP(&flags.format, "output", "o", "yaml", "output format: yaml or csv")
	cmd.Flags().StringVar(&flags.profiles, "profiles", "", "CSV of baseline profiles replacing the built-in table")

	return cmd
}

func runMatch(inputPath string, flags matchFlags) error {
	input, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	engineOpts := []lingmatch.Option{
		lingmatch.WithLogLevel(logLevel()),
	}
	if flags.profiles != "" {
		f, err := os.Open(flags.profiles)
		if err != nil {
			return fmt.Errorf("open profiles: %w", err)
		}
		table, err := profile.LoadCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
		engineOpts = append(engineOpts, lingmatch.WithProfiles(table))
	}

	engine := lingmatch.New(engineOpts...)

	matchOpts, err := buildMatchOptions(flags)
	if err != nil {
		return err
	}

	out, err := engine.Match(input, matchOpts...)
	if err != nil {
		return err
	}

	switch flags.format {
	case "yaml":
		return writeYAML(os.Stdout, buildReport(out))
	case "csv":
		return writeCSV(os.Stdout, out)
	default:
		return fmt.Errorf("unknown output format %q (want yaml or csv)", flags.format)
	}
}

func buildMatchOptions(flags matchFlags) ([]lingmatch.MatchOption, error) {
	var opts []lingmatch.MatchOption

	if flags.comp != "" {
		opts = append(opts, lingmatch.Comparison(flags.comp))
	}
	if flags.dataPath != "" {
		ds, err := readDatasetCSV(flags.dataPath)
		if err != nil {
			return nil, fmt.Errorf("read data: %w", err)
		}
		opts = append(opts, lingmatch.Data(ds))
	}
	if flags.compData != "" {
		ds, err := readDatasetCSV(flags.compData)
		if err != nil {
			return nil, fmt.Errorf("read comp-data: %w", err)
		}
		opts = append(opts, lingmatch.CompData(ds))
	}
	if flags.compGroup != "" {
		opts = append(opts, lingmatch.CompGroup(flags.compGroup))
	}
	for _, g := range flags.groups {
		opts = append(opts, lingmatch.Group(g))
	}
	if flags.order != "" {
		opts = append(opts, lingmatch.Order(parseOrder(flags.order)))
	}
	if flags.preset != "" {
		opts = append(opts, lingmatch.Type(flags.preset))
	}
	if len(flags.metrics) > 0 {
		ms := make([]metric.Metric, 0, len(flags.metrics))
		for _, name := range flags.metrics {
			m, err := metric.Parse(name)
			if err != nil {
				return nil, err
			}
			ms = append(ms, m)
		}
		opts = append(opts, lingmatch.Metrics(ms...))
	}
	if flags.drop {
		opts = append(opts, lingmatch.Drop(true))
	}
	if flags.allLevels {
		opts = append(opts, lingmatch.AllLevels(true))
	}

	return opts, nil
}

// parseOrder interprets the --order flag. A comma-separated run of integers
// is an explicit permutation; anything else is a column reference.
func parseOrder(s string) any {
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return s
		}
		indices = append(indices, n)
	}
	if len(indices) < 2 {
		return s
	}
	return indices
}

func init() {
	rootCmd.AddCommand(newMatchCmd())
}
