package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/riskindex-cli/internal/nri"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize an NRI census tract table without writing output",
	RunE: func(cmd *cobra.Command, _ []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		state, _ := cmd.Flags().GetString("state")

		f, err := os.Open(csvPath)
		if err != nil {
			return eris.Wrapf(err, "inspect: open csv %s", csvPath)
		}
		defer func() { _ = f.Close() }()

		lookup, build, err := nri.BuildLookup(f, state)
		if err != nil {
			return err
		}

		fmt.Printf("Tracts:       %d\n", lookup.Len())
		fmt.Printf("Skipped rows: %d\n", build.Skipped)

		if lookup.Len() == 0 {
			return nil
		}

		printStateSummary(lookup)
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("csv", "", "path to NRI_Table_CensusTracts.csv (required)")
	inspectCmd.Flags().String("state", "", "filter to a state FIPS prefix")
	_ = inspectCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(inspectCmd)
}

// printStateSummary displays per-state tract counts and mean composite scores.
func printStateSummary(lookup *nri.Lookup) {
	counts := make(map[string]int)
	sums := make(map[string]float64)

	for _, fips := range lookup.Keys() {
		profile, ok := lookup.Get(fips)
		if !ok {
			continue
		}
		counts[profile.StateFIPS]++
		sums[profile.StateFIPS] += profile.ScoreComposite
	}

	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Strings(states)

	fmt.Printf("\n%-6s %8s %15s\n", "State", "Tracts", "Mean composite")
	fmt.Println(strings.Repeat("-", 31))
	for _, s := range states {
		fmt.Printf("%-6s %8d %15.4f\n", s, counts[s], sums[s]/float64(counts[s]))
	}
}
