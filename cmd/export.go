package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/riskindex-cli/internal/geojson"
	"github.com/sells-group/riskindex-cli/internal/nri"
	"github.com/sells-group/riskindex-cli/internal/tract"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert the NRI census tract CSV to a GeoJSON FeatureCollection",
	Long: `Reads the FEMA National Risk Index census tract table and writes a GeoJSON
FeatureCollection of wildfire, flood, and earthquake risk scores.

With --tracts, scores are joined onto tract boundary geometries from a GeoJSON
FeatureCollection or a TIGER/Line shapefile (.shp); geometries without score
data are dropped. Without --tracts (or with --no-geometry), one null-geometry
feature is emitted per tract.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		tractsPath, _ := cmd.Flags().GetString("tracts")
		noGeometry, _ := cmd.Flags().GetBool("no-geometry")
		state, _ := cmd.Flags().GetString("state")
		out, _ := cmd.Flags().GetString("out")

		if state == "" {
			state = cfg.Export.StateFilter
		}
		if out == "" {
			out = cfg.Export.Out
		}

		log := zap.L().With(zap.String("command", "export"))

		f, err := os.Open(csvPath)
		if err != nil {
			return eris.Wrapf(err, "export: open csv %s", csvPath)
		}
		defer func() { _ = f.Close() }()

		log.Info("reading NRI table", zap.String("csv", csvPath), zap.String("state", state))
		lookup, build, err := nri.BuildLookup(f, state)
		if err != nil {
			return err
		}
		if build.Skipped > 0 {
			log.Warn("skipped rows with invalid TRACTFIPS", zap.Int("skipped", build.Skipped))
		}
		log.Info("loaded tract scores", zap.Int("tracts", lookup.Len()))

		var features []geojson.Feature
		if noGeometry || tractsPath == "" {
			if tractsPath != "" {
				log.Warn("--tracts ignored because --no-geometry was set")
			}
			features = geojson.ScoresOnly(lookup)
		} else {
			source, err := readTracts(tractsPath)
			if err != nil {
				return err
			}

			var report geojson.JoinReport
			features, report = geojson.JoinGeometry(lookup, source)
			log.Info("joined tract geometries",
				zap.Int("matched", report.Matched),
				zap.Int("unmatched", report.Unmatched),
			)
		}

		if err := geojson.WriteFile(out, features); err != nil {
			return err
		}
		log.Info("wrote feature collection", zap.String("out", out), zap.Int("features", len(features)))

		printSample(features, cfg.Export.SampleSize)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("csv", "", "path to NRI_Table_CensusTracts.csv (required)")
	exportCmd.Flags().String("tracts", "", "tract geometries: GeoJSON FeatureCollection or TIGER/Line .shp")
	exportCmd.Flags().Bool("no-geometry", false, "emit scores-only features with null geometry")
	exportCmd.Flags().String("state", "", "filter to a state FIPS prefix, e.g. 06 for California")
	exportCmd.Flags().String("out", "", "output path (default from config)")
	_ = exportCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(exportCmd)
}

// readTracts loads geometry features from a GeoJSON document or, for .shp
// paths, a TIGER/Line shapefile.
func readTracts(path string) ([]geojson.Feature, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		features, skipped, err := tract.ReadShapefile(path)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			zap.L().Debug("skipped shapefile records without usable geometry", zap.Int("skipped", skipped))
		}
		return features, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open tracts %s", path)
	}
	defer func() { _ = f.Close() }()

	fc, err := geojson.ReadFeatureCollection(f)
	if err != nil {
		return nil, err
	}
	return fc.Features, nil
}

// printSample prints the first few output features as a quick sanity check.
func printSample(features []geojson.Feature, n int) {
	if n > len(features) {
		n = len(features)
	}
	for _, feat := range features[:n] {
		p := feat.Properties
		fmt.Printf("  %v  wildfire=%v flood=%v earthquake=%v composite=%v [%v]\n",
			p["tract_fips"], p["score_wildfire"], p["score_flood"],
			p["score_earthquake"], p["score_composite"], p["overall_rating"])
	}
}
