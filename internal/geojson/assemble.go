package geojson

import (
	"github.com/sells-group/riskindex-cli/internal/nri"
)

// JoinReport counts geometry-join outcomes.
type JoinReport struct {
	Matched   int
	Unmatched int
}

// ScoresOnly emits one null-geometry feature per lookup entry, in lookup
// insertion order.
func ScoresOnly(lookup *nri.Lookup) []Feature {
	features := make([]Feature, 0, lookup.Len())
	for _, fips := range lookup.Keys() {
		profile, ok := lookup.Get(fips)
		if !ok {
			continue
		}
		props := profile.Properties()
		props[TractFIPSKey] = fips
		features = append(features, Feature{Type: "Feature", Properties: props})
	}
	return features
}

// JoinGeometry merges lookup profiles onto geometry features by normalized
// tract identifier, preserving source feature order and any properties the
// profile does not overwrite. Features with no identifier or no matching
// profile are dropped and counted, never fatal.
func JoinGeometry(lookup *nri.Lookup, source []Feature) ([]Feature, JoinReport) {
	var report JoinReport
	features := make([]Feature, 0, len(source))

	for _, feat := range source {
		fips := nri.CleanFIPS(feat.GeoID())
		profile, ok := lookup.Get(fips)
		if !ok {
			report.Unmatched++
			continue
		}

		props := make(map[string]any, len(feat.Properties)+14)
		for k, v := range feat.Properties {
			props[k] = v
		}
		for k, v := range profile.Properties() {
			props[k] = v
		}
		props[TractFIPSKey] = fips

		feat.Properties = props
		features = append(features, feat)
		report.Matched++
	}

	return features, report
}
