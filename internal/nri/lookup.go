// Package nri builds tract risk score lookups from the FEMA National Risk
// Index census tract table.
package nri

import (
	"encoding/csv"
	"io"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// noRating is the sentinel FEMA writes for hazards a tract is not rated for.
const noRating = "No Rating"

// requiredColumns are the NRI table columns the builder reads. A table
// missing any of them fails the run before row processing starts.
var requiredColumns = []string{
	"TRACTFIPS",
	"WFIR_RISKS", "IFLD_RISKS", "CFLD_RISKS", "ERQK_RISKS",
	"WFIR_RISKR", "IFLD_RISKR", "CFLD_RISKR", "ERQK_RISKR",
	"RISK_SCORE", "RISK_RATNG",
}

// RiskProfile holds the derived risk fields for one census tract.
type RiskProfile struct {
	ScoreWildfire   float64
	ScoreFlood      float64
	ScoreEarthquake float64
	ScoreComposite  float64

	PctWildfire   float64
	PctFlood      float64
	PctEarthquake float64

	WildfireRating   string
	FloodRating      string
	EarthquakeRating string
	OverallRating    string

	StateFIPS  string
	CountyFIPS string
	TractFIPS  string
}

// Properties flattens the profile into GeoJSON feature properties.
func (p RiskProfile) Properties() map[string]any {
	return map[string]any{
		"score_wildfire":   p.ScoreWildfire,
		"score_flood":      p.ScoreFlood,
		"score_earthquake": p.ScoreEarthquake,
		"score_composite":  p.ScoreComposite,

		"pct_wildfire":   p.PctWildfire,
		"pct_flood":      p.PctFlood,
		"pct_earthquake": p.PctEarthquake,

		"wildfire_rating":   p.WildfireRating,
		"flood_rating":      p.FloodRating,
		"earthquake_rating": p.EarthquakeRating,
		"overall_rating":    p.OverallRating,

		"state_fips":  p.StateFIPS,
		"county_fips": p.CountyFIPS,
		"tract_fips":  p.TractFIPS,
	}
}

// Lookup maps canonical 11-digit tract FIPS codes to risk profiles. It
// preserves source-row order so output is deterministic; overwriting an
// existing key keeps its original position.
type Lookup struct {
	keys     []string
	profiles map[string]RiskProfile
}

// NewLookup returns an empty lookup.
func NewLookup() *Lookup {
	return &Lookup{profiles: make(map[string]RiskProfile)}
}

// Put inserts or replaces the profile for fips. Last write wins.
func (l *Lookup) Put(fips string, p RiskProfile) {
	if _, ok := l.profiles[fips]; !ok {
		l.keys = append(l.keys, fips)
	}
	l.profiles[fips] = p
}

// Get returns the profile for fips.
func (l *Lookup) Get(fips string) (RiskProfile, bool) {
	p, ok := l.profiles[fips]
	return p, ok
}

// Len returns the number of tracts in the lookup.
func (l *Lookup) Len() int {
	return len(l.keys)
}

// Keys returns the tract FIPS codes in insertion order. The returned slice
// is shared; callers must not modify it.
func (l *Lookup) Keys() []string {
	return l.keys
}

// BuildResult reports row-level outcomes of a lookup build.
type BuildResult struct {
	// Skipped counts rows whose TRACTFIPS did not normalize to 11 digits.
	Skipped int
}

// BuildLookup streams the NRI census tract CSV and returns a lookup keyed by
// canonical tract FIPS. stateFilter, when non-empty, restricts rows to
// tracts whose FIPS starts with that prefix; filtered rows are not counted
// as skipped. Duplicate tract codes overwrite earlier rows.
func BuildLookup(r io.Reader, stateFilter string) (*Lookup, BuildResult, error) {
	var res BuildResult

	// The NRI download ships with a UTF-8 BOM; tolerate it either way.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, res, eris.Wrap(err, "nri: read csv header")
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, res, eris.Errorf("nri: csv missing required columns: %s", strings.Join(missing, ", "))
	}

	get := func(record []string, col string) string {
		idx := colIdx[col]
		if idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	lookup := NewLookup()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, res, eris.Wrap(err, "nri: read csv row")
		}

		fips := CleanFIPS(get(record, "TRACTFIPS"))
		if len(fips) != 11 {
			res.Skipped++
			continue
		}
		if stateFilter != "" && !strings.HasPrefix(fips, stateFilter) {
			continue
		}

		wildfire := parseFloatOr(get(record, "WFIR_RISKS"), 0)
		inland := parseFloatOr(get(record, "IFLD_RISKS"), 0)
		coastal := parseFloatOr(get(record, "CFLD_RISKS"), 0)
		earthquake := parseFloatOr(get(record, "ERQK_RISKS"), 0)
		flood := math.Max(inland, coastal)

		state, county := SplitFIPS(fips)

		lookup.Put(fips, RiskProfile{
			ScoreWildfire:   PercentileToUnit(wildfire),
			ScoreFlood:      PercentileToUnit(flood),
			ScoreEarthquake: PercentileToUnit(earthquake),
			ScoreComposite:  Composite(wildfire, flood, earthquake),

			PctWildfire:   round2(wildfire),
			PctFlood:      round2(flood),
			PctEarthquake: round2(earthquake),

			WildfireRating:   get(record, "WFIR_RISKR"),
			FloodRating:      floodRatingFor(inland, coastal, get(record, "IFLD_RISKR"), get(record, "CFLD_RISKR")),
			EarthquakeRating: get(record, "ERQK_RISKR"),
			OverallRating:    get(record, "RISK_RATNG"),

			StateFIPS:  state,
			CountyFIPS: county,
			TractFIPS:  fips,
		})
	}

	return lookup, res, nil
}

// floodRatingFor picks the rating string from whichever flood sub-hazard has
// the higher raw percentile; inland wins ties. When the winner is unrated,
// fall back to inland unless inland is itself the sentinel, in which case
// coastal is used even if it carries the sentinel too.
func floodRatingFor(inlandPct, coastalPct float64, inlandRating, coastalRating string) string {
	rating := coastalRating
	if inlandPct >= coastalPct {
		rating = inlandRating
	}
	if rating == "" || rating == noRating {
		if inlandRating != noRating {
			rating = inlandRating
		} else {
			rating = coastalRating
		}
	}
	return rating
}
