package nri

import "strings"

// CleanFIPS normalizes a raw TRACTFIPS value to the canonical 11-digit form.
// The NRI export prefixes tract codes with a literal apostrophe so
// spreadsheets keep the leading zeros; strip one, trim whitespace, and
// left-pad with zeros to 11 digits. Longer values are never truncated.
func CleanFIPS(raw string) string {
	fips := strings.TrimPrefix(strings.TrimSpace(raw), "'")
	fips = strings.TrimSpace(fips)
	if fips == "" {
		return ""
	}
	for len(fips) < 11 {
		fips = "0" + fips
	}
	return fips
}

// SplitFIPS decomposes an 11-digit tract FIPS code into its 2-digit state
// and 3-digit county components.
func SplitFIPS(fips string) (state, county string) {
	if len(fips) < 5 {
		return "", ""
	}
	return fips[:2], fips[2:5]
}
