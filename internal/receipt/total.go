package receipt

import "regexp"

// totalResult is the outcome of looking for the stated receipt total.
type totalResult struct {
	Value       *float64
	Approximate bool
}

var (
	// "to al" is a recurring OCR misread of the word "total". Unlike the
	// date label repair this one does not raise a correction flag.
	totalLabelRepair = regexp.MustCompile(`(?i)to\s*al`)

	approximateMark = regexp.MustCompile(`(?i)aprox`)

	// Matchers tried in order; first match wins. The bare currency-amount
	// form comes last so a labelled total always takes precedence.
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TOTAL\s*R?\$?\s*(\d+[,.]\d{2})`),
		regexp.MustCompile(`(?i)TOTAL\s*=\s*(\d+[,.]\d{2})`),
		regexp.MustCompile(`(?i)(?:Sub\s*t|total)\s+(\d+[,.]\d+)`),
		regexp.MustCompile(`(?i)R\$\s*(\d+[,.]\d{2})`),
	}
)

// extractTotalValue repairs the fragmented "total" label, then tries the
// total patterns in order. The approximate marker is detected anywhere in
// the unrepaired input, independent of which pattern matches.
func extractTotalValue(text string) totalResult {
	repaired := totalLabelRepair.ReplaceAllString(text, "total")
	approximate := approximateMark.MatchString(text)

	for _, pattern := range totalPatterns {
		match := pattern.FindStringSubmatch(repaired)
		if match == nil {
			continue
		}
		value, ok := parseAmount(match[1])
		if !ok {
			continue
		}
		return totalResult{Value: &value, Approximate: approximate}
	}

	return totalResult{}
}
