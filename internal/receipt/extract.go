package receipt

import (
	"regexp"
	"strconv"
	"strings"
)

// extractEstablishment takes the first non-blank line that is not purely
// decorative punctuation and strips framing asterisks. It never applies
// corrections, only filtering.
func extractEstablishment(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || decorativeLine.MatchString(line) {
			continue
		}
		return strings.TrimSpace(decorativeEdges.ReplaceAllString(line, ""))
	}
	return ""
}

var (
	decorativeLine  = regexp.MustCompile(`^[*\-\s]+$`)
	decorativeEdges = regexp.MustCompile(`^\*+\s*|\s*\*+$`)
)

// taxIDResult is the outcome of looking for a CNPJ-like tax identifier.
type taxIDResult struct {
	Digits    string // raw digit run, empty when no label was found
	Formatted string // XX.XXX.XXX/XXXX-XX, empty unless exactly 14 digits
	Valid     bool
}

var (
	taxIDPattern = regexp.MustCompile(`(?i)CNPJ[:\s]*([0-9.\-/\s]+)`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// extractTaxID locates a labelled digit run and validates it as a CNPJ:
// exactly 14 digits, formatted 2-3-3-4-2, rejected when the sequence is a
// degenerate run of a single repeated digit.
func extractTaxID(text string) taxIDResult {
	match := taxIDPattern.FindStringSubmatch(text)
	if match == nil {
		return taxIDResult{}
	}

	digits := nonDigits.ReplaceAllString(match[1], "")
	if len(digits) != 14 {
		return taxIDResult{Digits: digits}
	}

	formatted := digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
	return taxIDResult{
		Digits:    digits,
		Formatted: formatted,
		Valid:     !allSameDigit(digits),
	}
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// dateResult carries both representations of an extracted date.
type dateResult struct {
	Display   string // DD/MM/YYYY
	Canonical string // YYYY-MM-DD
	Corrected bool
}

var (
	// "Da a:" is a recurring OCR misread of the "Data:" field label.
	dateLabelRepair = regexp.MustCompile(`(?i)Da\s*a:`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Data:?)?\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`),
		regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`),
	}
)

// extractDate repairs the known label misread, then matches a day/month/year
// triple separated by slashes or dashes. Two-digit years are expanded by
// prefixing "20". Calendar plausibility is not checked.
func extractDate(text string) dateResult {
	repaired := dateLabelRepair.ReplaceAllString(text, "Data:")
	corrected := repaired != text

	for _, pattern := range datePatterns {
		match := pattern.FindStringSubmatch(repaired)
		if match == nil {
			continue
		}
		day := pad2(match[1])
		month := pad2(match[2])
		year := match[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return dateResult{
			Display:   day + "/" + month + "/" + year,
			Canonical: year + "-" + month + "-" + day,
			Corrected: corrected,
		}
	}

	return dateResult{Corrected: corrected}
}

var timePattern = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)

// extractTime matches an hour/minute pair separated by ":" or ".". Time is
// decorative metadata and is never scored.
func extractTime(text string) string {
	match := timePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return pad2(match[1]) + ":" + match[2]
}

// paymentPattern pairs a label or keyword regexp with an optional canonical
// name. When Name is empty the captured free text is returned instead.
type paymentPattern struct {
	re   *regexp.Regexp
	name string
}

var paymentPatterns = []paymentPattern{
	{re: regexp.MustCompile(`(?i)Pagamento:\s*(.+)`)},
	{re: regexp.MustCompile(`(?i)Pgto\s+(.+)`)},
	{re: regexp.MustCompile(`(?i)Débito|Debito`), name: "Débito"},
	{re: regexp.MustCompile(`(?i)Crédito|Credito|Cart`), name: "Cartão"},
	{re: regexp.MustCompile(`(?i)Dinheiro|d\s*nh`), name: "Dinheiro"},
}

// extractPaymentMethod tries the payment patterns in declared order; the
// first match wins. Keyword matches yield a fixed canonical name, label
// matches yield the captured text.
func extractPaymentMethod(text string) string {
	for _, p := range paymentPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if p.name != "" {
			return p.name
		}
		if len(match) > 1 {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

var (
	serviceTaxPattern   = regexp.MustCompile(`(?i)Tx\s*serv\s*(\d+)%\s*(\d+[,.]\d+)`)
	changePattern       = regexp.MustCompile(`(?i)Rest\s*(\d+[,.]\d+)`)
	tablePattern        = regexp.MustCompile(`(?i)Mesa\s*(\d+)`)
	fuelVolumePattern   = regexp.MustCompile(`(?i)Vol:\s*(\d+[,.]\d+)\s*L`)
	pricePerUnitPattern = regexp.MustCompile(`(?i)Preco/L:\s*(\d+[,.]\d+)`)
)

// extractAdditionalInfo independently detects ancillary fields: service tax,
// change, table number, fuel volume and price per litre. None of them is
// validated or scored.
func extractAdditionalInfo(text string) AdditionalInfo {
	var info AdditionalInfo

	if match := serviceTaxPattern.FindStringSubmatch(text); match != nil {
		percentage, err := strconv.Atoi(match[1])
		if amount, ok := parseAmount(match[2]); ok && err == nil {
			info.ServiceTax = &ServiceTax{Percentage: percentage, Amount: amount}
		}
	}

	if match := changePattern.FindStringSubmatch(text); match != nil {
		if amount, ok := parseAmount(match[1]); ok {
			info.Change = &amount
		}
	}

	if match := tablePattern.FindStringSubmatch(text); match != nil {
		info.TableNumber = match[1]
	}

	if match := fuelVolumePattern.FindStringSubmatch(text); match != nil {
		if volume, ok := parseAmount(match[1]); ok {
			info.FuelVolume = &volume
		}
	}

	if match := pricePerUnitPattern.FindStringSubmatch(text); match != nil {
		if price, ok := parseAmount(match[1]); ok {
			info.PricePerUnit = &price
		}
	}

	return info
}

// parseAmount converts a comma-or-dot decimal fragment to a float. Fragments
// that superficially match an amount pattern but do not parse fail closed.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
