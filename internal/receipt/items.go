package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Item listings survive OCR in several distinct shapes depending on how badly
// the scan degraded. Each shape gets its own matcher; matchers are tried in
// declared order against every candidate line and the first match wins. A
// line matching no shape contributes nothing.
type itemMatcher struct {
	name  string
	re    *regexp.Regexp
	build func(match []string, prevLine string) (LineItem, bool)
}

var itemMatchers = []itemMatcher{
	{
		// description  quantity  unit_price  line_total
		name: "tabular",
		re:   regexp.MustCompile(`^(.+?)\s+(\d+)\s+(\d+[,.]\d{2})\s+(\d+[,.]\d{2})$`),
		build: func(match []string, _ string) (LineItem, bool) {
			quantity, err := strconv.Atoi(match[2])
			if err != nil {
				return LineItem{}, false
			}
			unitPrice, ok := parseAmount(match[3])
			if !ok {
				return LineItem{}, false
			}
			totalPrice, ok := parseAmount(match[4])
			if !ok {
				return LineItem{}, false
			}
			return LineItem{
				Description: strings.TrimSpace(match[1]),
				Quantity:    Count(quantity),
				UnitPrice:   unitPrice,
				TotalPrice:  totalPrice,
			}, true
		},
	},
	{
		// "quantity x price" with the description on the previous line. The
		// price may end in a letter O misread for the digit 0.
		name: "split-quantity-price",
		re:   regexp.MustCompile(`(?i)^(\d+)\s*x\s*(\d+[,.]?\d*[O0])$`),
		build: func(match []string, prevLine string) (LineItem, bool) {
			if prevLine == "" || prevHeaderSkip.MatchString(prevLine) {
				return LineItem{}, false
			}
			priceStr := match[2]
			corrected := false
			if last := priceStr[len(priceStr)-1]; last == 'O' || last == 'o' {
				priceStr = priceStr[:len(priceStr)-1] + "0"
				corrected = true
			}
			price, ok := parseAmount(priceStr)
			if !ok {
				return LineItem{}, false
			}
			quantity, err := strconv.Atoi(match[1])
			if err != nil {
				return LineItem{}, false
			}
			return LineItem{
				Description:       prevLine,
				Quantity:          Count(quantity),
				UnitPrice:         price,
				TotalPrice:        price * float64(quantity),
				CorrectionApplied: corrected,
			}, true
		},
	},
	{
		// quantity  description  line_total; unit price is derived.
		name: "quantity-first",
		re:   regexp.MustCompile(`^(\d+)\s+(.+?)\s+(\d+[,.]\d+)$`),
		build: func(match []string, _ string) (LineItem, bool) {
			quantity, err := strconv.Atoi(match[1])
			if err != nil || quantity == 0 {
				return LineItem{}, false
			}
			totalPrice, ok := parseAmount(match[3])
			if !ok {
				return LineItem{}, false
			}
			return LineItem{
				Description: strings.TrimSpace(match[2]),
				Quantity:    Count(quantity),
				UnitPrice:   totalPrice / float64(quantity),
				TotalPrice:  totalPrice,
			}, true
		},
	},
	{
		// Heavily degraded: fragmented description, unit-suffixed quantity
		// and an amount that may contain stray spaces.
		name: "degraded-fragments",
		re:   regexp.MustCompile(`(?i)^([a-z\s]+)\s+(\d+k|un)\s+(\d+\s*[,.]\s*\d+)$`),
		build: func(match []string, _ string) (LineItem, bool) {
			description := strings.TrimSpace(match[1])
			repaired := repairFragments(description)
			totalPrice, ok := parseAmount(match[3])
			if !ok {
				return LineItem{}, false
			}
			return LineItem{
				Description:       capitalize(repaired),
				Quantity:          Label(match[2]),
				TotalPrice:        totalPrice,
				CorrectionApplied: repaired != description,
			}, true
		},
	},
}

var (
	// Lines starting with these tokens are headers or other non-item fields.
	headerSkip     = regexp.MustCompile(`(?i)^(DESC|CUPOM|TOTAL|Pagamento|CNPJ|Data|Hora|Mesa)`)
	prevHeaderSkip = regexp.MustCompile(`(?i)^(DESC|CUPOM|TOTAL|Pagamento|CNPJ)`)
)

// fragmentRepairs maps known OCR word breaks back to common grocery-item
// names.
var fragmentRepairs = []struct {
	re   *regexp.Regexp
	word string
}{
	{regexp.MustCompile(`(?i)ar\s*oz`), "arroz"},
	{regexp.MustCompile(`(?i)fe\s*jao`), "feijão"},
	{regexp.MustCompile(`(?i)ole\s*so\s*a`), "óleo soja"},
}

func repairFragments(description string) string {
	for _, repair := range fragmentRepairs {
		description = repair.re.ReplaceAllString(description, repair.word)
	}
	return description
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// extractItems scans the text line by line, skipping blanks and known header
// lines, and collects at most one LineItem per line via the ordered matcher
// list.
func extractItems(text string) []LineItem {
	var items []LineItem
	lines := strings.Split(text, "\n")

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || headerSkip.MatchString(line) {
			continue
		}

		prevLine := ""
		if i > 0 {
			prevLine = strings.TrimSpace(lines[i-1])
		}

		for _, matcher := range itemMatchers {
			match := matcher.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			if item, ok := matcher.build(match, prevLine); ok {
				items = append(items, item)
			}
			break
		}
	}

	return items
}
