package extractors

import (
	"regexp"
	"strings"
)

// merchantMappings normalizes the processor noise banks print in front of
// well-known merchants. Ordered, first match wins.
var merchantMappings = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)AMZN\s*MKTP?\s*US|AMAZON\.COM|AMAZON MARKETPLACE`), "Amazon"},
	{regexp.MustCompile(`(?i)UBER\s*EATS`), "Uber Eats"},
	{regexp.MustCompile(`(?i)UBER\s*\*|UBER\s*TRIP`), "Uber"},
	{regexp.MustCompile(`(?i)LYFT\s*\*`), "Lyft"},
	{regexp.MustCompile(`(?i)SQ\s*\*`), "Square"},
	{regexp.MustCompile(`(?i)PAYPAL\s*\*`), "PayPal"},
	{regexp.MustCompile(`(?i)GOOGLE\s*\*`), "Google"},
	{regexp.MustCompile(`(?i)APPLE\.COM`), "Apple"},
	{regexp.MustCompile(`(?i)NETFLIX`), "Netflix"},
	{regexp.MustCompile(`(?i)SPOTIFY`), "Spotify"},
	{regexp.MustCompile(`(?i)STARBUCKS`), "Starbucks"},
	{regexp.MustCompile(`(?i)MCDONALD`), "McDonald's"},
	{regexp.MustCompile(`(?i)BURGER\s*KING`), "Burger King"},
	{regexp.MustCompile(`(?i)TACO\s*BELL`), "Taco Bell"},
	{regexp.MustCompile(`(?i)DUNKIN`), "Dunkin' Donuts"},
	{regexp.MustCompile(`(?i)CHIPOTLE`), "Chipotle"},
	{regexp.MustCompile(`(?i)PANERA`), "Panera Bread"},
	{regexp.MustCompile(`(?i)CHICK-FIL-A|CHICKFILA`), "Chick-fil-A"},
	{regexp.MustCompile(`(?i)WALMART`), "Walmart"},
	{regexp.MustCompile(`(?i)TARGET`), "Target"},
	{regexp.MustCompile(`(?i)COSTCO\s*GAS`), "Costco Gas"},
	{regexp.MustCompile(`(?i)COSTCO`), "Costco"},
	{regexp.MustCompile(`(?i)HOME DEPOT`), "Home Depot"},
	{regexp.MustCompile(`(?i)LOWE'?S`), "Lowe's"},
	{regexp.MustCompile(`(?i)BEST BUY`), "Best Buy"},
	{regexp.MustCompile(`(?i)WHOLE FOODS`), "Whole Foods"},
	{regexp.MustCompile(`(?i)TRADER JOE`), "Trader Joe's"},
	{regexp.MustCompile(`(?i)SAFEWAY`), "Safeway"},
	{regexp.MustCompile(`(?i)KROGER\s*FUEL`), "Kroger Fuel"},
	{regexp.MustCompile(`(?i)KROGER`), "Kroger"},
	{regexp.MustCompile(`(?i)KING\s+SOOPERS?`), "King Soopers"},
	{regexp.MustCompile(`(?i)ALDI`), "Aldi"},
	{regexp.MustCompile(`(?i)SHELL`), "Shell"},
	{regexp.MustCompile(`(?i)EXXON`), "Exxon"},
	{regexp.MustCompile(`(?i)CHEVRON`), "Chevron"},
	{regexp.MustCompile(`(?i)7-ELEVEN|7ELEVEN|SEVEN\s*ELEVEN`), "7-Eleven"},
	{regexp.MustCompile(`(?i)QUIKTRIP`), "QuikTrip"},
	{regexp.MustCompile(`(?i)CVS`), "CVS"},
	{regexp.MustCompile(`(?i)WALGREENS`), "Walgreens"},
	{regexp.MustCompile(`(?i)PLANET\s*FITNESS`), "Planet Fitness"},
	{regexp.MustCompile(`(?i)DOORDASH`), "DoorDash"},
	{regexp.MustCompile(`(?i)GRUBHUB`), "Grubhub"},
	{regexp.MustCompile(`(?i)INSTACART`), "Instacart"},
	{regexp.MustCompile(`(?i)AIRBNB`), "Airbnb"},
	{regexp.MustCompile(`(?i)MARRIOTT`), "Marriott"},
	{regexp.MustCompile(`(?i)HILTON`), "Hilton"},
	{regexp.MustCompile(`(?i)JIFFY\s*LUBE`), "Jiffy Lube"},
	{regexp.MustCompile(`(?i)DISCOUNT\s*TIRE`), "Discount Tire"},
	{regexp.MustCompile(`(?i)AUTOZONE`), "AutoZone"},
}

// cleanupPatterns strip processor codes and noise before falling back to
// heuristic extraction.
var cleanupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*[^*]*\*`),
	regexp.MustCompile(`#\d+`),
	regexp.MustCompile(`\d{4,}`),
	regexp.MustCompile(`[A-Z]{2,}\s*\d+`),
	regexp.MustCompile(`(?i)ONLINE`),
	regexp.MustCompile(`(?i)POS\s*`),
	regexp.MustCompile(`(?i)DEBIT\s*`),
	regexp.MustCompile(`(?i)CREDIT\s*`),
	regexp.MustCompile(`(?i)PURCHASE\s*`),
	regexp.MustCompile(`(?i)PAYMENT\s*`),
}

var (
	capsRunPattern       = regexp.MustCompile(`\b([A-Z]{2,}(?:\s+[A-Z]{2,})*)\b`)
	corpSuffixPattern    = regexp.MustCompile(`(?i)\s+(LLC|INC|CORP|LTD|CO)\.?$`)
	merchantSpacePattern = regexp.MustCompile(`\s+`)
)

// ExtractMerchant derives a clean merchant name from a raw transaction
// description: mapping table first, then ALL-CAPS heuristic, then the
// leading words. Empty string when nothing meaningful survives cleanup.
func ExtractMerchant(description string) string {
	if description == "" {
		return ""
	}
	for _, m := range merchantMappings {
		if m.re.MatchString(description) {
			return m.name
		}
	}

	cleaned := strings.TrimSpace(description)
	for _, re := range cleanupPatterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	if m := capsRunPattern.FindStringSubmatch(cleaned); m != nil {
		merchant := merchantSpacePattern.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if len(merchant) > 2 {
			return titleCase(merchant)
		}
	}

	words := strings.Fields(cleaned)
	if len(words) > 3 {
		words = words[:3]
	}
	merchant := corpSuffixPattern.ReplaceAllString(strings.Join(words, " "), "")
	if len(merchant) > 2 {
		return titleCase(merchant)
	}
	return ""
}

// NormalizeMerchant produces the casing/spacing-insensitive form used by
// the transaction dedup key.
func NormalizeMerchant(s string) string {
	return strings.ToLower(merchantSpacePattern.ReplaceAllString(strings.TrimSpace(s), " "))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
