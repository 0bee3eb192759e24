package extractors

import "strings"

// categoryRules map description keywords to spending categories. Ordered,
// first match wins, so the more specific categories sit above the broad
// catch-alls.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"Groceries", []string{
		"walmart", "safeway", "kroger", "whole foods", "trader joe", "aldi",
		"costco", "publix", "wegmans", "king soopers", "heb", "albertsons",
		"meijer", "harris teeter", "sprouts", "lidl", "grocery", "supermarket",
	}},
	{"Restaurants", []string{
		"mcdonald", "burger king", "wendy", "taco bell", "kfc", "subway",
		"starbucks", "dunkin", "pizza hut", "domino", "chipotle", "panera",
		"chick-fil-a", "five guys", "ihop", "denny", "waffle house",
		"restaurant", "cafe", "coffee", "diner", "grill",
		"uber eats", "doordash", "grubhub", "postmates",
	}},
	{"Gas", []string{
		"shell", "exxon", "mobil", "chevron", "texaco", "valero", "sunoco",
		"speedway", "7-eleven", "circle k", "quiktrip", "wawa", "sheetz",
		"racetrac", "murphy usa", "gas station", "fuel",
	}},
	{"Utilities", []string{
		"electric", "power", "gas company", "water", "sewer", "trash",
		"utility", "duke energy", "pg&e", "comcast", "xfinity", "verizon",
		"at&t", "t-mobile", "internet", "cable", "phone bill",
	}},
	{"Subscriptions", []string{
		"netflix", "spotify", "amazon prime", "hulu", "disney", "apple music",
		"youtube premium", "hbo", "audible", "adobe", "dropbox", "icloud",
		"subscription",
	}},
	{"Shopping", []string{
		"amazon", "ebay", "etsy", "target", "best buy", "macy", "nordstrom",
		"kohl", "gamestop", "barnes & noble", "online purchase", "retail",
	}},
	{"Vehicle Maintenance", []string{
		"jiffy lube", "valvoline", "oil change", "discount tire", "firestone",
		"goodyear", "tire", "car wash", "auto repair", "mechanic",
		"auto body", "smog check", "dmv", "vehicle registration", "towing",
		"brake", "transmission", "dealer service", "dealership",
	}},
	{"Auto Parts", []string{
		"autozone", "advance auto", "oreilly", "napa", "auto parts",
		"pep boys", "carquest",
	}},
	{"Entertainment", []string{
		"movie", "cinema", "theater", "concert", "ticketmaster", "amc",
		"regal", "steam", "playstation", "xbox", "nintendo",
	}},
	{"Transportation", []string{
		"uber", "lyft", "taxi", "metro", "transit", "airline", "delta",
		"united", "southwest", "jetblue", "parking", "toll", "car rental",
		"hertz", "avis", "enterprise",
	}},
	{"Healthcare", []string{
		"pharmacy", "cvs", "walgreens", "rite aid", "doctor", "hospital",
		"medical", "dental", "vision", "prescription", "clinic", "urgent care",
	}},
	{"Fitness & Gym", []string{
		"planet fitness", "24 hour fitness", "la fitness", "ymca",
		"anytime fitness", "orangetheory", "crossfit", "gym", "fitness",
	}},
	{"Clothing & Apparel", []string{
		"old navy", "gap", "banana republic", "american eagle", "h&m",
		"forever 21", "zara", "ross", "marshalls", "tj maxx", "nike",
		"adidas", "lululemon", "clothing", "apparel",
	}},
	{"Travel & Hotels", []string{
		"marriott", "hilton", "holiday inn", "hyatt", "expedia",
		"booking.com", "airbnb", "vrbo", "hotel", "motel", "resort",
	}},
	{"Insurance", []string{
		"insurance", "geico", "state farm", "allstate", "progressive",
		"liberty mutual",
	}},
	{"Education", []string{
		"tuition", "university", "college", "textbook", "student",
	}},
	{"Charity", []string{
		"donation", "charity", "nonprofit", "red cross", "goodwill",
		"salvation army",
	}},
	{"Banking", []string{
		"atm", "withdrawal", "deposit", "transfer", "overdraft", "interest",
		"credit union",
	}},
	{"Home & Garden", []string{
		"home depot", "lowes", "hardware", "garden", "furniture", "ikea",
		"wayfair",
	}},
	{"Pets", []string{
		"petco", "petsmart", "pet store", "veterinary", "vet", "animal hospital",
	}},
}

// Categorize assigns a spending category from the description keywords,
// first matching rule wins. Empty string when nothing matches.
func Categorize(description string) string {
	if description == "" {
		return ""
	}
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return ""
}
