package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category names for the built-in rule set.
const (
	CategoryFood          = "Food & Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills & Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryHealthcare    = "Healthcare"
	CategoryEducation     = "Education"
	CategoryTravel        = "Travel"
)

// DefaultRules returns the built-in ordered category table. Some keywords
// repeat across categories ("gas", "netflix", "subway"); the earlier
// category always wins, which is why this is a slice and not a map.
func DefaultRules() []Rule {
	return []Rule{
		{Name: CategoryFood, Keywords: []string{
			"restaurant", "food", "dining", "cafe", "coffee", "grocery", "supermarket",
			"takeout", "delivery", "uber eats", "doordash", "grubhub", "starbucks",
			"mcdonalds", "subway", "pizza", "burger", "sandwich", "salad",
		}},
		{Name: CategoryTransport, Keywords: []string{
			"uber", "lyft", "taxi", "transit", "parking", "fuel", "gas", "metro",
			"subway", "bus", "amtrak", "airline", "flight", "airport", "parking meter",
		}},
		{Name: CategoryShopping, Keywords: []string{
			"amazon", "walmart", "target", "store", "shop", "retail", "marketplace",
			"mall", "best buy", "costco", "home depot", "ikea", "nike", "adidas",
			"clothing", "apparel", "electronics", "furniture",
		}},
		{Name: CategoryBills, Keywords: []string{
			"electric", "water", "gas", "internet", "phone", "rent", "mortgage",
			"insurance", "subscription", "verizon", "comcast", "spectrum", "netflix",
			"spotify", "hulu", "disney+", "utility", "cable",
		}},
		{Name: CategoryEntertainment, Keywords: []string{
			"netflix", "spotify", "movie", "theater", "concert", "sports", "gym",
			"fitness", "streaming", "youtube", "twitch", "steam", "playstation",
			"xbox", "nintendo", "game", "gaming", "ticketmaster", "eventbrite",
		}},
		{Name: CategoryHealthcare, Keywords: []string{
			"pharmacy", "doctor", "medical", "health", "dental", "hospital", "clinic",
			"prescription", "cvs", "walgreens", "rite aid", "copay",
			"deductible", "drugstore", "medical center",
		}},
		{Name: CategoryEducation, Keywords: []string{
			"school", "university", "college", "course", "training", "textbook",
			"tuition", "campus", "student", "academic", "library", "bookstore",
			"courseware", "online learning", "udemy", "coursera",
		}},
		{Name: CategoryTravel, Keywords: []string{
			"hotel", "booking", "airbnb", "resort", "vacation",
			"expedia", "hotels.com", "kayak", "priceline", "tripadvisor", "cruise",
			"tour", "travel agency", "visa", "passport",
		}},
		{Name: CategoryOther, Keywords: []string{}},
	}
}

// rulesFile is the on-disk shape of a categories file.
type rulesFile struct {
	Categories []Rule `yaml:"categories"`
}

// LoadRules reads an ordered category table from a YAML file. An empty path
// returns the built-in table.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	return file.Categories, nil
}
