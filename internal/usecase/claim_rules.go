package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// ruleKind decides how ingredient matches affect a claim
type ruleKind int

const (
	// kindFreeFrom claims are contradicted by any conflicting ingredient
	kindFreeFrom ruleKind = iota
	// kindContains claims are contradicted when no required ingredient is listed
	kindContains
	// kindUnverifiable claims depend on quantities the ingredient list cannot show
	kindUnverifiable
)

// conditionalCaveat is added when the ingredient text matches pattern
type conditionalCaveat struct {
	pattern *regexp.Regexp
	text    string
}

// claimRule maps claim phrases to the ingredients that contradict or support them
type claimRule struct {
	category   string
	kind       ruleKind
	phrases    []string
	terms      *regexp.Regexp // conflicting (free-from) or required (contains) ingredients
	exclusions *regexp.Regexp // ingredient wording that must not count as a match
	caveat     string
	conditions []conditionalCaveat
}

// termsRegex builds a word-bounded alternation, longest terms first
func termsRegex(terms ...string) *regexp.Regexp {
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, term := range sorted {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// eNumberPattern matches additive codes after normalization, e.g. "e150d" or "e 202"
const eNumberPattern = `\be ?[1-9]\d{2}[a-z]?\b`

var (
	addedSugarTerms = []string{
		"sugar", "sugars", "cane sugar", "brown sugar", "invert sugar", "glucose", "fructose",
		"sucrose", "dextrose", "maltose", "syrup", "corn syrup", "glucose syrup", "honey",
		"molasses", "maltodextrin", "agave", "juice concentrate", "caramel",
	}

	sweetenerTerms = []string{
		"sweetener", "sweeteners", "aspartame", "sucralose", "acesulfame", "acesulfame k",
		"saccharin", "cyclamate", "stevia", "steviol glycosides", "sorbitol", "xylitol",
		"erythritol", "maltitol", "neotame", "e950", "e951", "e952", "e954", "e955", "e960",
	}

	saltTerms = []string{
		"salt", "sea salt", "sodium chloride", "brine", "soy sauce", "monosodium glutamate", "msg",
	}

	fatTerms = []string{
		"fat", "fats", "oil", "oils", "butter", "cream", "lard", "tallow", "shortening",
		"margarine", "ghee", "palm oil", "hydrogenated",
	}

	dairyTerms = []string{
		"milk", "milk powder", "skimmed milk", "whey", "casein", "caseinate", "lactose",
		"butter", "buttermilk", "cream", "cheese", "yogurt", "yoghurt", "ghee", "milk fat",
	}

	meatAndFishTerms = []string{
		"meat", "chicken", "beef", "pork", "ham", "bacon", "fish", "anchovy", "anchovies",
		"tuna", "shrimp", "lard", "tallow", "gelatin", "gelatine", "rennet", "collagen",
		"carmine", "cochineal", "e120",
	}

	animalTerms = append(append([]string{
		"egg", "eggs", "egg white", "egg yolk", "honey", "beeswax", "shellac", "lanolin",
		"e441", "e904", "e901",
	}, dairyTerms...), meatAndFishTerms...)

	plantDairyExclusions = regexp.MustCompile(
		`\b(?:coconut|almond|oat|soy|soya|rice|cashew|hazelnut|peanut|shea|cocoa|nut|plant|seed) (?:milk|cream|butter|drink)\b|\bcream of tartar\b`)
)

// claimRules is evaluated in order; a claim may match several rules
var claimRules = []claimRule{
	{
		category: "Added sugar",
		kind:     kindFreeFrom,
		phrases: []string{
			"no added sugar", "no added sugars", "no sugar added", "no sugars added", "sugar free",
			"no sugar", "zero sugar", "without sugar", "without added sugar", "unsweetened",
		},
		terms:      termsRegex(addedSugarTerms...),
		exclusions: regexp.MustCompile(`\b(?:caramel colou?r|sugar free|sugar alcohols?)\b`),
		caveat:     "Only sugars listed as ingredients are checked",
		conditions: []conditionalCaveat{
			{
				pattern: termsRegex("fruit", "fruits", "juice", "puree", "milk", "dates", "raisins"),
				text:    "Fruit, juice or milk ingredients contain naturally occurring sugars",
			},
			{
				pattern: termsRegex(sweetenerTerms...),
				text:    "Sweeteners are present in place of sugar",
			},
		},
	},
	{
		category:   "Reduced sugar",
		kind:       kindUnverifiable,
		phrases:    []string{"low sugar", "reduced sugar", "less sugar", "lower sugar", "light in sugar"},
		terms:      termsRegex(addedSugarTerms...),
		exclusions: regexp.MustCompile(`\bcaramel colou?r\b`),
		caveat:     "Reduced sugar claims depend on quantities the ingredient list does not show",
	},
	{
		category: "Sweeteners",
		kind:     kindFreeFrom,
		phrases: []string{
			"unsweetened", "no sweeteners", "no sweetener", "no artificial sweeteners",
			"no artificial sweetener", "sweetener free", "free from sweeteners",
		},
		terms:  termsRegex(sweetenerTerms...),
		caveat: "Polyols such as sorbitol and xylitol are counted as sweeteners",
	},
	{
		category: "Salt",
		kind:     kindFreeFrom,
		phrases: []string{
			"no added salt", "no salt added", "salt free", "no salt", "unsalted", "sodium free",
			"without salt", "zero salt",
		},
		terms:      termsRegex(saltTerms...),
		exclusions: regexp.MustCompile(`\bsalt free\b`),
		caveat:     "Sodium from additives such as baking soda is not counted as salt",
	},
	{
		category: "Reduced salt",
		kind:     kindUnverifiable,
		phrases:  []string{"low salt", "low sodium", "reduced salt", "reduced sodium", "less salt", "lightly salted"},
		terms:    termsRegex(saltTerms...),
		caveat:   "Reduced salt claims depend on quantities the ingredient list does not show",
	},
	{
		category: "Artificial ingredients",
		kind:     kindFreeFrom,
		phrases: []string{
			"all natural", "natural", "100 natural", "no artificial", "nothing artificial",
			"no artificial ingredients", "no artificial flavours", "no artificial flavors",
			"no artificial colours", "no artificial colors", "no additives", "additive free",
			"no e numbers", "clean label",
		},
		terms: regexp.MustCompile(termsRegex(
			"artificial", "colour", "colours", "color", "colors", "colouring", "coloring",
			"flavouring", "flavourings", "flavoring", "flavorings", "flavour enhancer",
			"flavor enhancer", "vanillin", "modified starch", "hydrogenated",
			"high fructose corn syrup", "monosodium glutamate", "aspartame", "sucralose",
			"acesulfame k", "sodium benzoate", "potassium sorbate", "sodium nitrite",
			"carrageenan", "phosphoric acid", "maltodextrin",
		).String() + `|` + eNumberPattern),
		exclusions: regexp.MustCompile(
			`\bnatural (?:colou?rs?|colou?rings?|flavou?rs?|flavou?rings?)\b|\bcolou?rs? from natural sources\b`),
		caveat: "Some additives and E-numbers are of natural origin",
	},
	{
		category: "Preservatives",
		kind:     kindFreeFrom,
		phrases: []string{
			"no preservatives", "no preservative", "preservative free", "no added preservatives",
			"free from preservatives",
		},
		terms: regexp.MustCompile(termsRegex(
			"preservative", "preservatives", "sodium benzoate", "potassium sorbate", "sorbic acid",
			"benzoic acid", "sodium nitrite", "potassium nitrate", "sodium nitrate", "sulphite",
			"sulphites", "sulfite", "sulfites", "sulphur dioxide", "sulfur dioxide",
			"calcium propionate", "sodium metabisulphite", "bha", "bht",
		).String() + `|\be ?2\d{2}[a-z]?\b`),
		caveat: "Antioxidants such as ascorbic acid can also act as preservatives",
	},
	{
		category: "Fat",
		kind:     kindFreeFrom,
		phrases:  []string{"fat free", "no fat", "zero fat", "non fat", "nonfat", "0 fat"},
		terms:    termsRegex(fatTerms...),
		exclusions: regexp.MustCompile(
			`\b(?:fat free|non fat|nonfat|fat reduced|reduced fat|skimmed|skim)\b`),
		caveat: "Fat free labelling usually allows trace amounts per serving",
	},
	{
		category: "Reduced fat",
		kind:     kindUnverifiable,
		phrases:  []string{"low fat", "reduced fat", "less fat", "lower fat", "light in fat"},
		terms:    termsRegex(fatTerms...),
		caveat:   "Reduced fat claims depend on quantities the ingredient list does not show",
	},
	{
		category: "Trans fat",
		kind:     kindFreeFrom,
		phrases: []string{
			"no trans fat", "no trans fats", "trans fat free", "zero trans fat", "0 trans fat",
			"no hydrogenated fats", "no hydrogenated oils",
		},
		terms:  termsRegex("hydrogenated", "partially hydrogenated", "shortening", "interesterified"),
		caveat: "Small amounts of trans fat may still be present below labelling thresholds",
	},
	{
		category: "Palm oil",
		kind:     kindFreeFrom,
		phrases:  []string{"palm oil free", "no palm oil", "without palm oil", "free from palm oil"},
		terms:    termsRegex("palm", "palm oil", "palm fat", "palm kernel", "palm kernel oil", "palmolein", "palm olein"),
		caveat:   "Vegetable oil or fat without a named source may contain palm oil",
		conditions: []conditionalCaveat{
			{
				pattern: regexp.MustCompile(`\bvegetable (?:oils?|fats?)\b`),
				text:    "An unnamed vegetable oil or fat is listed",
			},
		},
	},
	{
		category: "Gluten",
		kind:     kindFreeFrom,
		phrases:  []string{"gluten free", "no gluten", "without gluten", "free from gluten"},
		terms: termsRegex(
			"gluten", "wheat", "barley", "rye", "malt", "spelt", "kamut", "semolina", "durum",
			"farro", "triticale", "couscous", "bulgur", "seitan",
		),
		exclusions: regexp.MustCompile(`\bgluten free\b`),
		caveat:     "Cross-contamination during manufacturing is not assessed",
		conditions: []conditionalCaveat{
			{
				pattern: termsRegex("oat", "oats", "oatmeal", "oat flakes"),
				text:    "Oats are often contaminated with gluten unless certified",
			},
		},
	},
	{
		category:   "Dairy",
		kind:       kindFreeFrom,
		phrases:    []string{"dairy free", "no dairy", "non dairy", "milk free", "free from dairy", "without dairy"},
		terms:      termsRegex(dairyTerms...),
		exclusions: plantDairyExclusions,
		caveat:     "May contains statements and shared equipment are not assessed",
	},
	{
		category:   "Lactose",
		kind:       kindFreeFrom,
		phrases:    []string{"lactose free", "no lactose", "without lactose"},
		terms:      termsRegex("lactose", "milk powder", "whey", "buttermilk"),
		exclusions: plantDairyExclusions,
		caveat:     "Lactose free products may still contain milk treated with lactase",
	},
	{
		category:   "Vegan",
		kind:       kindFreeFrom,
		phrases:    []string{"vegan", "plant based", "100 plant based", "suitable for vegans", "animal free"},
		terms:      termsRegex(animalTerms...),
		exclusions: plantDairyExclusions,
		caveat:     "Processing aids and additives of animal origin may not be listed",
	},
	{
		category:   "Vegetarian",
		kind:       kindFreeFrom,
		phrases:    []string{"vegetarian", "suitable for vegetarians", "meat free", "meatless"},
		terms:      termsRegex(meatAndFishTerms...),
		exclusions: regexp.MustCompile(`\b(?:vegetable|microbial|vegetarian) rennet\b`),
		caveat:     "The source of rennet or gelatine is not always stated",
	},
	{
		category: "Whole grain",
		kind:     kindContains,
		phrases:  []string{"whole grain", "wholegrain", "whole grains", "whole wheat", "wholemeal", "whole meal"},
		terms: termsRegex(
			"whole grain", "wholegrain", "whole wheat", "wholemeal", "whole meal", "whole oats",
			"oats", "rolled oats", "brown rice", "whole rye", "whole spelt", "quinoa", "buckwheat",
			"bulgur", "whole barley", "whole corn",
		),
		caveat: "The share of whole grain in the product is not checked",
		conditions: []conditionalCaveat{
			{
				pattern: regexp.MustCompile(`\b(?:wheat flour|white flour|enriched flour|refined flour|bleached flour)\b`),
				text:    "Refined flour is also listed",
			},
		},
	},
	{
		category: "Real fruit",
		kind:     kindContains,
		phrases:  []string{"real fruit", "made with real fruit", "made with fruit", "with real fruit", "fruit filled"},
		terms: termsRegex(
			"fruit", "fruits", "apple", "apples", "pear", "pears", "peach", "peaches", "apricot",
			"apricots", "plum", "plums", "cherry", "cherries", "strawberry", "strawberries",
			"raspberry", "raspberries", "blueberry", "blueberries", "blackcurrant", "banana",
			"mango", "pineapple", "orange", "lemon", "lime", "grape", "grapes", "raisins", "dates",
			"fig", "figs", "puree", "fruit puree",
		),
		caveat: "Fruit may be present only as concentrate or in small amounts",
		conditions: []conditionalCaveat{
			{
				pattern: regexp.MustCompile(`\b(?:concentrate|concentrated)\b`),
				text:    "Fruit appears as concentrate",
			},
			{
				pattern: termsRegex("flavouring", "flavourings", "flavoring", "flavorings", "flavour", "flavor"),
				text:    "Flavourings may provide the fruit taste",
			},
		},
	},
	{
		category: "Nutrient content",
		kind:     kindUnverifiable,
		phrases: []string{
			"high protein", "source of protein", "protein rich", "high fibre", "high fiber",
			"source of fibre", "source of fiber", "low calorie", "low calories", "low carb",
			"keto", "rich in vitamins", "fortified",
		},
		terms:  termsRegex("protein", "fibre", "fiber", "vitamin", "vitamins", "inulin"),
		caveat: "Nutrient claims depend on the nutrition table, not the ingredient list",
	},
	{
		category: "Health and certification",
		kind:     kindUnverifiable,
		phrases: []string{
			"organic", "bio", "healthy", "heart healthy", "superfood", "wholesome", "clean",
			"immune support", "boosts immunity", "non gmo", "gmo free", "fair trade",
		},
		terms:  termsRegex("organic"),
		caveat: "Health and certification claims cannot be checked against ingredients",
	},
}
