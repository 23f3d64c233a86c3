package keyword

// Built-in dictionaries tuned for grooming, exploitation and bullying
// language aimed at children. Weights are negative for harmful content and
// positive for protective language.

// defaultPhrases is scored in declaration order. Earlier entries consume
// matched text first, so put the more specific or heavier phrases ahead of
// anything they overlap with.
var defaultPhrases = []Phrase{
	// Sexual grooming and manipulation
	{"our little secret", -2.0},
	{"special friendship", -1.8},
	{"best friends forever", -1.5},
	{"i'm here for you", -1.5},
	{"love you", -1.2},
	{"i care about you", -1.2},
	{"are you alone", -1.8},
	{"do you want to be famous", -1.5},
	{"want to see something cool", -1.4},
	{"let me help you with that", -1.3},

	// Explicit or inappropriate language
	{"wanna play a game", -1.2},
	{"role-play", -1.5},

	// Creating vulnerability
	{"you're so mature for your age", -1.8},
	{"no one understands you", -1.5},
	{"i won't tell anyone", -1.7},
	{"you're the only one who gets me", -1.4},
	{"they won't believe you", -1.7},

	// Requests for personal information
	{"where are you from", -1.5},
	{"send me a pic", -2.0},
	{"what's your real name", -1.4},
	{"can you video chat", -1.6},

	// Baiting and pressure
	{"i won't tell if you do it", -1.9},
	{"prove you're real", -1.6},
	{"i'll show you mine if you show me yours", -2.2},
	{"show me more", -1.8},
	{"you're so pretty", -1.3},
	{"you're so handsome", -1.3},

	// Manipulating power dynamics
	{"i'm in charge", -1.4},
	{"i won't hurt you", -1.6},
	{"if you loved me, you would", -2.0},
	{"everyone does it", -1.2},

	// Filter-avoidance slang and abbreviations
	{"asl", -1.0}, // age/sex/location
	{"gfe", -1.2},
	{"cu l8r", -0.5},
	{"wyd", -0.5},
	{"420", -0.5},
	{"2m4u", -0.8},
	{"fwb", -1.0},

	// Harassment and bullying
	{"you're ugly", -1.5},
	{"no one likes you", -1.5},
	{"kill yourself", -3.0},
	{"nobody cares", -1.8},
	{"everyone's laughing at you", -1.7},
	{"you deserve it", -1.6},
	{"you asked for it", -1.6},

	// Exploiting vulnerability
	{"don't tell your parents", -2.0},
	{"they'll get mad if you tell them", -1.8},
	{"it's just a joke", -1.0},
}

var defaultTokens = map[Category]map[string]float64{
	CategoryPositive: {
		"protect":   1.5,
		"safe":      1.2,
		"secure":    1.2,
		"rescue":    1.5,
		"support":   1.2,
		"report":    1.0,
		"trusted":   1.0,
		"education": 1.0,
		"awareness": 1.0,
	},
	CategoryNegative: {
		// Single-word sexual or explicit terms
		"naked":     -2.0,
		"undressed": -1.8,
		"sexting":   -1.7,
		"pics":      -1.4,
		"kissing":   -1.2,
		"touching":  -1.3,
		"hugs":      -0.8,
		"hot":       -1.0,
		"mature":    -1.0,
		"teen":      -1.5,
		// Generic threat terms
		"predator": -2.0,
		"groom":    -1.8,
		"abuse":    -1.8,
		"harm":     -1.5,
		"victim":   -1.2,
		"bully":    -1.4,
	},
	CategoryNeutral: {
		"child":    0.0,
		"children": 0.0,
		"online":   0.0,
		"internet": 0.0,
		"law":      0.0,
	},
}
