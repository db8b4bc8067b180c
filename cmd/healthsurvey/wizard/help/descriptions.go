package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for every survey question, keyed by
// field name.
var Texts = map[string]HelpText{
	"gender": {
		Title:       "GENDER",
		Description: "Biological sex used by the prediction model.",
		Details:     "Male is sent as 1, Female as 2.",
	},
	"age": {
		Title:       "AGE",
		Description: "Your age in whole years.",
		Details:     "Decimals are accepted (e.g., 23.5).",
	},
	"height": {
		Title:       "HEIGHT",
		Description: "Your height in centimeters.",
		Details: `Enter centimeters (e.g., 180).
It is converted to meters before it is sent.`,
	},
	"weight": {
		Title:       "WEIGHT",
		Description: "Your weight in kilograms.",
		Details:     "Together with height this drives the obesity estimate.",
	},
	"family_history": {
		Title:       "FAMILY HISTORY",
		Description: "Has a family member suffered from overweight?",
		Details:     "Answer yes if a parent or sibling has been overweight.",
	},
	"calories": {
		Title:       "CALORIE INTAKE",
		Description: "How often you eat high caloric food.",
		Details:     "Sent as FAVC. Any number is accepted.",
	},
	"vegetables": {
		Title:       "VEGETABLES",
		Description: "How often you eat vegetables with your meals.",
		Details: `0 - Never
1 - Sometimes
2 - Often
3 - Always`,
	},
	"meals": {
		Title:       "MAIN MEALS",
		Description: "Number of main meals you have per day.",
		Details:     "Typically between 1 and 4.",
	},
	"snacks": {
		Title:       "SNACKS",
		Description: "How often you eat between meals.",
		Details: `0 - No
1 - Sometimes
2 - Frequently
3 - Always`,
	},
	"smoke": {
		Title:       "SMOKING",
		Description: "Whether you currently smoke.",
		Details:     "No is sent as 0, Yes as 1.",
	},
	"water": {
		Title:       "WATER",
		Description: "Liters of water you drink daily.",
		Details:     "Decimals are accepted (e.g., 1.5).",
	},
	"monitor": {
		Title:       "CALORIE MONITORING",
		Description: "Do you keep track of the calories you eat?",
		Details:     "Sent as SCC (yes/no).",
	},
	"activity": {
		Title:       "PHYSICAL ACTIVITY",
		Description: "Hours of physical activity per day.",
		Details:     "Include walking, sport and active commuting.",
	},
	"screen_time": {
		Title:       "SCREEN TIME",
		Description: "Hours per day spent on phones, computers and TV.",
		Details:     "Sent as TUE.",
	},
	"alcohol": {
		Title:       "ALCOHOL",
		Description: "How often you drink alcohol.",
		Details: `Never - 0
Sometimes - 1
Frequently - 2`,
	},
	"transport": {
		Title:       "TRANSPORTATION",
		Description: "The transportation you usually use.",
		Details:     "Automobile, Bike, Motorbike, Public Transportation or Walking.",
	},
}
