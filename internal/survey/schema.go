// Package survey implements the health questionnaire: the field schema, the
// answer collection with progress tracking, and the mapping to the
// prediction payload.
package survey

// Kind is how a question is presented to the user.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
	KindChoice
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindChoice:
		return "choice"
	default:
		return "text"
	}
}

// ValueType is the type an answer is stored and transmitted as.
type ValueType int

const (
	ValueNumber ValueType = iota
	ValueText
)

// Option is a selectable answer: the raw value and the text shown for it.
type Option struct {
	Value string
	Text  string
}

// FieldSpec describes one question of the survey.
type FieldSpec struct {
	Label      string
	Name       string
	Kind       Kind
	Options    []Option
	Value      ValueType
	PayloadKey string
}

// Numeric reports whether answers to this field are coerced to numbers.
func (f FieldSpec) Numeric() bool {
	return f.Value == ValueNumber
}

// HasOption reports whether raw is one of the field's option values.
func (f FieldSpec) HasOption(raw string) bool {
	for _, o := range f.Options {
		if o.Value == raw {
			return true
		}
	}
	return false
}

var yesNo = []Option{{"yes", "Yes"}, {"no", "No"}}

// fields is the fixed question list, in display order.
var fields = []FieldSpec{
	{Label: "Gender", Name: "gender", Kind: KindChoice, Value: ValueNumber, PayloadKey: "Gender",
		Options: []Option{{"1", "Male"}, {"2", "Female"}}},
	{Label: "Age (years)", Name: "age", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "Age"},
	{Label: "Height (cm)", Name: "height", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "Height"},
	{Label: "Weight (kg)", Name: "weight", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "Weight"},
	{Label: "Family history of overweight", Name: "family_history", Kind: KindChoice, Value: ValueText,
		PayloadKey: "family_history_with_overweight", Options: yesNo},
	{Label: "Calorie intake (per day)", Name: "calories", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "FAVC"},
	{Label: "Vegetable consumption (0-3)", Name: "vegetables", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "FCVC"},
	{Label: "Main meals per day", Name: "meals", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "NCP"},
	{Label: "Snacks between meals (0-3)", Name: "snacks", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "CAEC"},
	{Label: "Do you smoke?", Name: "smoke", Kind: KindChoice, Value: ValueNumber, PayloadKey: "SMOKE",
		Options: []Option{{"0", "No"}, {"1", "Yes"}}},
	{Label: "Water intake (liters)", Name: "water", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "CH2O"},
	{Label: "Monitor calorie intake?", Name: "monitor", Kind: KindChoice, Value: ValueText, PayloadKey: "SCC",
		Options: yesNo},
	{Label: "Physical activity (hours/day)", Name: "activity", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "FAF"},
	{Label: "Screen time (hours/day)", Name: "screen_time", Kind: KindNumeric, Value: ValueNumber, PayloadKey: "TUE"},
	{Label: "Alcohol consumption", Name: "alcohol", Kind: KindChoice, Value: ValueNumber, PayloadKey: "CALC",
		Options: []Option{{"0", "Never"}, {"1", "Sometimes"}, {"2", "Frequently"}}},
	{Label: "Mode of transportation", Name: "transport", Kind: KindChoice, Value: ValueText, PayloadKey: "MTRANS",
		Options: []Option{
			{"Automobile", "Automobile"},
			{"Bike", "Bike"},
			{"Motorbike", "Motorbike"},
			{"Public_Transportation", "Public Transportation"},
			{"Walking", "Walking"},
		}},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Name] = i
	}
	return m
}()

// Fields returns a copy of the question list in display order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

// FieldCount is the progress denominator.
func FieldCount() int {
	return len(fields)
}

// Lookup returns the field with the given name.
func Lookup(name string) (FieldSpec, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return FieldSpec{}, false
	}
	return fields[i], true
}
