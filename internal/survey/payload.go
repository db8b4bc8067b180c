package survey

// Payload is the body sent to the prediction endpoint. Height is in meters;
// every other value is the answer as given.
type Payload struct {
	Gender        float64 `json:"Gender"`
	Age           float64 `json:"Age"`
	Height        float64 `json:"Height"`
	Weight        float64 `json:"Weight"`
	FamilyHistory string  `json:"family_history_with_overweight"`
	FAVC          float64 `json:"FAVC"`
	FCVC          float64 `json:"FCVC"`
	NCP           float64 `json:"NCP"`
	CAEC          float64 `json:"CAEC"`
	SMOKE         float64 `json:"SMOKE"`
	CH2O          float64 `json:"CH2O"`
	SCC           string  `json:"SCC"`
	FAF           float64 `json:"FAF"`
	TUE           float64 `json:"TUE"`
	CALC          float64 `json:"CALC"`
	MTRANS        string  `json:"MTRANS"`
}

// Payload builds the prediction payload. All fields must be answered.
func (f *Form) Payload() (Payload, error) {
	if err := f.Validate(); err != nil {
		return Payload{}, err
	}

	return Payload{
		Gender:        f.number("gender"),
		Age:           f.number("age"),
		Height:        f.number("height") / 100, // cm -> m
		Weight:        f.number("weight"),
		FamilyHistory: f.text("family_history"),
		FAVC:          f.number("calories"),
		FCVC:          f.number("vegetables"),
		NCP:           f.number("meals"),
		CAEC:          f.number("snacks"),
		SMOKE:         f.number("smoke"),
		CH2O:          f.number("water"),
		SCC:           f.text("monitor"),
		FAF:           f.number("activity"),
		TUE:           f.number("screen_time"),
		CALC:          f.number("alcohol"),
		MTRANS:        f.text("transport"),
	}, nil
}

func (f *Form) number(name string) float64 {
	n, _ := f.answers[name].(float64)
	return n
}

func (f *Form) text(name string) string {
	s, _ := f.answers[name].(string)
	return s
}
