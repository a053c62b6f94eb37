package catalog

// FormControl is one rendered input of the drafting form.
type FormControl struct {
	FieldDefinition
	Value string `json:"value"`
}

// FormValues is a parsed submission keyed by declared field.
type FormValues map[FieldKey]string

// Get returns the value for key, or "" when it was not declared.
func (v FormValues) Get(key FieldKey) string {
	return v[key]
}

// Form returns exactly one control per declared field, in declared order.
func Form(dt DocumentTypeConfig) []FormControl {
	controls := make([]FormControl, 0, len(dt.Fields))
	for _, key := range dt.Fields {
		def, ok := fieldDefinitions[key]
		if !ok {
			continue
		}
		controls = append(controls, FormControl{FieldDefinition: def})
	}
	return controls
}

// ParseSubmission keeps only the keys dt declares, each defaulting to "".
// Values are passed through untrimmed; no field is required.
func ParseSubmission(dt DocumentTypeConfig, raw map[string]string) FormValues {
	values := make(FormValues, len(dt.Fields))
	for _, key := range dt.Fields {
		values[key] = raw[string(key)]
	}
	return values
}
