// Package catalog holds the compiled-in list of legal document templates.
package catalog

// FieldKey names one of the shared drafting form inputs.
type FieldKey string

const (
	FieldFacts                FieldKey = "facts"
	FieldCourtTypeAndLocation FieldKey = "courtTypeAndLocation"
	FieldPartiesInvolved      FieldKey = "partiesInvolved"
	FieldMatterCategory       FieldKey = "matterCategory"
	FieldStageOfProceedings   FieldKey = "stageOfProceedings"
)

// Widget is the kind of input control rendered for a field.
type Widget string

const (
	WidgetTextarea Widget = "textarea"
	WidgetInput    Widget = "input"
)

// FieldDefinition is the display metadata of a field key.
type FieldDefinition struct {
	Key         FieldKey `json:"key"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder"`
	Widget      Widget   `json:"widget"`
}

// DocumentTypeConfig describes one draftable document type.
type DocumentTypeConfig struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Icon           string     `json:"icon"`
	Fields         []FieldKey `json:"fields"`
	AIDocumentType string     `json:"aiDocumentType"`
}

var (
	allFields      = []FieldKey{FieldFacts, FieldCourtTypeAndLocation, FieldPartiesInvolved, FieldMatterCategory, FieldStageOfProceedings}
	claimFields    = []FieldKey{FieldFacts, FieldCourtTypeAndLocation, FieldPartiesInvolved, FieldMatterCategory}
	affidavitOrder = []FieldKey{FieldFacts, FieldPartiesInvolved, FieldMatterCategory, FieldCourtTypeAndLocation, FieldStageOfProceedings}
)

var documentTypes = []DocumentTypeConfig{
	{ID: "statement-of-claim", Name: "Statement of Claim", Description: "Initiate a civil suit by outlining the plaintiff's case.", Icon: "file-text", Fields: claimFields, AIDocumentType: "Statement of Claim"},
	{ID: "statement-of-defence", Name: "Statement of Defence", Description: "Respond to a statement of claim, outlining the defendant's case.", Icon: "shield", Fields: claimFields, AIDocumentType: "Statement of Defence"},
	{ID: "brief-of-argument", Name: "Brief of Argument", Description: "Submit written arguments for appellate courts (Court of Appeal & Supreme Court).", Icon: "book-open", Fields: allFields, AIDocumentType: "Brief of Argument"},
	{ID: "final-written-address", Name: "Final Written Address", Description: "Summarize arguments and evidence at the conclusion of a trial.", Icon: "file-text", Fields: allFields, AIDocumentType: "Final Written Address"},
	{ID: "bail-application", Name: "Bail Application", Description: "Request pre-trial release for an accused person (Magistrate/High Court).", Icon: "gavel", Fields: allFields, AIDocumentType: "Bail Application"},
	{ID: "fundamental-rights", Name: "Enforcement of Fundamental Rights", Description: "Apply to the court for the protection of fundamental human rights.", Icon: "scale", Fields: claimFields, AIDocumentType: "Application for Enforcement of Fundamental Rights"},
	{ID: "motion-on-notice", Name: "Motion on Notice", Description: "Make a formal application or request to the court during proceedings.", Icon: "file-signature", Fields: allFields, AIDocumentType: "Motion on Notice"},
	{ID: "affidavit", Name: "Affidavit", Description: "Provide a written, sworn statement of facts for court use.", Icon: "pencil-line", Fields: affidavitOrder, AIDocumentType: "Affidavit"},
	{ID: "counter-affidavit", Name: "Counter-Affidavit", Description: "Respond to an affidavit, challenging its factual assertions.", Icon: "pencil-line", Fields: affidavitOrder, AIDocumentType: "Counter-Affidavit"},
	{ID: "legal-opinion", Name: "Legal Opinion", Description: "Offer professional advice on a specific legal matter or question.", Icon: "book-marked", Fields: []FieldKey{FieldFacts, FieldMatterCategory}, AIDocumentType: "Legal Opinion"},
	{ID: "letter-of-demand", Name: "Letter of Demand", Description: "Formally request payment or action from another party before litigation.", Icon: "mail", Fields: []FieldKey{FieldFacts, FieldPartiesInvolved}, AIDocumentType: "Letter of Demand"},
	{ID: "deed-contract", Name: "Deed / Contract", Description: "Draft various binding legal agreements and formal documents.", Icon: "handshake", Fields: []FieldKey{FieldFacts, FieldPartiesInvolved, FieldMatterCategory}, AIDocumentType: "Deed or Contract"},
	{ID: "other-document", Name: "Other Legal Document", Description: "For various other legal documents used in Nigerian legal practice.", Icon: "folder-archive", Fields: allFields, AIDocumentType: "General Legal Document"},
}

var fieldDefinitions = map[FieldKey]FieldDefinition{
	FieldFacts: {
		Key:         FieldFacts,
		Label:       "Facts of the Case",
		Placeholder: "Enter the detailed facts, background, and relevant events...",
		Widget:      WidgetTextarea,
	},
	FieldCourtTypeAndLocation: {
		Key:         FieldCourtTypeAndLocation,
		Label:       "Court Type and Location",
		Placeholder: "e.g., High Court of Lagos State, Ikeja Judicial Division",
		Widget:      WidgetInput,
	},
	FieldPartiesInvolved: {
		Key:         FieldPartiesInvolved,
		Label:       "Parties Involved",
		Placeholder: "e.g., Plaintiff: Chief Adekunle Bello, Defendant: XYZ Limited",
		Widget:      WidgetInput,
	},
	FieldMatterCategory: {
		Key:         FieldMatterCategory,
		Label:       "Category/Type of Matter",
		Placeholder: "e.g., Breach of Contract, Land Dispute, Matrimonial Causes",
		Widget:      WidgetInput,
	},
	FieldStageOfProceedings: {
		Key:         FieldStageOfProceedings,
		Label:       "Stage of Proceedings",
		Placeholder: "e.g., Pre-action, Statement of Claim, Motion for Interlocutory Injunction",
		Widget:      WidgetInput,
	},
}

// Lookup finds a document type by its id. Absence is the only failure.
func Lookup(id string) (DocumentTypeConfig, bool) {
	for _, dt := range documentTypes {
		if dt.ID == id {
			return clone(dt), true
		}
	}
	return DocumentTypeConfig{}, false
}

// All returns every document type in display order.
func All() []DocumentTypeConfig {
	out := make([]DocumentTypeConfig, len(documentTypes))
	for i, dt := range documentTypes {
		out[i] = clone(dt)
	}
	return out
}

// Field returns the definition of a shared field key.
func Field(key FieldKey) (FieldDefinition, bool) {
	def, ok := fieldDefinitions[key]
	return def, ok
}

// clone copies the field slice so callers cannot mutate the catalog.
func clone(dt DocumentTypeConfig) DocumentTypeConfig {
	dt.Fields = append([]FieldKey(nil), dt.Fields...)
	return dt
}
