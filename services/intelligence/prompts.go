package intelligence

import (
	"strings"
	"text/template"

	"lexaid/models"
)

var draftPromptTmpl = template.Must(template.New("draft").Parse(
	`You are an expert Nigerian legal practitioner. Based on the information provided, draft a complete legal document, properly formatted, using correct legal language and structure relevant to Nigerian courts or legal practice.

Document Type: {{.DocumentType}}
Facts of the case/matter: {{.Facts}}
{{with .CourtTypeAndLocation}}Court type and location: {{.}}{{end}}
Parties involved: {{.PartiesInvolved}}
{{with .MatterCategory}}Category/type of matter: {{.}}{{end}}
{{with .StageOfProceedings}}Stage of the proceedings: {{.}}{{end}}

{{with .IssuesForDetermination}}Issues for Determination (for Judgement): {{.}}{{end}}
{{with .SummaryOfArgumentsPlaintiff}}Summary of Claimant/Applicant's Arguments (for Judgement): {{.}}{{end}}
{{with .SummaryOfArgumentsDefendant}}Summary of Defendant/Respondent's Arguments (for Judgement): {{.}}{{end}}
{{with .AnalysisAndDecision}}Analysis and Decision to be Detailed (for Judgement): {{.}}{{end}}

Draft the legal document:
`))

var citationPromptTmpl = template.Must(template.New("citations").Parse(
	"You are a Nigerian legal expert. Given the following legal document content, suggest relevant legal citations from Nigerian law that could support the arguments or statements made. Provide the citations in a list format.\n\nDocument Content: {{.DocumentContent}}"))

// promptFields flattens a DraftRequest so that absent and empty optional
// fields both render as "", which the template's with-blocks skip.
type promptFields struct {
	DocumentType                string
	Facts                       string
	CourtTypeAndLocation        string
	PartiesInvolved             string
	MatterCategory              string
	StageOfProceedings          string
	IssuesForDetermination      string
	SummaryOfArgumentsPlaintiff string
	SummaryOfArgumentsDefendant string
	AnalysisAndDecision         string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RenderDraftPrompt renders the drafting prompt for req.
func RenderDraftPrompt(req models.DraftRequest) (string, error) {
	fields := promptFields{
		DocumentType:                req.DocumentType,
		Facts:                       req.Facts,
		CourtTypeAndLocation:        deref(req.CourtTypeAndLocation),
		PartiesInvolved:             deref(req.PartiesInvolved),
		MatterCategory:              deref(req.MatterCategory),
		StageOfProceedings:          deref(req.StageOfProceedings),
		IssuesForDetermination:      deref(req.IssuesForDetermination),
		SummaryOfArgumentsPlaintiff: deref(req.SummaryOfArgumentsPlaintiff),
		SummaryOfArgumentsDefendant: deref(req.SummaryOfArgumentsDefendant),
		AnalysisAndDecision:         deref(req.AnalysisAndDecision),
	}
	var sb strings.Builder
	if err := draftPromptTmpl.Execute(&sb, fields); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderCitationPrompt renders the citation prompt for req.
func RenderCitationPrompt(req models.CitationRequest) (string, error) {
	var sb strings.Builder
	if err := citationPromptTmpl.Execute(&sb, req); err != nil {
		return "", err
	}
	return sb.String(), nil
}
