// Package drafting turns drafting form submissions into model requests and
// keeps the per-user drafting workspace.
package drafting

import (
	"lexaid/models"
	"lexaid/services/catalog"
)

// Judgement-only inputs. They are not part of any catalog form but are
// forwarded when a client submits them.
const (
	KeyIssuesForDetermination      = "issuesForDetermination"
	KeySummaryOfArgumentsPlaintiff = "summaryOfArgumentsPlaintiff"
	KeySummaryOfArgumentsDefendant = "summaryOfArgumentsDefendant"
	KeyAnalysisAndDecision         = "analysisAndDecision"
)

func str(s string) *string { return &s }

// BuildDraftRequest maps a parsed submission to a DraftRequest. The four
// shared optional fields are always present, as "" when the document type
// does not declare them.
func BuildDraftRequest(dt catalog.DocumentTypeConfig, values catalog.FormValues) models.DraftRequest {
	return models.DraftRequest{
		DocumentType:         dt.AIDocumentType,
		Facts:                values.Get(catalog.FieldFacts),
		CourtTypeAndLocation: str(values.Get(catalog.FieldCourtTypeAndLocation)),
		PartiesInvolved:      str(values.Get(catalog.FieldPartiesInvolved)),
		MatterCategory:       str(values.Get(catalog.FieldMatterCategory)),
		StageOfProceedings:   str(values.Get(catalog.FieldStageOfProceedings)),
	}
}

// WithJudgementFields copies the judgement-only inputs present in raw onto req.
// Absent keys stay nil and are omitted from the request.
func WithJudgementFields(req models.DraftRequest, raw map[string]string) models.DraftRequest {
	pick := func(key string) *string {
		if v, ok := raw[key]; ok {
			return str(v)
		}
		return nil
	}
	req.IssuesForDetermination = pick(KeyIssuesForDetermination)
	req.SummaryOfArgumentsPlaintiff = pick(KeySummaryOfArgumentsPlaintiff)
	req.SummaryOfArgumentsDefendant = pick(KeySummaryOfArgumentsDefendant)
	req.AnalysisAndDecision = pick(KeyAnalysisAndDecision)
	return req
}

// RequestFromSubmission parses raw against dt and builds the full request.
func RequestFromSubmission(dt catalog.DocumentTypeConfig, raw map[string]string) models.DraftRequest {
	return WithJudgementFields(BuildDraftRequest(dt, catalog.ParseSubmission(dt, raw)), raw)
}
