// File: models/ai.go
package models

// DraftRequest is the input of the drafting model call. Optional members are
// pointers so that an absent field is omitted from the JSON form entirely.
type DraftRequest struct {
	DocumentType                string  `json:"documentType"`
	Facts                       string  `json:"facts"`
	CourtTypeAndLocation        *string `json:"courtTypeAndLocation,omitempty"`
	PartiesInvolved             *string `json:"partiesInvolved,omitempty"`
	MatterCategory              *string `json:"matterCategory,omitempty"`
	StageOfProceedings          *string `json:"stageOfProceedings,omitempty"`
	IssuesForDetermination      *string `json:"issuesForDetermination,omitempty"`
	SummaryOfArgumentsPlaintiff *string `json:"summaryOfArgumentsPlaintiff,omitempty"`
	SummaryOfArgumentsDefendant *string `json:"summaryOfArgumentsDefendant,omitempty"`
	AnalysisAndDecision         *string `json:"analysisAndDecision,omitempty"`
}

type DraftResponse struct {
	DraftDocument string `json:"draftDocument"`
}

type CitationRequest struct {
	DocumentContent string `json:"documentContent"`
}

// CitationResponse holds suggested citations in model order. An empty list is
// a valid answer.
type CitationResponse struct {
	Citations []string `json:"citations"`
}

type TranscriptionResponse struct {
	Transcript string `json:"transcript"`
}
