// File: models/case.go
package models

import "time"

// CaseStatus is the lifecycle state of a legal matter.
type CaseStatus string

const (
	CaseStatusOpen      CaseStatus = "Open"
	CaseStatusPending   CaseStatus = "Pending"
	CaseStatusAdjourned CaseStatus = "Adjourned"
	CaseStatusClosed    CaseStatus = "Closed"
)

// Valid reports whether s is one of the known statuses.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusOpen, CaseStatusPending, CaseStatusAdjourned, CaseStatusClosed:
		return true
	}
	return false
}

type CasePriority string

const (
	CasePriorityHigh   CasePriority = "High"
	CasePriorityMedium CasePriority = "Medium"
	CasePriorityLow    CasePriority = "Low"
)

// Valid reports whether p is a known priority. The empty priority is valid (unset).
func (p CasePriority) Valid() bool {
	switch p {
	case "", CasePriorityHigh, CasePriorityMedium, CasePriorityLow:
		return true
	}
	return false
}

// Case tracks a legal matter's metadata and the drafts linked to it.
type Case struct {
	ID                  string       `bson:"id" json:"id"`
	UserID              string       `bson:"userId" json:"userId"`
	Title               string       `bson:"title" json:"title"`
	CaseNumber          string       `bson:"caseNumber,omitempty" json:"caseNumber,omitempty"`
	Court               string       `bson:"court,omitempty" json:"court,omitempty"`
	ClientName          string       `bson:"clientName,omitempty" json:"clientName,omitempty"`
	OpponentName        string       `bson:"opponentName,omitempty" json:"opponentName,omitempty"`
	Parties             string       `bson:"parties,omitempty" json:"parties,omitempty"`
	Status              CaseStatus   `bson:"status" json:"status"`
	Priority            CasePriority `bson:"priority,omitempty" json:"priority,omitempty"`
	NextAdjournmentDate *time.Time   `bson:"nextAdjournmentDate,omitempty" json:"nextAdjournmentDate,omitempty"`
	CaseNotes           string       `bson:"caseNotes,omitempty" json:"caseNotes,omitempty"`
	RelatedDocumentIDs  []string     `bson:"relatedDocumentIds" json:"relatedDocumentIds"`
	CreatedAt           time.Time    `bson:"createdAt" json:"createdAt"`
	LastModified        time.Time    `bson:"lastModified" json:"lastModified"`
}

// CaseInput is the client-supplied part of a new case.
type CaseInput struct {
	Title               string       `json:"title" binding:"required"`
	CaseNumber          string       `json:"caseNumber"`
	Court               string       `json:"court"`
	ClientName          string       `json:"clientName"`
	OpponentName        string       `json:"opponentName"`
	Parties             string       `json:"parties"`
	Status              CaseStatus   `json:"status"`
	Priority            CasePriority `json:"priority"`
	NextAdjournmentDate *time.Time   `json:"nextAdjournmentDate"`
	CaseNotes           string       `json:"caseNotes"`
}

// CasePatch carries a partial case update. ClearNextAdjournmentDate removes a
// scheduled hearing date, since a nil pointer means "unchanged".
type CasePatch struct {
	Title                    *string       `json:"title,omitempty"`
	CaseNumber               *string       `json:"caseNumber,omitempty"`
	Court                    *string       `json:"court,omitempty"`
	ClientName               *string       `json:"clientName,omitempty"`
	OpponentName             *string       `json:"opponentName,omitempty"`
	Parties                  *string       `json:"parties,omitempty"`
	Status                   *CaseStatus   `json:"status,omitempty"`
	Priority                 *CasePriority `json:"priority,omitempty"`
	NextAdjournmentDate      *time.Time    `json:"nextAdjournmentDate,omitempty"`
	ClearNextAdjournmentDate bool          `json:"clearNextAdjournmentDate,omitempty"`
	CaseNotes                *string       `json:"caseNotes,omitempty"`
}

func (p CasePatch) IsEmpty() bool {
	return p.Title == nil && p.CaseNumber == nil && p.Court == nil && p.ClientName == nil &&
		p.OpponentName == nil && p.Parties == nil && p.Status == nil && p.Priority == nil &&
		p.NextAdjournmentDate == nil && !p.ClearNextAdjournmentDate && p.CaseNotes == nil
}
