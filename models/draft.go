// File: models/draft.go
package models

import "time"

// Draft is a saved, user-owned instance of generated or edited document text.
type Draft struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	DocumentType string    `bson:"documentType" json:"documentType"` // catalog display name, e.g. "Bail Application"
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

// DraftPatch carries the fields of a partial draft update. Nil members are left untouched.
type DraftPatch struct {
	DocumentType *string `json:"documentType,omitempty"`
	Title        *string `json:"title,omitempty"`
	Content      *string `json:"content,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p DraftPatch) IsEmpty() bool {
	return p.DocumentType == nil && p.Title == nil && p.Content == nil
}

// DraftInput is the client-supplied part of a new draft.
type DraftInput struct {
	DocumentType string `json:"documentType" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content"`
}
