// File: models/workspace.go
package models

import "time"

// Workspace is the server-held state of a user's drafting page for one
// document type.
type Workspace struct {
	DocumentTypeID    string    `json:"documentTypeId"`
	GeneratedDocument string    `json:"generatedDocument"`
	EditedContent     string    `json:"editedContent"`
	Editing           bool      `json:"editing"`
	Citations         *[]string `json:"citations,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// HasDocument reports whether a document has been generated.
func (w *Workspace) HasDocument() bool {
	return w.GeneratedDocument != ""
}

// CurrentContent is the text the user currently sees.
func (w *Workspace) CurrentContent() string {
	if w.Editing {
		return w.EditedContent
	}
	return w.GeneratedDocument
}
