// File: models/clause.go
package models

import "time"

// DefaultClauseCategory is applied when a clause is saved without a category.
const DefaultClauseCategory = "General"

// Clause is a reusable named snippet of legal text.
type Clause struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	Category     string    `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	LastModified time.Time `bson:"lastModified" json:"lastModified"`
}

type ClausePatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (p ClausePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil
}

type ClauseInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}
