package models

import "time"

type Snippet struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Language  string    `db:"language"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SnippetPatch carries a partial update; nil fields are left unchanged.
type SnippetPatch struct {
	Title    *string
	Language *string
	Code     *string
}

// Apply copies the non-nil fields of p onto s.
func (p SnippetPatch) Apply(s *Snippet) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Code != nil {
		s.Code = *p.Code
	}
}
