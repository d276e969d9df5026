package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/uptrace/bun"
)

const (
	MinRating = 1
	MaxRating = 10

	// MaxISBNLength bounds the stored ISBN. Any other text is accepted as-is.
	MaxISBNLength = 20
)

type Book struct {
	bun.BaseModel `bun:"table:book,alias:b" tstype:"-"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ISBN            string    `bun:"isbn,notnull" json:"isbn"`
	Title           string    `bun:",notnull" json:"title"`
	PublicationYear int       `bun:",notnull" json:"publication_year"`
	AuthorID        int       `bun:",notnull" json:"author_id"`
	Author          *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty" tstype:"Author"`
	Rating          *int      `json:"rating"`
}

// IsValidRating reports whether r can be stored as a rating.
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// NormalizeISBN removes hyphens and whitespace and upper-cases letters,
// so "978-0-451-52493-5" and "9780451524935" are the same book.
func NormalizeISBN(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
