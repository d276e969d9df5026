package models

import (
	"time"

	"github.com/uptrace/bun"
)

const dateLayout = "2006-01-02"

type Author struct {
	bun.BaseModel `bun:"table:author,alias:a" tstype:"-"`

	ID          int        `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `bun:",nullzero" json:"name"`
	SortName    string     `bun:",notnull" json:"sort_name"`
	BirthDate   *time.Time `json:"birth_date"`
	DateOfDeath *time.Time `json:"date_of_death"`
	Books       []*Book    `bun:"rel:has-many,join:id=author_id" json:"books,omitempty" tstype:"Book[]"`
}

// Lifespan renders the known dates as "1903-06-25 to 1950-01-21", with "?" for
// whichever end is missing. Empty when neither is known.
func (a *Author) Lifespan() string {
	if a.BirthDate == nil && a.DateOfDeath == nil {
		return ""
	}
	return formatDate(a.BirthDate) + " to " + formatDate(a.DateOfDeath)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return t.Format(dateLayout)
}
