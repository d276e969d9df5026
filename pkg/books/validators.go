package books

type ListBooksQuery struct {
	Sort   string `query:"sort" json:"sort,omitempty" default:"title"`
	Search string `query:"search" json:"search,omitempty" mod:"trim" validate:"max=150"`
}

type NewBookQuery struct {
	AuthorID int `query:"author_id" json:"author_id,omitempty" validate:"min=0"`
}

type CreateBookPayload struct {
	ISBN            string `form:"isbn" json:"isbn" mod:"trim,isbn" validate:"required,max=20"`
	Title           string `form:"title" json:"title" mod:"trim" validate:"required,max=150"`
	PublicationYear int    `form:"publication_year" json:"publication_year" validate:"required"`
	AuthorID        int    `form:"author_id" json:"author_id" validate:"required,min=1"`
}

// RateBookPayload leaves Rating at zero when the field is blank, which clears
// the rating.
type RateBookPayload struct {
	Rating int `form:"rating" json:"rating"`
}
