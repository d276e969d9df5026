package authors

type CreateAuthorPayload struct {
	Name        string `form:"name" json:"name" mod:"trim" validate:"required,max=100"`
	BirthDate   string `form:"birth_date" json:"birth_date,omitempty" mod:"trim"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death,omitempty" mod:"trim"`
}
