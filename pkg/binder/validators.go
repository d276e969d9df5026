package binder

import (
	"context"

	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/go-playground/mold/v4"
)

// isbnModifier strips the separators people type into ISBNs and upper-cases
// letters.
func isbnModifier(_ context.Context, fl mold.FieldLevel) error {
	if !fl.Field().CanSet() {
		return nil
	}
	fl.Field().SetString(models.NormalizeISBN(fl.Field().String()))
	return nil
}
