// Package seed loads the sample catalog into the database.
package seed

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookshelf-app/bookshelf/pkg/authors"
	"github.com/bookshelf-app/bookshelf/pkg/books"
	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

const dateLayout = "2006-01-02"

type Options struct {
	WithRatings bool
}

type Result struct {
	Authors int
	Books   int
	Rated   int
	Skipped int
}

// Clear removes every book and author and resets their id sequences.
func Clear(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Book)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
		if _, err := tx.NewDelete().Model((*models.Author)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		var sequences int
		err := tx.NewSelect().
			Table("sqlite_master").
			ColumnExpr("COUNT(*)").
			Where("type = 'table' AND name = 'sqlite_sequence'").
			Scan(ctx, &sequences)
		if err != nil {
			return errors.WithStack(err)
		}
		if sequences > 0 {
			_, err = tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name IN ('book', 'author')")
			return errors.WithStack(err)
		}
		return nil
	})
}

// Run creates the catalog through the regular services so every seeded row
// passes the same validation as user input. Books whose ISBN already exists
// are skipped.
func Run(ctx context.Context, db *bun.DB, catalog []AuthorSeed, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	authorService := authors.NewService(db)
	bookService := books.NewService(db)
	result := &Result{}

	for _, as := range catalog {
		birth, err := parseDate(as.BirthDate)
		if err != nil {
			return result, err
		}
		death, err := parseDate(as.DateOfDeath)
		if err != nil {
			return result, err
		}

		author, err := authorService.CreateAuthor(ctx, authors.CreateAuthorOptions{
			Name:        as.Name,
			BirthDate:   birth,
			DateOfDeath: death,
		})
		if err != nil {
			return result, errors.WithStack(err)
		}
		result.Authors++

		created := 0
		for _, bs := range as.Books {
			book, err := bookService.CreateBook(ctx, books.CreateBookOptions{
				ISBN:            bs.ISBN,
				Title:           bs.Title,
				PublicationYear: bs.PublicationYear,
				AuthorID:        author.ID,
			})
			if isConflict(err) {
				log.Warn("skipping duplicate isbn", logger.Data{"isbn": bs.ISBN, "title": bs.Title})
				result.Skipped++
				continue
			}
			if err != nil {
				return result, errors.WithStack(err)
			}
			result.Books++
			created++

			if opts.WithRatings && bs.Rating != 0 {
				if _, err := bookService.RateBook(ctx, book.ID, bs.Rating); err != nil {
					return result, errors.WithStack(err)
				}
				result.Rated++
			}
		}

		// An author whose every book was a duplicate would be left empty.
		if created == 0 {
			if _, err := authorService.DeleteAuthor(ctx, author.ID); err != nil {
				return result, errors.WithStack(err)
			}
			result.Authors--
		}
	}

	log.Info("seeded catalog", logger.Data{
		"authors": result.Authors,
		"books":   result.Books,
		"rated":   result.Rated,
		"skipped": result.Skipped,
	})
	return result, nil
}

func isConflict(err error) bool {
	var e *errcodes.Error
	return errors.As(err, &e) && e.Code == "conflict"
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid seed date %q", value)
	}
	return &t, nil
}
