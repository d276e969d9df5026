package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bookshelf-app/bookshelf/pkg/database"
	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	SortByTitle  = "title"
	SortByAuthor = "author"
)

type CreateBookOptions struct {
	ISBN            string
	Title           string
	PublicationYear int
	AuthorID        int
}

type RetrieveBookOptions struct {
	ID   *int
	ISBN *string
}

type ListBooksOptions struct {
	// SortBy is SortByTitle (the default) or SortByAuthor. Ignored when Search
	// is set.
	SortBy string
	// Search matches books whose title or author name contains it, ignoring
	// case.
	Search string
}

// DeleteBookResult describes what a delete removed. DeletedAuthor is set when
// the book was the author's last one and the author went with it.
type DeleteBookResult struct {
	Book          *models.Book
	DeletedAuthor *models.Author
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func duplicateISBN(isbn string) error {
	return errcodes.Conflict(fmt.Sprintf("A book with ISBN %s already exists.", isbn))
}

func (svc *Service) CreateBook(ctx context.Context, opts CreateBookOptions) (*models.Book, error) {
	isbn := models.NormalizeISBN(opts.ISBN)
	title := strings.TrimSpace(opts.Title)

	switch {
	case isbn == "":
		return nil, errcodes.ValidationError("ISBN is required.")
	case utf8.RuneCountInString(isbn) > models.MaxISBNLength:
		return nil, errcodes.ValidationError(fmt.Sprintf("ISBN must be at most %d characters.", models.MaxISBNLength))
	case title == "":
		return nil, errcodes.ValidationError("Title is required.")
	case opts.PublicationYear == 0:
		return nil, errcodes.ValidationError("Publication year is required.")
	case opts.AuthorID == 0:
		return nil, errcodes.ValidationError("Author is required.")
	}

	now := time.Now()
	book := &models.Book{
		CreatedAt:       now,
		UpdatedAt:       now,
		ISBN:            isbn,
		Title:           title,
		PublicationYear: opts.PublicationYear,
		AuthorID:        opts.AuthorID,
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		author := &models.Author{}
		err := tx.NewSelect().
			Model(author).
			Where("a.id = ?", opts.AuthorID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Author")
			}
			return errors.WithStack(err)
		}
		book.Author = author

		taken, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("isbn = ?", isbn).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if taken {
			return duplicateISBN(isbn)
		}

		_, err = tx.NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		switch {
		case database.IsUniqueViolation(err):
			return duplicateISBN(isbn)
		case database.IsForeignKeyViolation(err):
			return errcodes.NotFound("Author")
		}
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book created", logger.Data{"book_id": book.ID, "isbn": book.ISBN, "author_id": book.AuthorID})
	return book, nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	return retrieveBook(ctx, svc.db, opts)
}

func retrieveBook(ctx context.Context, db bun.IDB, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := db.NewSelect().
		Model(book).
		Relation("Author")

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.ISBN != nil {
		q = q.Where("b.isbn = ?", models.NormalizeISBN(*opts.ISBN))
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// DeleteBook removes a book. When it was the last book of its author, the
// author is removed in the same transaction.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) (*DeleteBookResult, error) {
	result := &DeleteBookResult{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := retrieveBook(ctx, tx, RetrieveBookOptions{ID: &bookID})
		if err != nil {
			return err
		}
		result.Book = book

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		remaining, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("author_id = ?", book.AuthorID).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if remaining > 0 {
			return nil
		}

		_, err = tx.NewDelete().
			Model((*models.Author)(nil)).
			Where("id = ?", book.AuthorID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		result.DeletedAuthor = book.Author
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := logger.Data{"book_id": bookID, "author_id": result.Book.AuthorID}
	if result.DeletedAuthor != nil {
		data["author_deleted"] = true
	}
	logger.FromContext(ctx).Info("book deleted", data)
	return result, nil
}

// RateBook stores a rating between MinRating and MaxRating. Any other value
// clears the rating rather than failing.
func (svc *Service) RateBook(ctx context.Context, bookID int, rating int) (*models.Book, error) {
	var book *models.Book

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		book, err = retrieveBook(ctx, tx, RetrieveBookOptions{ID: &bookID})
		if err != nil {
			return err
		}

		book.Rating = nil
		if models.IsValidRating(rating) {
			book.Rating = &rating
		}
		book.UpdatedAt = time.Now()

		_, err = tx.NewUpdate().
			Model(book).
			Column("rating", "updated_at").
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	data := logger.Data{"book_id": bookID, "rating": nil}
	if book.Rating != nil {
		data["rating"] = *book.Rating
	}
	logger.FromContext(ctx).Info("book rated", data)
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	var books []*models.Book

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author")

	search := strings.TrimSpace(opts.Search)
	switch {
	case search != "":
		// SQLite's LIKE only folds ASCII, so matching happens below.
		q = q.Order("b.title ASC", "b.id ASC")
	case opts.SortBy == "" || opts.SortBy == SortByTitle:
		q = q.Order("b.title ASC", "b.id ASC")
	case opts.SortBy == SortByAuthor:
		q = q.Order("author.name ASC", "b.id ASC")
	default:
		return nil, errcodes.ValidationError(fmt.Sprintf("Can't sort by %q.", opts.SortBy))
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if search == "" {
		return books, nil
	}

	needle := foldCase(search)
	matched := make([]*models.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(foldCase(b.Title), needle) ||
			(b.Author != nil && strings.Contains(foldCase(b.Author.Name), needle)) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// foldCase normalizes s for case-insensitive matching across all scripts, so
// "MÁRQUEZ" matches "Márquez" whichever way the accent was composed.
func foldCase(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// ListRatedBooks returns every rated book, best first.
func (svc *Service) ListRatedBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Where("b.rating IS NOT NULL").
		Order("b.rating DESC", "b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}
