package authors

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/bookshelf-app/bookshelf/pkg/sortname"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type CreateAuthorOptions struct {
	Name        string
	BirthDate   *time.Time
	DateOfDeath *time.Time
}

type RetrieveAuthorOptions struct {
	ID           *int
	Name         *string
	IncludeBooks bool
}

type ListAuthorsOptions struct {
	Limit *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateAuthor(ctx context.Context, opts CreateAuthorOptions) (*models.Author, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, errcodes.ValidationError("Author name is required.")
	}

	now := time.Now()
	author := &models.Author{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        name,
		SortName:    sortname.ForPerson(name),
		BirthDate:   opts.BirthDate,
		DateOfDeath: opts.DateOfDeath,
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(author).
			Returning("*").
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("author created", logger.Data{"author_id": author.ID, "name": author.Name})
	return author, nil
}

func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	author := &models.Author{}

	q := svc.db.
		NewSelect().
		Model(author)

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		q = q.Where("a.name = ?", *opts.Name)
	}
	if opts.IncludeBooks {
		q = q.Relation("Books", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("b.title ASC", "b.id ASC")
		})
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// ListAuthors returns authors in sort name order, as shown in the author picker.
func (svc *Service) ListAuthors(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, error) {
	var authors []*models.Author

	q := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.sort_name ASC", "a.id ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

// DeleteAuthorResult reports how many books went with the author.
type DeleteAuthorResult struct {
	DeletedBooks int
}

// DeleteAuthor removes the author together with every book they wrote.
func (svc *Service) DeleteAuthor(ctx context.Context, authorID int) (*DeleteAuthorResult, error) {
	result := &DeleteAuthorResult{}
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Author)(nil)).
			Where("id = ?", authorID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.NotFound("Author")
		}

		res, err := tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("author_id = ?", authorID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		result.DeletedBooks = int(deleted)

		_, err = tx.NewDelete().
			Model((*models.Author)(nil)).
			Where("id = ?", authorID).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("author deleted", logger.Data{"author_id": authorID, "deleted_books": result.DeletedBooks})
	return result, nil
}
