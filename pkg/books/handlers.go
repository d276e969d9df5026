package books

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bookshelf-app/bookshelf/pkg/authors"
	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/bookshelf-app/bookshelf/pkg/notice"
	"github.com/bookshelf-app/bookshelf/pkg/templates"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
}

type indexView struct {
	Books  []*models.Book
	Sort   string
	Search string
}

type newBookView struct {
	Authors          []*models.Author
	SelectedAuthorID int
}

func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		SortBy: params.Sort,
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "index.html", templates.Page{
		Title: "Books",
		Data: indexView{
			Books:  books,
			Sort:   params.Sort,
			Search: params.Search,
		},
	}))
}

func (h *handler) newForm(c echo.Context) error {
	ctx := c.Request().Context()

	params := NewBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	allAuthors, err := h.authorService.ListAuthors(ctx, authors.ListAuthorsOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_new.html", templates.Page{
		Title: "Add book",
		Data: newBookView{
			Authors:          allAuthors,
			SelectedAuthorID: params.AuthorID,
		},
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return notice.Failure(c, newFormPath(params.AuthorID), err)
	}

	book, err := h.bookService.CreateBook(ctx, CreateBookOptions{
		ISBN:            params.ISBN,
		Title:           params.Title,
		PublicationYear: params.PublicationYear,
		AuthorID:        params.AuthorID,
	})
	if err != nil {
		return notice.Failure(c, newFormPath(params.AuthorID), err)
	}

	return notice.Success(c, "/", fmt.Sprintf("Book %q added.", book.Title))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book.html", templates.Page{
		Title: book.Title,
		Data:  book,
	}))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notice.Failure(c, "/", errcodes.NotFound("Book"))
	}

	result, err := h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return notice.Failure(c, "/", err)
	}

	msg := fmt.Sprintf("Book %q deleted.", result.Book.Title)
	if result.DeletedAuthor != nil {
		msg += fmt.Sprintf(" %s had no other books and was removed too.", result.DeletedAuthor.Name)
	}
	return notice.Success(c, "/", msg)
}

func (h *handler) rate(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notice.Failure(c, "/", errcodes.NotFound("Book"))
	}
	back := fmt.Sprintf("/books/%d", id)

	params := RateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return notice.Failure(c, back, err)
	}

	book, err := h.bookService.RateBook(ctx, id, params.Rating)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Book")) {
			return notice.Failure(c, "/", err)
		}
		return notice.Failure(c, back, err)
	}

	if book.Rating == nil {
		return notice.Success(c, back, fmt.Sprintf("Rating cleared for %q.", book.Title))
	}
	return notice.Success(c, back, fmt.Sprintf("Rated %q %d/%d.", book.Title, *book.Rating, models.MaxRating))
}

func newFormPath(authorID int) string {
	if authorID > 0 {
		return fmt.Sprintf("/books/new?author_id=%d", authorID)
	}
	return "/books/new"
}
