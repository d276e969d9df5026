package books

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/bookshelf-app/bookshelf/pkg/authors"
	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/bookshelf-app/bookshelf/pkg/database"
	"github.com/bookshelf-app/bookshelf/pkg/errcodes"
	"github.com/bookshelf-app/bookshelf/pkg/migrations"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.New(config.NewForTest())
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createAuthor(t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()
	author, err := authors.NewService(db).CreateAuthor(context.Background(), authors.CreateAuthorOptions{Name: name})
	require.NoError(t, err)
	return author
}

func createBook(t *testing.T, svc *Service, authorID int, isbn, title string, year int) *models.Book {
	t.Helper()
	book, err := svc.CreateBook(context.Background(), CreateBookOptions{
		ISBN:            isbn,
		Title:           title,
		PublicationYear: year,
		AuthorID:        authorID,
	})
	require.NoError(t, err)
	return book
}

func countBooks(t *testing.T, db *bun.DB) int {
	t.Helper()
	n, err := db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	return n
}

func titles(books []*models.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestCreateBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")

	book := createBook(t, svc, orwell.ID, "978-0-451-52493-5", " 1984 ", 1949)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "9780451524935", book.ISBN)
	assert.Equal(t, "1984", book.Title)
	assert.Equal(t, 1949, book.PublicationYear)
	assert.Nil(t, book.Rating)
	require.NotNil(t, book.Author)
	assert.Equal(t, "George Orwell", book.Author.Name)
}

func TestCreateBook_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")

	tests := []struct {
		name string
		opts CreateBookOptions
		msg  string
	}{
		{"missing isbn", CreateBookOptions{Title: "1984", PublicationYear: 1949, AuthorID: orwell.ID}, "ISBN is required."},
		{"overlong isbn", CreateBookOptions{ISBN: "978045152493597804515", Title: "1984", PublicationYear: 1949, AuthorID: orwell.ID}, "ISBN must be at most 20 characters."},
		{"missing title", CreateBookOptions{ISBN: "9780451524935", Title: " ", PublicationYear: 1949, AuthorID: orwell.ID}, "Title is required."},
		{"missing year", CreateBookOptions{ISBN: "9780451524935", Title: "1984", AuthorID: orwell.ID}, "Publication year is required."},
		{"missing author", CreateBookOptions{ISBN: "9780451524935", Title: "1984", PublicationYear: 1949}, "Author is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tt.opts)
			assert.ErrorIs(t, err, errcodes.ValidationError(tt.msg))
		})
	}
	assert.Equal(t, 0, countBooks(t, db))
}

func TestCreateBook_FreeFormISBN(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")

	for _, isbn := range []string{"ISBN-ABC-1", "12345", "97804515249350000000"} {
		book, err := svc.CreateBook(context.Background(), CreateBookOptions{
			ISBN:            isbn,
			Title:           "Copy " + isbn,
			PublicationYear: 1949,
			AuthorID:        orwell.ID,
		})
		require.NoError(t, err, isbn)
		assert.Equal(t, models.NormalizeISBN(isbn), book.ISBN)
	}
	assert.Equal(t, 3, countBooks(t, db))
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")
	austen := createAuthor(t, db, "Jane Austen")
	createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)

	for _, isbn := range []string{"9780451524935", "978-0451524935"} {
		_, err := svc.CreateBook(context.Background(), CreateBookOptions{
			ISBN:            isbn,
			Title:           "Something Else",
			PublicationYear: 1813,
			AuthorID:        austen.ID,
		})
		assert.ErrorIs(t, err, errcodes.Conflict("A book with ISBN 9780451524935 already exists."))
	}

	books, err := svc.ListBooks(context.Background(), ListBooksOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1984"}, titles(books))
}

func TestCreateBook_UnknownAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.CreateBook(context.Background(), CreateBookOptions{
		ISBN:            "9780451524935",
		Title:           "1984",
		PublicationYear: 1949,
		AuthorID:        404,
	})
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
	assert.Equal(t, 0, countBooks(t, db))
}

func TestCreateBook_ConcurrentDuplicateISBN(t *testing.T) {
	cfg := config.NewForTest()
	cfg.DatabaseFilePath = t.TempDir() + "/catalog.sqlite"
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBook(context.Background(), CreateBookOptions{
				ISBN:            "9780451524935",
				Title:           fmt.Sprintf("1984 (copy %d)", i),
				PublicationYear: 1949,
				AuthorID:        orwell.ID,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errcodes.Conflict("A book with ISBN 9780451524935 already exists."))
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, countBooks(t, db))
}

func TestRetrieveBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	orwell := createAuthor(t, db, "George Orwell")
	created := createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)

	book, err := svc.RetrieveBook(context.Background(), RetrieveBookOptions{ID: &created.ID})
	require.NoError(t, err)
	assert.Equal(t, "1984", book.Title)
	require.NotNil(t, book.Author)
	assert.Equal(t, orwell.ID, book.Author.ID)

	isbn := "978-0-451-52493-5"
	book, err = svc.RetrieveBook(context.Background(), RetrieveBookOptions{ISBN: &isbn})
	require.NoError(t, err)
	assert.Equal(t, created.ID, book.ID)

	missing := 999
	_, err = svc.RetrieveBook(context.Background(), RetrieveBookOptions{ID: &missing})
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestDeleteBook_LastBookRemovesAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	orwell := createAuthor(t, db, "George Orwell")
	book := createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)

	result, err := svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, result.Book.ID)
	require.NotNil(t, result.DeletedAuthor)
	assert.Equal(t, "George Orwell", result.DeletedAuthor.Name)

	_, err = authors.NewService(db).RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{ID: &orwell.ID})
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
	assert.Equal(t, 0, countBooks(t, db))
}

func TestDeleteBook_SiblingsKeepAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	orwell := createAuthor(t, db, "George Orwell")
	nineteen := createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)
	createBook(t, svc, orwell.ID, "9780452284241", "Animal Farm", 1945)

	result, err := svc.DeleteBook(ctx, nineteen.ID)
	require.NoError(t, err)
	assert.Nil(t, result.DeletedAuthor)

	author, err := authors.NewService(db).RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{ID: &orwell.ID, IncludeBooks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Animal Farm"}, titles(author.Books))
}

func TestDeleteBook_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.DeleteBook(context.Background(), 12)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestAuthorBooksMatchAfterMixedOperations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	authorSvc := authors.NewService(db)
	ctx := context.Background()

	orwell := createAuthor(t, db, "George Orwell")
	austen := createAuthor(t, db, "Jane Austen")
	woolf := createAuthor(t, db, "Virginia Woolf")

	b1 := createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)
	createBook(t, svc, orwell.ID, "9780452284241", "Animal Farm", 1945)
	createBook(t, svc, austen.ID, "9780141439518", "Pride and Prejudice", 1813)
	b4 := createBook(t, svc, austen.ID, "9780141439778", "Emma", 1815)
	createBook(t, svc, woolf.ID, "9780156030359", "Mrs. Dalloway", 1925)

	_, err := svc.DeleteBook(ctx, b1.ID)
	require.NoError(t, err)
	_, err = svc.DeleteBook(ctx, b4.ID)
	require.NoError(t, err)
	_, err = authorSvc.DeleteAuthor(ctx, woolf.ID)
	require.NoError(t, err)
	createBook(t, svc, orwell.ID, "9780156186001", "Homage to Catalonia", 1938)

	remaining, err := authorSvc.ListAuthors(ctx, authors.ListAuthorsOptions{})
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	for _, a := range remaining {
		withBooks, err := authorSvc.RetrieveAuthor(ctx, authors.RetrieveAuthorOptions{ID: &a.ID, IncludeBooks: true})
		require.NoError(t, err)

		var expected []*models.Book
		err = db.NewSelect().Model(&expected).Where("author_id = ?", a.ID).Order("title ASC", "id ASC").Scan(ctx)
		require.NoError(t, err)
		assert.Equal(t, titles(expected), titles(withBooks.Books))
	}
}

func TestRateBook(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	orwell := createAuthor(t, db, "George Orwell")
	book := createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)

	for r := models.MinRating; r <= models.MaxRating; r++ {
		rated, err := svc.RateBook(ctx, book.ID, r)
		require.NoError(t, err)
		require.NotNil(t, rated.Rating)
		assert.Equal(t, r, *rated.Rating)

		stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
		require.NoError(t, err)
		require.NotNil(t, stored.Rating)
		assert.Equal(t, r, *stored.Rating)
	}

	for _, r := range []int{0, -1, 11, 100} {
		_, err := svc.RateBook(ctx, book.ID, 5)
		require.NoError(t, err)

		rated, err := svc.RateBook(ctx, book.ID, r)
		require.NoError(t, err)
		assert.Nil(t, rated.Rating, "rating %d should clear", r)

		stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
		require.NoError(t, err)
		assert.Nil(t, stored.Rating, "rating %d should clear", r)
	}

	_, err := svc.RateBook(ctx, 404, 5)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func seedCatalog(t *testing.T, db *bun.DB, svc *Service) {
	t.Helper()
	orwell := createAuthor(t, db, "George Orwell")
	austen := createAuthor(t, db, "Jane Austen")
	tolkien := createAuthor(t, db, "J.R.R. Tolkien")

	createBook(t, svc, orwell.ID, "9780451524935", "1984", 1949)
	createBook(t, svc, orwell.ID, "9780452284241", "Animal Farm", 1945)
	createBook(t, svc, austen.ID, "9780141439518", "Pride and Prejudice", 1813)
	createBook(t, svc, austen.ID, "9780141439778", "Emma", 1815)
	createBook(t, svc, tolkien.ID, "9780618640157", "The Hobbit", 1937)
	createBook(t, svc, tolkien.ID, "9780618346257", "The Fellowship of the Ring", 1954)
}

func TestListBooks_SortByTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedCatalog(t, db, svc)

	for _, sortBy := range []string{"", SortByTitle} {
		books, err := svc.ListBooks(context.Background(), ListBooksOptions{SortBy: sortBy})
		require.NoError(t, err)
		got := titles(books)
		assert.Len(t, got, 6)
		assert.True(t, sort.StringsAreSorted(got), "titles not sorted: %v", got)
		assert.Equal(t, "1984", got[0])
	}
}

func TestListBooks_SortByAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedCatalog(t, db, svc)

	books, err := svc.ListBooks(context.Background(), ListBooksOptions{SortBy: SortByAuthor})
	require.NoError(t, err)
	require.Len(t, books, 6)

	names := make([]string, len(books))
	for i, b := range books {
		require.NotNil(t, b.Author)
		names[i] = b.Author.Name
	}
	assert.True(t, sort.StringsAreSorted(names), "author names not sorted: %v", names)
	assert.Equal(t, "George Orwell", names[0])
	assert.Equal(t, "Jane Austen", names[5])
}

func TestListBooks_UnknownSort(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.ListBooks(context.Background(), ListBooksOptions{SortBy: "rating"})
	assert.ErrorIs(t, err, errcodes.ValidationError(`Can't sort by "rating".`))
}

func TestListBooks_Search(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedCatalog(t, db, svc)
	ctx := context.Background()

	tests := []struct {
		search   string
		sortBy   string
		expected []string
	}{
		{"orwell", "", []string{"1984", "Animal Farm"}},
		{"ORWELL", SortByAuthor, []string{"1984", "Animal Farm"}},
		{"the", "", []string{"The Fellowship of the Ring", "The Hobbit"}},
		{"farm", SortByTitle, []string{"Animal Farm"}},
		{"  emma  ", "", []string{"Emma"}},
		{"tolkien", "bogus", []string{"The Fellowship of the Ring", "The Hobbit"}},
		{"%", "", []string{}},
		{"_", "", []string{}},
		{"dune", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			books, err := svc.ListBooks(ctx, ListBooksOptions{Search: tt.search, SortBy: tt.sortBy})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(books))

			needle := foldCase(strings.TrimSpace(tt.search))
			for _, b := range books {
				assert.True(t,
					strings.Contains(foldCase(b.Title), needle) ||
						strings.Contains(foldCase(b.Author.Name), needle))
			}
		})
	}
}

func TestListBooks_SearchFoldsNonASCII(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedCatalog(t, db, svc)
	ctx := context.Background()

	marquez := createAuthor(t, db, "Gabriel García Márquez")
	createBook(t, svc, marquez.ID, "9780060883287", "Cien años de soledad", 1967)
	createBook(t, svc, marquez.ID, "9781400034710", "El amor en los tiempos del cólera", 1985)

	tests := []struct {
		search   string
		expected []string
	}{
		{"MÁRQUEZ", []string{"Cien años de soledad", "El amor en los tiempos del cólera"}},
		{"AÑOS", []string{"Cien años de soledad"}},
		{"CÓLERA", []string{"El amor en los tiempos del cólera"}},
		{"GARCI\u0301A", []string{"Cien años de soledad", "El amor en los tiempos del cólera"}},
		{"marquez", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			books, err := svc.ListBooks(ctx, ListBooksOptions{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(books))
		})
	}
}

func TestListRatedBooks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	seedCatalog(t, db, svc)
	ctx := context.Background()

	all, err := svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)
	ratings := map[string]int{"1984": 10, "Emma": 7, "The Hobbit": 10}
	for _, b := range all {
		if r, ok := ratings[b.Title]; ok {
			_, err := svc.RateBook(ctx, b.ID, r)
			require.NoError(t, err)
		}
	}

	rated, err := svc.ListRatedBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1984", "The Hobbit", "Emma"}, titles(rated))
	require.NotNil(t, rated[0].Author)
	assert.Equal(t, "George Orwell", rated[0].Author.Name)
}

func TestScenario_DeletingOnlyBookRemovesAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	authorSvc := authors.NewService(db)
	ctx := context.Background()

	orwell, err := authorSvc.CreateAuthor(ctx, authors.CreateAuthorOptions{Name: "George Orwell"})
	require.NoError(t, err)
	book, err := svc.CreateBook(ctx, CreateBookOptions{
		ISBN:            "9780451524935",
		Title:           "1984",
		PublicationYear: 1949,
		AuthorID:        orwell.ID,
	})
	require.NoError(t, err)

	_, err = svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)

	remaining, err := authorSvc.ListAuthors(ctx, authors.ListAuthorsOptions{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
