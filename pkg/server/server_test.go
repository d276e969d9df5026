package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/bookshelf-app/bookshelf/pkg/database"
	"github.com/bookshelf-app/bookshelf/pkg/migrations"
	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestServer(t *testing.T, cfg *config.Config) (*echo.Echo, *bun.DB) {
	t.Helper()

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	e, err := newEcho(cfg, db)
	require.NoError(t, err)
	return e, db
}

func do(e *echo.Echo, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(echo.HeaderAccept, "text/html")
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestNew(t *testing.T) {
	cfg := config.NewForTest()
	cfg.ServerPort = 5123

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	srv, err := New(cfg, db)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5123", srv.Addr)
	assert.NotNil(t, srv.Handler)
}

func TestHealth(t *testing.T) {
	e, _ := setupTestServer(t, config.NewForTest())

	rr := do(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNotFound(t *testing.T) {
	e, _ := setupTestServer(t, config.NewForTest())

	rr := do(e, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found.")
}

func TestCatalogFlow(t *testing.T) {
	e, db := setupTestServer(t, config.NewForTest())
	ctx := context.Background()

	rr := do(e, http.MethodPost, "/authors", url.Values{"name": {"George Orwell"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	var author models.Author
	require.NoError(t, db.NewSelect().Model(&author).Scan(ctx))

	rr = do(e, http.MethodPost, "/books", url.Values{
		"isbn":             {"9780451524935"},
		"title":            {"1984"},
		"publication_year": {"1949"},
		"author_id":        {itoa(author.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get(echo.HeaderLocation))

	rr = do(e, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "1984")
	assert.Contains(t, rr.Header().Get("X-Frame-Options"), "SAMEORIGIN")

	var book models.Book
	require.NoError(t, db.NewSelect().Model(&book).Scan(ctx))

	rr = do(e, http.MethodPost, "/books/"+itoa(book.ID)+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	n, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTestRoutes(t *testing.T) {
	e, db := setupTestServer(t, config.NewForTest())

	req := httptest.NewRequest(http.MethodPost, "/test/catalog", strings.NewReader(`{"with_ratings":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 15, body["authors"])
	assert.Equal(t, 67, body["books"])
	assert.Equal(t, 11, body["rated"])

	rr = do(e, http.MethodDelete, "/test/catalog", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	n, err := db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTestRoutes_OnlyInTestEnvironment(t *testing.T) {
	cfg := config.NewForTest()
	cfg.Environment = "production"
	e, _ := setupTestServer(t, cfg)

	rr := do(e, http.MethodDelete, "/test/catalog", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
