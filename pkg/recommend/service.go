package recommend

import (
	"context"
	"html/template"
	"regexp"
	"strings"

	"github.com/bookshelf-app/bookshelf/pkg/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/robinjoseph08/golib/logger"
)

// NoRatedBooksHint is shown instead of calling the service when nothing has
// been rated yet.
const NoRatedBooksHint = "Rate a few books first and come back for a recommendation."

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// RatedBookLister supplies the rated books a recommendation is based on.
type RatedBookLister interface {
	ListRatedBooks(ctx context.Context) ([]*models.Book, error)
}

// Result is what the recommendations page renders. When Failed is set, Text
// holds the error message and HTML is empty.
type Result struct {
	Enabled bool
	Failed  bool
	Text    string
	HTML    template.HTML
}

type Service struct {
	lister RatedBookLister
	client Client
	policy *bluemonday.Policy
}

// NewService returns a recommendation service. A nil client disables
// recommendations.
func NewService(lister RatedBookLister, client Client) *Service {
	return &Service{
		lister: lister,
		client: client,
		policy: bluemonday.UGCPolicy(),
	}
}

// Recommend never returns an error; failures are reported through the
// Result so the page can show them.
func (svc *Service) Recommend(ctx context.Context) Result {
	if svc.client == nil {
		return Result{}
	}
	log := logger.FromContext(ctx)

	rated, err := svc.lister.ListRatedBooks(ctx)
	if err != nil {
		log.Err(err).Error("failed to list rated books")
		return Result{Enabled: true, Failed: true, Text: err.Error()}
	}
	if len(rated) == 0 {
		return Result{Enabled: true, Text: NoRatedBooksHint, HTML: svc.render(NoRatedBooksHint)}
	}

	books := make([]RatedBook, 0, len(rated))
	for _, b := range rated {
		rb := RatedBook{Title: b.Title, Rating: *b.Rating}
		if b.Author != nil {
			rb.Author = b.Author.Name
		}
		books = append(books, rb)
	}

	text, err := svc.client.Recommend(ctx, books)
	if err != nil {
		log.Warn("recommendation failed", logger.Data{"error": err.Error(), "rated_books": len(books)})
		return Result{Enabled: true, Failed: true, Text: err.Error()}
	}

	return Result{Enabled: true, Text: text, HTML: svc.render(text)}
}

// render turns plain prose into paragraphs and sanitizes the result.
func (svc *Service) render(text string) template.HTML {
	var sb strings.Builder
	for _, para := range paragraphBreak.Split(strings.TrimSpace(text), -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(para, "\n", "<br>"))
		sb.WriteString("</p>")
	}
	// #nosec G203 -- sanitized by bluemonday
	return template.HTML(svc.policy.Sanitize(sb.String()))
}
