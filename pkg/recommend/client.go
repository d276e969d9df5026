package recommend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bookshelf-app/bookshelf/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const systemPrompt = "You are a well-read librarian. Recommend books based on the reader's ratings."

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

// RatedBook is what the recommendation prompt is built from.
type RatedBook struct {
	Title  string
	Author string
	Rating int
}

// Client asks an external service for a recommendation.
type Client interface {
	Recommend(ctx context.Context, books []RatedBook) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// HTTPClient talks to an OpenAI-compatible chat completions endpoint. Calls
// are throttled and pass through a circuit breaker so a failing provider is
// not hammered.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[string]
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	limit := rate.Inf
	if cfg.RecommendRequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RecommendRequestsPerMinute))
	}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "recommend-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.New().Info("circuit breaker state changed", logger.Data{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return &HTTPClient{
		httpClient: &http.Client{Timeout: cfg.RecommendTimeout},
		baseURL:    strings.TrimRight(cfg.RecommendAPIURL, "/"),
		apiKey:     cfg.RecommendAPIKey,
		model:      cfg.RecommendModel,
		limiter:    rate.NewLimiter(limit, 1),
		cb:         cb,
	}
}

func (hc *HTTPClient) Recommend(ctx context.Context, books []RatedBook) (string, error) {
	if err := hc.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "recommendation rate limit")
	}

	text, err := hc.cb.Execute(func() (string, error) {
		return hc.complete(ctx, BuildPrompt(books))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.New("the recommendation service is temporarily unavailable")
	}
	return text, err
}

func (hc *HTTPClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: hc.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+hc.apiKey)

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "recommendation request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := apiErrorResponse{}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", errors.Errorf("recommendation service returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", errors.Errorf("recommendation service returned %d", resp.StatusCode)
	}

	parsed := chatResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode recommendation response")
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.New("recommendation service returned no answer")
	}
	return parsed.Choices[0].Message.Content, nil
}

// BuildPrompt lists the rated books in the given order, one per line.
func BuildPrompt(books []RatedBook) string {
	var sb strings.Builder
	sb.WriteString("Here are books I have read and how I rated them out of 10:\n")
	for _, b := range books {
		fmt.Fprintf(&sb, "- %q by %s: %d/10\n", b.Title, b.Author, b.Rating)
	}
	sb.WriteString("Recommend one book I haven't listed that I am likely to enjoy, and explain why in a short paragraph.")
	return sb.String()
}
