package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"

	"github.com/lexaid/counsel/fault"
)

type Scraper struct {
	client *http.Client
}

func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func NewWithClient(client *http.Client) *Scraper {
	return &Scraper{client: client}
}

// Fetch downloads the page at url and returns its visible text with all
// markup stripped.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fault.ErrValidation, err)
	}

	rsp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fault.ErrUpstream, err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: fetch %s: http %d", fault.ErrUpstream, url, rsp.StatusCode)
	}

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fault.ErrUpstream, err)
	}

	return StripTags(string(body)), nil
}

// StripTags reduces an HTML document to its text content. Script and style
// bodies are dropped entirely.
func StripTags(doc string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(doc))

	var sb strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippable(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippable(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if len(text) == 0 {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text)
		}
	}
}

func skippable(tag string) bool {
	switch tag {
	case "script", "style", "noscript":
		return true
	}
	return false
}
