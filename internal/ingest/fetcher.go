package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ppiankov/proofstack/internal/model"
	"github.com/ppiankov/proofstack/internal/util"
	"golang.org/x/net/html"
)

// Fetcher retrieves source documents over HTTP. HTML responses are reduced
// to visible text before chunking so markup never pollutes retrieval.
type Fetcher struct {
	httpClient   *http.Client
	robots       *util.RobotsChecker
	userAgent    string
	maxBytes     int64
	ignoreRobots bool
}

// NewFetcher creates a fetcher from HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:       util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBodyBytes,
		ignoreRobots: cfg.IgnoreRobots,
	}
}

// FetchURL retrieves one URL as a source document
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (model.SourceDoc, error) {
	if !f.ignoreRobots {
		allowed, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return model.SourceDoc{}, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return model.SourceDoc{}, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.SourceDoc{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return model.SourceDoc{}, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.SourceDoc{}, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return model.SourceDoc{}, fmt.Errorf("read body: %w", err)
	}

	content := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		content = ExtractVisibleText(content)
	}

	return model.SourceDoc{
		ID:       "source-" + slugify(rawURL),
		FileName: rawURL,
		Content:  content,
		IsDemo:   false,
	}, nil
}

// ExtractVisibleText extracts text nodes from HTML, skipping scripts/styles.
// Malformed markup is tolerated; the parser never fails on text input.
func ExtractVisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}
