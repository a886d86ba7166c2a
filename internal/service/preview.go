package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
)

// PreviewService fetches a store's public website and extracts the bits
// shown on its profile page.
type PreviewService struct {
	httpClient *http.Client
}

func NewPreviewService() *PreviewService {
	return &PreviewService{
		httpClient: &http.Client{Timeout: config.PreviewFetchTimeout},
	}
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (s *PreviewService) Fetch(ctx context.Context, rawURL string) (*LinkPreview, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("unsupported url scheme")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, config.PreviewMaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	preview := &LinkPreview{URL: rawURL}
	preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		preview.Title = og
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		preview.Description = strings.TrimSpace(desc)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && og != "" {
		preview.Description = strings.TrimSpace(og)
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		preview.ImageURL = strings.TrimSpace(img)
	}

	return preview, nil
}
