package documents

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
)

// ImageFetcher downloads product images and encodes them as data URIs for
// inline embedding. Every fetch is bounded by the configured timeout and size
// cap so one slow or oversized image cannot stall document rendering.
type ImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewImageFetcher builds a fetcher from the images config section.
func NewImageFetcher(cfg config.ImagesConfig) *ImageFetcher {
	return &ImageFetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		maxBytes: cfg.MaxBytes,
	}
}

// FetchDataURI GETs the image and returns it as a base64 data URI. The
// content type comes from the response header, falling back to sniffing.
func (f *ImageFetcher) FetchDataURI(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", url, err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("image %s exceeds %d byte limit", url, f.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body)), nil
}
