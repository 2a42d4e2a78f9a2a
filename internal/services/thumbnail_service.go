package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// retryLogger adapts zerolog to retryablehttp.LeveledLogger
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

// ThumbnailServiceImpl implements ThumbnailService over HTTP
type ThumbnailServiceImpl struct {
	client   *retryablehttp.Client
	timeout  time.Duration
	maxBytes int64
}

// NewThumbnailService creates a thumbnail fetcher
func NewThumbnailService(timeout time.Duration, maxBytes int64, retries int, logger zerolog.Logger) *ThumbnailServiceImpl {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = retryLogger{logger: logger}

	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	return &ThumbnailServiceImpl{client: client, timeout: timeout, maxBytes: maxBytes}
}

// Fetch downloads and decodes the image at url
func (s *ThumbnailServiceImpl) Fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build thumbnail request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: thumbnail returned %s", ErrAccessDenied, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: thumbnail returned %s", ErrNotFound, resp.Status)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("fetch thumbnail: unexpected status %s", resp.Status)
	}
	if resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPreviewTooLarge, resp.ContentLength)
	}

	body := io.LimitReader(resp.Body, s.maxBytes+1)
	lr := &countingReader{r: body}
	img, _, err := image.Decode(lr)
	if err != nil {
		if lr.n > s.maxBytes {
			return nil, fmt.Errorf("%w: over %d bytes", ErrPreviewTooLarge, s.maxBytes)
		}
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrPreviewUnsupported, err)
		}
		return nil, fmt.Errorf("decode thumbnail: %w", err)
	}
	return img, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
