package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultUserAgent is sent with every request. Some hosts stall transfers
	// that carry no user agent at all.
	DefaultUserAgent = "Wget/1.16 (linux-gnu)"

	chunkSize   = 1024
	reportEvery = 100 // chunks between progress reports
)

// Progress is a snapshot of a running transfer.
type Progress struct {
	URL      string
	Received int64
	Total    int64 // -1 when the server sent no Content-Length
	Elapsed  time.Duration
	Done     bool
}

// Fraction returns Received/Total in [0,1], or -1 if Total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return -1
	}
	f := float64(p.Received) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// ProgressFunc receives throttled progress updates.
type ProgressFunc func(Progress)

// Client streams remote files to disk.
type Client struct {
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
	progress   ProgressFunc
}

// NewClient builds a Client. headerTimeout bounds the wait for response headers
// only, so large bodies are not cut off.
func NewClient(userAgent string, headerTimeout time.Duration, log *slog.Logger) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout
	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  userAgent,
		log:        log,
	}
}

// OnProgress installs fn as the progress reporter.
func (c *Client) OnProgress(fn ProgressFunc) {
	c.progress = fn
}

// Fetch downloads url to dest and reports whether it succeeded. Failures are
// logged, never returned.
func (c *Client) Fetch(ctx context.Context, url, dest string) bool {
	if err := c.download(ctx, url, dest); err != nil {
		c.log.Error("download failed", "url", url, "dest", dest, "error", err)
		return false
	}
	return true
}

func (c *Client) download(ctx context.Context, url, dest string) error {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("get %s: status %d: %s", url, resp.StatusCode, string(body))
	}

	// Bytes land in a sibling .part file so a broken transfer never leaves a
	// truncated archive under the final name.
	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	received, err := c.copyChunks(f, resp.Body, url, resp.ContentLength)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return err
	}
	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return fmt.Errorf("rename %s: %w", part, err)
	}

	c.log.Info("download complete", "url", url, "dest", dest, "bytes", received)
	return nil
}

// copyChunks writes body to w one chunk at a time, reporting progress every
// reportEvery chunks and once more when the body is exhausted.
func (c *Client) copyChunks(w io.Writer, body io.Reader, url string, total int64) (int64, error) {
	start := time.Now()
	buf := make([]byte, chunkSize)
	var received int64

	for i := 0; ; i++ {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return received, fmt.Errorf("write: %w", err)
			}
			received += int64(n)
		}
		if i%reportEvery == 0 {
			c.report(Progress{URL: url, Received: received, Total: total, Elapsed: time.Since(start)})
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return received, fmt.Errorf("read body: %w", rerr)
		}
	}

	if total > 0 && received != total {
		return received, fmt.Errorf("short body: got %d of %d bytes", received, total)
	}
	c.report(Progress{URL: url, Received: received, Total: total, Elapsed: time.Since(start), Done: true})
	return received, nil
}

func (c *Client) report(p Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}
