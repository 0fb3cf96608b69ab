// Package report talks to Gotenberg, the HTML to PDF conversion service.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable reports that Gotenberg could not be reached or refused
// the conversion.
var ErrUnavailable = errors.New("gotenberg unavailable")

// PageOptions controls the chromium conversion. Sizes are in inches.
type PageOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	Margin          float64
	PrintBackground bool
}

// A4 is the page format used for printed documents.
var A4 = PageOptions{PaperWidth: 8.27, PaperHeight: 11.7, Margin: 0.4, PrintBackground: true}

// Asset is an extra file sent along with index.html, e.g. an image the
// page references by name.
type Asset struct {
	Name string
	Data []byte
}

// Client wraps interactions with the Gotenberg API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. A nil httpClient gets a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Ping checks if the remote Gotenberg service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// RenderHTML converts an HTML page into a PDF document.
func (c *Client) RenderHTML(ctx context.Context, html string, opts PageOptions, assets ...Asset) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, strings.NewReader(html)); err != nil {
		return nil, err
	}
	for _, a := range assets {
		part, err := writer.CreateFormFile("files", a.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(a.Data); err != nil {
			return nil, err
		}
	}
	if err := writePageOptions(writer, opts); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/convert/html", c.baseURL), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: render failed with status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}

func writePageOptions(w *multipart.Writer, opts PageOptions) error {
	if opts.PaperWidth <= 0 || opts.PaperHeight <= 0 {
		return nil
	}
	margin := fmt.Sprintf("%g", opts.Margin)
	fields := [][2]string{
		{"paperWidth", fmt.Sprintf("%g", opts.PaperWidth)},
		{"paperHeight", fmt.Sprintf("%g", opts.PaperHeight)},
		{"marginTop", margin},
		{"marginBottom", margin},
		{"marginLeft", margin},
		{"marginRight", margin},
	}
	if opts.PrintBackground {
		fields = append(fields, [2]string{"printBackground", "true"})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	return nil
}
