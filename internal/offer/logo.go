package offer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

const (
	maxLogoBytes  = 5 << 20
	logoMaxWidth  = 600
	logoMaxHeight = 200
)

// LogoLoader fetches the brand logo and normalizes it to PNG.
type LogoLoader struct {
	url        string
	httpClient *http.Client
}

// NewLogoLoader returns a loader for url. An empty url disables the logo.
func NewLogoLoader(url string, httpClient *http.Client) *LogoLoader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &LogoLoader{url: url, httpClient: httpClient}
}

// Load returns the logo as PNG bytes, or nil when no logo is configured.
func (l *LogoLoader) Load(ctx context.Context) ([]byte, error) {
	if l == nil || l.url == "" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("logo request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch logo: status %d", resp.StatusCode)
	}
	return NormalizeLogo(io.LimitReader(resp.Body, maxLogoBytes))
}

// NormalizeLogo decodes any supported raster image, bounds its size and
// re-encodes it as an 8-bit PNG. The PDF writer rejects 16-bit PNGs, which
// image/png produces for anything other than RGBA or NRGBA input.
func NormalizeLogo(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > logoMaxWidth || b.Dy() > logoMaxHeight {
		img = imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)
	} else {
		img = imaging.Clone(img)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}
