package offer

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/report"
)

func sampleLayout() Layout {
	lines := sampleLines()
	return BuildLayout(sampleDocument(), lines, ComputeTotals(lines), English)
}

func TestMarotoRendererProducesPDF(t *testing.T) {
	layout := sampleLayout()
	layout.Logo = mustPNG(t)

	pdf, err := NewMarotoRenderer().Render(t.Context(), layout)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestMarotoRendererKeepsPolishLetters(t *testing.T) {
	layout := BuildLayout(Document{DocumentNo: "SO-1"}, nil, Totals{}, Polish)

	pdf, err := NewMarotoRenderer().Render(t.Context(), layout)
	require.NoError(t, err)

	content := pdfStreams(pdf)
	assert.True(t, bytes.Contains(content, utf16BE("Odległość")), "label drawn with an embedded unicode font")
	assert.True(t, bytes.Contains(content, utf16BE("Oferta sprzedaży")))
}

// pdfStreams concatenates every stream of a PDF, inflating the
// compressed ones.
func pdfStreams(pdf []byte) []byte {
	var out bytes.Buffer
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			return out.Bytes()
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("\nendstream"))
		if j < 0 {
			return out.Bytes()
		}
		data := rest[:j]
		rest = rest[j+len("\nendstream"):]
		if zr, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				data = inflated
			}
		}
		out.Write(data)
	}
}

func utf16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(b[2*i:], u)
	}
	return b
}

func TestGotenbergRendererHTML(t *testing.T) {
	r, err := NewGotenbergRenderer(report.NewClient("http://unused", nil))
	require.NoError(t, err)

	html, err := r.HTML(sampleLayout())

	require.NoError(t, err)
	assert.Contains(t, html, "Sales offer")
	assert.Contains(t, html, "SO-1001")
	assert.Contains(t, html, "Łódź Trading")
	assert.Contains(t, html, "160.00 EUR")
	assert.NotContains(t, html, `src="logo.png"`)
	assert.Less(t, strings.Index(html, "Customer"), strings.Index(html, "Hex bolt"))
}

func TestGotenbergRendererSendsLogo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		f, err := files[0].Open()
		require.NoError(t, err)
		html, _ := io.ReadAll(f)
		assert.Contains(t, string(html), `src="logo.png"`)
		assert.Equal(t, "logo.png", files[1].Filename)
		_, _ = w.Write([]byte("%PDF-1.7 gotenberg"))
	}))
	defer srv.Close()

	r, err := NewGotenbergRenderer(report.NewClient(srv.URL, nil))
	require.NoError(t, err)
	layout := sampleLayout()
	layout.Logo = mustPNG(t)

	pdf, err := r.Render(t.Context(), layout)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 gotenberg", string(pdf))
}

func TestGotenbergRendererFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r, err := NewGotenbergRenderer(report.NewClient(srv.URL, nil))
	require.NoError(t, err)

	_, err = r.Render(t.Context(), sampleLayout())
	assert.ErrorIs(t, err, report.ErrUnavailable)
}
