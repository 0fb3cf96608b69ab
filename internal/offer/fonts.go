package offer

import (
	"sync"

	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// documentFont is the UTF-8 family used by the local renderer. The core
// PDF fonts only cover cp1252, so Polish letters need an embedded font.
const documentFont = "go"

var (
	fontsOnce sync.Once
	fonts     []*entity.CustomFont
	fontsErr  error
)

func documentFonts() ([]*entity.CustomFont, error) {
	fontsOnce.Do(func() {
		fonts, fontsErr = repository.New().
			AddUTF8FontFromBytes(documentFont, fontstyle.Normal, goregular.TTF).
			AddUTF8FontFromBytes(documentFont, fontstyle.Bold, gobold.TTF).
			AddUTF8FontFromBytes(documentFont, fontstyle.Italic, goitalic.TTF).
			AddUTF8FontFromBytes(documentFont, fontstyle.BoldItalic, gobolditalic.TTF).
			Load()
	})
	return fonts, fontsErr
}
