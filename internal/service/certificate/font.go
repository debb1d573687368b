package certificate

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/image/font/sfnt"
)

const fontFamily = "DejaVu"

//go:embed fonts/DejaVuSansCondensed.ttf
var fontTTF []byte

var fontFace = func() *sfnt.Font {
	f, err := sfnt.Parse(fontTTF)
	if err != nil {
		panic(fmt.Sprintf("parse embedded certificate font: %v", err))
	}
	return f
}()

// missingGlyphs returns the distinct runes of s the certificate font cannot draw.
func missingGlyphs(s string) []rune {
	var (
		buf     sfnt.Buffer
		missing []rune
	)
	seen := make(map[rune]struct{})
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		// the PDF writer encodes text as UCS-2, so runes past the BMP never render
		if r > 0xFFFF {
			missing = append(missing, r)
			continue
		}
		idx, err := fontFace.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

// checkPrintable fails with ErrInvalidRequest when a field holds characters
// that would not appear on the certificate.
func checkPrintable(fields ...field) error {
	var problems []string
	for _, f := range fields {
		if missing := missingGlyphs(f.Value); len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s contains unsupported characters %q", f.Label, string(missing)))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}
