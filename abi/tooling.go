package abi

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/framegrace/raze/ansistyle"
	"github.com/framegrace/raze/core"
)

const highlightStyle = "catppuccin-mocha"

var enryNames = map[string]Language{
	"C":    LangC,
	"Zig":  LangZig,
	"Rust": LangRust,
	"Ada":  LangAda,
}

// DetectLanguage guesses the language of a foreign source from its name
// and content.
func DetectLanguage(filename string, content []byte) (Language, error) {
	if lang, ok := enryNames[enry.GetLanguage(filepath.Base(filename), content)]; ok {
		return lang, nil
	}
	// Headers are often classified as C++ or Objective-C; the extension is
	// the better hint for the targets we support.
	return ParseLanguage(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func lexerName(lang Language) string {
	switch lang {
	case LangC:
		return "c"
	case LangZig:
		return "zig"
	case LangRust:
		return "rust"
	case LangAda:
		return "ada"
	}
	return ""
}

// Highlight colours src for a terminal with colour profile p. Token colours
// go through core.Style so the output uses the same rendering path as the
// rest of the framework.
func Highlight(lang Language, src string, p termenv.Profile) string {
	if p == termenv.Ascii {
		return src
	}
	lexer := lexers.Get(lexerName(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	style := styles.Get(highlightStyle)
	base := style.Get(chroma.Text).Colour

	var sb strings.Builder
	for tok := it(); tok != chroma.EOF; tok = it() {
		sb.WriteString(renderToken(style.Get(tok.Type), base, tok.Value, p))
	}
	return sb.String()
}

func renderToken(entry chroma.StyleEntry, base chroma.Colour, text string, p termenv.Profile) string {
	st := core.DefaultStyle().
		WithBold(entry.Bold == chroma.Yes).
		WithItalic(entry.Italic == chroma.Yes).
		WithUnderline(entry.Underline == chroma.Yes)
	if entry.Colour.IsSet() && entry.Colour != base {
		st = st.WithFg(core.RGBColor(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
	}
	if st == core.DefaultStyle() {
		return text
	}
	// Keep escapes off newlines so each line stays self-contained.
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = ansistyle.Render(st, l, p)
		}
	}
	return strings.Join(lines, "\n")
}

// Diff renders a line diff from want to got, prefixing removed lines with
// "-" and added lines with "+". Equal input yields an empty string.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	// One rune per distinct line; DiffLinesToChars does not round-trip in
	// go-diff v1.3.
	a, b, lines := dmp.DiffLinesToRunes(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
