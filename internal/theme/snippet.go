package theme

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const snippetIndent = "  "

type snippetLine struct {
	depth int
	text  string
}

// snippet collects indented lines and joins them once at the end.
type snippet struct {
	lines []snippetLine
}

func (s *snippet) line(depth int, text string) {
	s.lines = append(s.lines, snippetLine{depth: depth, text: text})
}

func (s *snippet) blank() {
	s.lines = append(s.lines, snippetLine{})
}

// entries writes `key: "value",` lines in the given order.
func (s *snippet) entries(depth int, entries []Entry) {
	for _, e := range entries {
		s.line(depth, e.Key+": "+quote(e.Value)+",")
	}
}

// block writes `name: {` entries `},` and skips empty blocks.
func (s *snippet) block(depth int, name string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	s.line(depth, name+": {")
	s.entries(depth+1, entries)
	s.line(depth, "},")
}

func (s *snippet) String() string {
	var b strings.Builder
	for _, l := range s.lines {
		if l.text != "" {
			b.WriteString(strings.Repeat(snippetIndent, l.depth))
			b.WriteString(l.text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(v string) string {
	return `"` + quoteReplacer.Replace(v) + `"`
}

// capitalize upper-cases the first rune: "xs" -> "Xs", "2xl" -> "2xl".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// kebab turns a camelCase token name into kebab-case.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
