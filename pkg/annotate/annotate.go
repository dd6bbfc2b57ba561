// Package annotate marks source positions for diagnostics, as plain text
// with a caret line or as safe HTML.
package annotate

import (
	"embed"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

var loadTemplate = sync.OnceValues(func() (*template.Template, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	return template.New("annotated.html").ParseFS(trustedFS, "templates/annotated.html")
})

// flatten keeps every character on one line so caret columns line up.
func flatten(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, text)
}

// Text returns text followed by a line with a caret under each position.
// Positions are byte offsets into text; carets are placed by rune column.
// Positions past the end of text point just after its last character.
func Text(text string, positions ...int) string {
	line := flatten(text)
	if len(positions) == 0 {
		return line
	}
	cols := make([]int, 0, len(positions))
	width := 0
	for _, p := range positions {
		if p < 0 {
			continue
		}
		col := column(line, p)
		cols = append(cols, col)
		if col+1 > width {
			width = col + 1
		}
	}
	carets := []byte(strings.Repeat(" ", width))
	for _, col := range cols {
		carets[col] = '^'
	}
	return line + "\n" + strings.TrimRight(string(carets), " ")
}

// column converts the byte offset p into a rune column of line.
func column(line string, p int) int {
	if p >= len(line) {
		return utf8.RuneCountInString(line) + p - len(line)
	}
	return utf8.RuneCountInString(line[:p])
}

type segment struct {
	Text   string
	Marked bool
}

func segments(text string, positions []int) []segment {
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 {
			marked[p] = true
		}
	}
	ends := make([]int, 0, len(marked))
	for p := range marked {
		ends = append(ends, p)
	}
	sort.Ints(ends)

	line := flatten(text)
	var out []segment
	prev := 0
	for _, p := range ends {
		if p >= len(line) {
			if prev < len(line) {
				out = append(out, segment{Text: line[prev:]})
				prev = len(line)
			}
			out = append(out, segment{Text: " ", Marked: true})
			break
		}
		if p < prev {
			continue
		}
		if p > prev {
			out = append(out, segment{Text: line[prev:p]})
		}
		_, size := utf8.DecodeRuneInString(line[p:])
		out = append(out, segment{Text: line[p : p+size], Marked: true})
		prev = p + size
	}
	if prev < len(line) {
		out = append(out, segment{Text: line[prev:]})
	}
	return out
}

// HTML renders text with the characters at positions highlighted, followed
// by message when it is not empty.
func HTML(text, message string, positions ...int) (safehtml.HTML, error) {
	t, err := loadTemplate()
	if err != nil {
		return safehtml.HTML{}, err
	}
	return t.ExecuteToHTML(struct {
		Segments []segment
		Message  string
	}{
		Segments: segments(text, positions),
		Message:  message,
	})
}
