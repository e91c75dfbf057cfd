package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed words.tsv
var FS embed.FS

// Line is one raw entry of the embedded word list.
type Line struct {
	Word       string
	Definition string
}

func readLines(name string) ([]Line, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLines(f)
}

// ParseLines reads "word<TAB>definition" lines, skipping blanks and
// '#' comments. Words are lowercased; the definition may be empty.
func ParseLines(r io.Reader) ([]Line, error) {
	var out []Line
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		word, def, _ := strings.Cut(s, "\t")
		out = append(out, Line{
			Word:       strings.ToLower(strings.TrimSpace(word)),
			Definition: strings.TrimSpace(def),
		})
	}
	return out, sc.Err()
}

// WordList returns the embedded default word list.
func WordList() ([]Line, error) {
	return readLines("words.tsv")
}
