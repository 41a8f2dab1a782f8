package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words_p.txt words_q.txt index.html
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// PList returns the embedded syllables starting with "p", in file order.
func PList() ([]string, error) {
	return readLines("words_p.txt")
}

// QList returns the embedded syllables starting with "q", in file order.
func QList() ([]string, error) {
	return readLines("words_q.txt")
}

// IndexHTML returns the single-page front end.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
