package markdown

import (
	"regexp"
	"strings"

	"github.com/google/shlex"
	"github.com/yuin/goldmark/ast"
)

var reInfo = regexp.MustCompile(`\s*(\w+)\s*(.*)\s*`)

func extractInfo(fcb *ast.FencedCodeBlock, source []byte) (string, string, error) {
	if fcb.Info == nil {
		return "", "", nil
	}

	return parseInfo(string(fcb.Info.Text(source)))
}

// parseInfo splits a fence info string into the language word and the value
// of a file=NAME entry among the remaining shell-style key=value words.
func parseInfo(info string) (string, string, error) {
	all := reInfo.FindStringSubmatch(info)
	if all == nil {
		return "", "", nil
	}

	lang := all[1]

	words, err := shlex.Split(all[2])
	if err != nil {
		return "", "", err
	}

	for _, word := range words {
		if value, ok := strings.CutPrefix(word, "file="); ok {
			return lang, value, nil
		}
	}

	return lang, "", nil
}
