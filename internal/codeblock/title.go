package codeblock

import (
	"regexp"
	"strings"
)

var (
	reTitle  = regexp.MustCompile(`^(\s*)code:(.+?)(\(.+\))?\s*$`)
	reIndent = regexp.MustCompile(`^(\s*)(.*)$`)
)

// codeTitle is the parsed form of a block title line. It lives only while
// the block it opened is being collected.
type codeTitle struct {
	fileName string
	lang     string
	indent   int
}

// parseTitle reports whether text is a valid block title and, if so, the
// filename, language and indentation it declares. A parenthesized tag names
// the language explicitly; otherwise it is inferred from the filename's last
// extension. A filename with no extension doubles as its own language
// (`code:Makefile`). A trailing-dot filename is not a valid title.
func parseTitle(text string) (codeTitle, bool) {
	m := reTitle.FindStringSubmatch(text)
	if m == nil {
		return codeTitle{}, false
	}

	title := codeTitle{
		fileName: strings.TrimSpace(m[2]),
		indent:   len(m[1]),
	}

	if m[3] != "" {
		title.lang = m[3][1 : len(m[3])-1]

		return title, true
	}

	switch idx := strings.LastIndex(title.fileName, "."); {
	case idx < 0:
		title.lang = title.fileName
	case idx == len(title.fileName)-1:
		return codeTitle{}, false
	default:
		title.lang = title.fileName[idx+1:]
	}

	return title, true
}

// bodyText reports whether text belongs to the body of a block whose title
// is indented titleIndent characters, and if so returns it with the title's
// share of the indentation removed. Residual indentation beyond the title's
// depth is kept.
func bodyText(text string, titleIndent int) (string, bool) {
	m := reIndent.FindStringSubmatch(text)
	if len(m[1]) <= titleIndent {
		return "", false
	}

	return text[titleIndent:], true
}
