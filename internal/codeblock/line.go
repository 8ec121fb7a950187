// Package codeblock extracts `code:filename(lang)` blocks from the
// line-oriented Scrapbox notation. A block starts at a title line and runs
// while following lines are indented deeper than the title.
package codeblock

// Line is a single page line as the Scrapbox API returns it. The extractor
// only reads lines; it never mutates one it was given.
type Line struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	UserID  string `json:"userId,omitempty"`
	Created int64  `json:"created,omitempty"`
	Updated int64  `json:"updated,omitempty"`
}
