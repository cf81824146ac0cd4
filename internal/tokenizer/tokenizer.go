// Package tokenizer turns free text into lowercase alphanumeric tokens.
package tokenizer

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)

// Tokenize lowercases text, replaces every character outside [a-z0-9 ] with a
// space and splits on whitespace runs. Order and duplicates are kept.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.Fields(nonAlnum.ReplaceAllString(lower, " "))
}
