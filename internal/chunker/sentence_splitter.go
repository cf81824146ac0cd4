package chunker

import (
	"regexp"
	"strings"
)

// SentenceSplitter cuts text into sentences at '.', '!' or '?' followed by
// whitespace.
//
// The text after the last boundary is kept as a final sentence even when it
// has no terminal punctuation. With dropUnterminated set, such a fragment is
// discarded instead.
type SentenceSplitter struct {
	dropUnterminated bool
	boundary         *regexp.Regexp
}

func NewSentenceSplitter(dropUnterminated bool) *SentenceSplitter {
	return &SentenceSplitter{
		dropUnterminated: dropUnterminated,
		boundary:         regexp.MustCompile(`[.!?]\s+`),
	}
}

// Split returns the trimmed, non-empty sentences of text in their original order.
func (c *SentenceSplitter) Split(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range c.boundary.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark, which stays with its sentence.
		sentences = appendTrimmed(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	tail := strings.TrimSpace(text[start:])
	if tail != "" && (!c.dropUnterminated || terminated(tail)) {
		sentences = append(sentences, tail)
	}
	return sentences
}

func appendTrimmed(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func terminated(s string) bool {
	switch s[len(s)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
