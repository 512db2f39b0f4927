package nb2html

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Token framing uses STX/ETX control characters, the same convention
// as Python-Markdown's htmlStash, so surrounding text processors treat
// tokens as opaque placeholders.
const (
	tokenPrefix = "\x02nb2html:"
	tokenSuffix = "\x03"
)

var tokenPattern = regexp.MustCompile(`\x02nb2html:([0-9]+)\x03`)

// Stash protects finished HTML fragments from the text transformations
// later stages of a page build apply. Store registers a fragment and
// returns an opaque token; Restore substitutes every token with its
// fragment byte-for-byte. The stash is append-only and scoped to one
// single-threaded page build.
type Stash struct {
	fragments []string
}

// NewStash creates an empty Stash.
func NewStash() *Stash {
	return &Stash{}
}

// Store registers html and returns the token to embed in page text in
// its place. The fragment is kept verbatim; no escaping, no
// reformatting.
func (s *Stash) Store(html string) string {
	s.fragments = append(s.fragments, html)
	return fmt.Sprintf("%s%d%s", tokenPrefix, len(s.fragments)-1, tokenSuffix)
}

// Len reports the number of stored fragments.
func (s *Stash) Len() int {
	return len(s.fragments)
}

// Restore replaces every token in page with its stored fragment.
// Tokens referring to fragments this stash never stored are left
// untouched.
func (s *Stash) Restore(page string) string {
	if !strings.Contains(page, tokenPrefix) {
		return page
	}
	return tokenPattern.ReplaceAllStringFunc(page, func(token string) string {
		digits := token[len(tokenPrefix) : len(token)-len(tokenSuffix)]
		index, err := strconv.Atoi(digits)
		if err != nil || index >= len(s.fragments) {
			return token
		}
		return s.fragments[index]
	})
}
