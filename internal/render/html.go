// Package render turns assistant text into display markup. Input is treated
// as plain text: every markup character is escaped first, and only the
// fixed set of transforms below may introduce markup afterwards.
package render

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var (
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.+?)\*`)
	angleURLRe = regexp.MustCompile(`&lt;(https?://[^\s]+?)&gt;`)
	mdLinkRe   = regexp.MustCompile(`\[([^\]\n]+)\]\((https?://[^\s)]+)\)`)
	anchorRe   = regexp.MustCompile(`<a [^>]*>.*?</a>`)
	bareURLRe  = regexp.MustCompile(`https?://[^\s<]+`)
	trailingRe = regexp.MustCompile(`(?:&quot;|&#39;|&gt;|[.,:!?)])+$`)
)

const anchorAttrs = ` target="_blank" rel="noopener noreferrer"`

// Message renders content as HTML.
func Message(content string) string {
	s := escaper.Replace(content)
	s = boldRe.ReplaceAllString(s, `<strong class="font-semibold">$1</strong>`)
	s = italicRe.ReplaceAllString(s, `<em>$1</em>`)
	s = angleURLRe.ReplaceAllString(s, `<a href="$1"`+anchorAttrs+`>$1</a>`)
	s = mdLinkRe.ReplaceAllString(s, `<a href="$2"`+anchorAttrs+`>$1</a>`)
	s = linkBareURLs(s)
	return strings.ReplaceAll(s, "\n", "<br>")
}

// linkBareURLs links URLs that are not already part of an anchor.
func linkBareURLs(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range anchorRe.FindAllStringIndex(s, -1) {
		b.WriteString(linkURLs(s[last:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(linkURLs(s[last:]))
	return b.String()
}

func linkURLs(s string) string {
	return bareURLRe.ReplaceAllStringFunc(s, func(u string) string {
		tail := trailingRe.FindString(u)
		u = u[:len(u)-len(tail)]
		if u == "" || strings.HasSuffix(u, "://") {
			return u + tail
		}
		return `<a href="` + u + `"` + anchorAttrs + `>` + u + `</a>` + tail
	})
}
