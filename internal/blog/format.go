package blog

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	excerptRunes   = 200
	wordsPerMinute = 200
)

var (
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	imgSrcRe  = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
	nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)
)

func stripTags(html string) string {
	return tagRe.ReplaceAllString(html, "")
}

// excerpt strips markup and cuts the text to a fixed preview length.
func excerpt(html string) string {
	text := strings.TrimSpace(strings.ReplaceAll(stripTags(html), "&nbsp;", " "))
	if r := []rune(text); len(r) > excerptRunes {
		text = string(r[:excerptRunes])
	}
	return text + "..."
}

func firstImage(html string) string {
	if m := imgSrcRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// ReadTime estimates reading time at 200 words per minute.
func ReadTime(html string) string {
	words := len(strings.Fields(stripTags(html)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}

// Slugify lower-cases title and collapses every run of other characters
// into a single dash.
func Slugify(title string) string {
	return strings.Trim(nonSlugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

func toPost(it feedItem) Post {
	thumb := it.Thumbnail
	if thumb == "" {
		thumb = firstImage(it.Description)
	}
	body := it.Content
	if body == "" {
		body = it.Description
	}
	return Post{
		Title:       it.Title,
		PubDate:     it.PubDate,
		Link:        it.Link,
		GUID:        it.GUID,
		Author:      it.Author,
		Thumbnail:   thumb,
		Description: excerpt(it.Description),
		Categories:  it.Categories,
		Slug:        Slugify(it.Title),
		ReadTime:    ReadTime(body),
	}
}
