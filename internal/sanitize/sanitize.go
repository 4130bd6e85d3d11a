// Package sanitize makes bookmark text safe to embed in HTML.
//
// Markup is tokenized rather than pattern matched. Tags on the allow-list are
// rebuilt with their permitted attributes only; every other tag is turned
// into escaped text. Running HTML on its own output returns it unchanged.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
)

// Bookmark returns a copy of b with its free-text fields sanitized.
func Bookmark(b models.Bookmark) models.Bookmark {
	return models.Bookmark{
		ID:          b.ID,
		Title:       HTML(b.Title),
		URL:         HTML(b.URL),
		Description: HTML(b.Description),
		Rating:      b.Rating,
	}
}

func Bookmarks(bs []models.Bookmark) []models.Bookmark {
	out := make([]models.Bookmark, len(bs))
	for i := range bs {
		out[i] = Bookmark(bs[i])
	}
	return out
}

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func HTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	var b strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(s))
	consumed := 0
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			// A tag still open at the end of input is kept as text.
			b.WriteString(textEscaper.Replace(s[consumed:]))
			return b.String()
		}
		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case nethtml.TextToken, nethtml.DoctypeToken:
			b.WriteString(textEscaper.Replace(raw))
		case nethtml.CommentToken:
			if !isComment(raw) {
				b.WriteString(textEscaper.Replace(raw))
			}
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			// raw is copied before TagName lower-cases the buffer.
			name, hasAttr := z.TagName()
			allowed, ok := allowedTags[string(name)]
			if !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			writeTag(&b, tt, string(name), allowed, z, hasAttr)
		}
	}
}

// isComment reports whether raw is a terminated "<!-- -->" comment. The
// tokenizer also reports "</>", "</ x>", "<?x>" and "<!x>" as comments.
func isComment(raw string) bool {
	return strings.HasPrefix(raw, "<!--") && strings.HasSuffix(raw, "-->")
}

func writeTag(b *strings.Builder, tt nethtml.TokenType, name string, allowed map[string]bool, z *nethtml.Tokenizer, hasAttr bool) {
	if tt == nethtml.EndTagToken {
		b.WriteString("</" + name + ">")
		return
	}

	b.WriteString("<" + name)
	seen := make(map[string]bool)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := string(key)
		if !allowed[k] || seen[k] {
			continue
		}
		seen[k] = true
		v := string(val)
		if urlAttrs[k] && !isSafeURL(v) {
			continue
		}
		b.WriteString(" " + k + `="` + html.EscapeString(v) + `"`)
	}
	if tt == nethtml.SelfClosingTagToken {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
}

func isSafeURL(v string) bool {
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}
