package sanitize

func attrs(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var allowedTags = map[string]map[string]bool{
	"a":          attrs("href", "title", "target"),
	"abbr":       attrs("title"),
	"b":          attrs(),
	"blockquote": attrs("cite"),
	"br":         attrs(),
	"code":       attrs(),
	"del":        attrs(),
	"em":         attrs(),
	"h1":         attrs(),
	"h2":         attrs(),
	"h3":         attrs(),
	"h4":         attrs(),
	"h5":         attrs(),
	"h6":         attrs(),
	"hr":         attrs(),
	"i":          attrs(),
	"img":        attrs("src", "alt", "title", "width", "height"),
	"ins":        attrs(),
	"li":         attrs(),
	"mark":       attrs(),
	"ol":         attrs(),
	"p":          attrs(),
	"pre":        attrs(),
	"s":          attrs(),
	"small":      attrs(),
	"span":       attrs(),
	"strong":     attrs(),
	"sub":        attrs(),
	"sup":        attrs(),
	"u":          attrs(),
	"ul":         attrs(),
}

// urlAttrs are only kept when they hold an http, https, mailto or relative URL.
var urlAttrs = attrs("href", "src", "cite")
