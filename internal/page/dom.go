package page

import (
	"strings"

	"golang.org/x/net/html"
)

type matcher func(n *html.Node) bool

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func attrOr(n *html.Node, key, def string) string {
	if v := strings.TrimSpace(attr(n, key)); v != "" {
		return v
	}
	return def
}

func has(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasAttr(key string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && has(n, key)
	}
}

func hasClass(class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func isTag(tag string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func within(ancestor, m matcher) func(n *html.Node) *html.Node {
	return func(n *html.Node) *html.Node {
		if scope := find(n, ancestor); scope != nil {
			return find(scope, m)
		}
		return nil
	}
}

// find returns the first descendant of n (depth first, document order) that
// matches m. n itself is not considered.
func find(n *html.Node, m matcher) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m(c) {
			return c
		}
		if found := find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant of n that matches m, in document order.
// Matches are not searched for nested matches.
func findAll(n *html.Node, m matcher) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m(c) {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, m)...)
	}
	return out
}

// textContent concatenates the text nodes under n and collapses whitespace.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
