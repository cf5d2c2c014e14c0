package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTML converts a node tree to an x/net/html tree.
func ToHTML(n *Node) *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(ToHTML(c))
	}
	return el
}

// Mount replaces every child of mount with the given nodes. The new subtree
// is built before the old children are detached, so mount is never left
// half-populated.
func Mount(mount *html.Node, nodes ...*Node) {
	built := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			built = append(built, ToHTML(n))
		}
	}
	for c := mount.FirstChild; c != nil; {
		next := c.NextSibling
		mount.RemoveChild(c)
		c = next
	}
	for _, b := range built {
		mount.AppendChild(b)
	}
}

// HTML writes nodes as an HTML fragment.
func HTML(w io.Writer, nodes ...*Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(w, ToHTML(n)); err != nil {
			return fmt.Errorf("failed to render %s: %w", n.Tag, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// HTMLString renders nodes to a string.
func HTMLString(nodes ...*Node) (string, error) {
	var sb strings.Builder
	if err := HTML(&sb, nodes...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
