// Package render turns widget state into display node trees and writes those
// trees to a terminal (lipgloss) or as HTML fragments (x/net/html).
package render

import (
	"slices"
	"strings"
)

// Attr is a single element attribute. Attribute order is preserved.
type Attr struct {
	Key string
	Val string
}

// Node is a display tree element. A node with an empty Tag is a bare text node.
type Node struct {
	Tag      string
	Class    string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El creates an element node.
func El(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

// TextEl creates an element node holding text.
func TextEl(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// Text creates a bare text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// Set sets an attribute, replacing an existing value, and returns n.
func (n *Node) Set(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Append adds children, skipping nils, and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr returns the value of key.
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether key is set.
func (n *Node) HasAttr(key string) bool {
	return slices.ContainsFunc(n.Attrs, func(a Attr) bool { return a.Key == key })
}

// HasClass reports whether class is one of n's classes.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(strings.Fields(n.Class), class)
}

// Walk visits n and its descendants depth first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node carrying class.
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(class) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node carrying class.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(class) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// TextContent concatenates all text below n.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		sb.WriteString(c.Text)
		return true
	})
	return sb.String()
}
