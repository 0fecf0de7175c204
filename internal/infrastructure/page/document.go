// Package page wraps a parsed HTML document behind the small DOM surface
// the scan pipeline needs: class-selector queries in document order, text
// extraction, ancestor lookup, additive sibling insertion, and marker
// attributes. Matched elements are never mutated beyond the marker.
package page

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Element is one element node within a Document.
type Element struct {
	node *html.Node
}

// Parse builds a Document from raw HTML.
func Parse(rawHTML string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Render serializes the document back to HTML.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

// QueryAllClass returns every element carrying the given class, in document
// order.
func (d *Document) QueryAllClass(class string) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) {
		if hasClass(n, class) {
			out = append(out, &Element{node: n})
		}
	})
	return out
}

// RemoveAllClass detaches every element carrying the given class. Used to
// drop previously injected badge wrappers before a forced re-scan.
func (d *Document) RemoveAllClass(class string) int {
	var doomed []*html.Node
	walk(d.root, func(n *html.Node) {
		if hasClass(n, class) {
			doomed = append(doomed, n)
		}
	})
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return len(doomed)
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	var buf strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
	})
	return buf.String()
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// ClosestClass walks ancestors (including the element itself) and returns
// the first carrying any of the given classes, or nil.
func (e *Element) ClosestClass(classes ...string) *Element {
	for n := e.node; n != nil; n = n.Parent {
		for _, class := range classes {
			if hasClass(n, class) {
				return &Element{node: n}
			}
		}
	}
	return nil
}

// InsertHTMLBefore parses fragment and inserts the resulting nodes as
// siblings immediately before the element. Insertion is purely additive.
func (e *Element) InsertHTMLBefore(fragment string) error {
	parent := e.node.Parent
	if parent == nil {
		return fmt.Errorf("element has no parent")
	}

	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}

	for _, n := range nodes {
		parent.InsertBefore(n, e.node)
	}
	return nil
}

// walk visits n and its subtree in depth-first document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// hasClass reports whether an element node carries class among its
// space-separated class tokens.
func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(a.Val) {
			if token == class {
				return true
			}
		}
	}
	return false
}
