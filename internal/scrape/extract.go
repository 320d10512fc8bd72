package scrape

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// matcher decides whether a DOM node is a hit for one selector.
type matcher func(*html.Node) bool

// byClass matches elements carrying the given class token.
func byClass(class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, token := range strings.Fields(attrValue(n, "class")) {
			if token == class {
				return true
			}
		}
		return false
	}
}

// byTag matches elements by tag name.
func byTag(tag string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// byAttrContains matches elements whose attribute value contains substr,
// mirroring CSS [attr*=substr] selectors.
func byAttrContains(key, substr string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		value := attrValue(n, key)
		return value != "" && strings.Contains(value, substr)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll collects every node in the subtree matching m, in document
// order.
func findAll(root *html.Node, m matcher) []*html.Node {
	var found []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if m(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return found
}

// findFirst returns the first node in the subtree matching m, or nil.
func findFirst(root *html.Node, m matcher) *html.Node {
	var found *html.Node
	var visit func(*html.Node) bool
	visit = func(n *html.Node) bool {
		if m(n) {
			found = n
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if visit(c) {
				return true
			}
		}
		return false
	}
	visit(root)
	return found
}

// nodeText concatenates the text content of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// specialRegex drops characters that tend to interfere downstream,
	// keeping word characters, whitespace and common price punctuation.
	specialRegex = regexp.MustCompile(`[^\w\s.\-$€£%()]`)
)

// cleanText normalizes extracted text: whitespace collapsed, stray
// special characters removed.
func cleanText(text string) string {
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = specialRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
