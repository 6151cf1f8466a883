package markup

import "strings"

// ingredientLabelTags are the elements whose rendered text can announce an
// ingredient section: headings, paragraphs, and strong/bold/emphasis runs.
var ingredientLabelTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "strong": true, "b": true, "em": true,
}

var listTags = map[string]bool{"ul": true, "ol": true}

// ExtractIngredients pulls the ordered candidate ingredient lines out of one
// recipe's markup. It looks for heading-like elements whose text mentions
// "ingredient" and takes the nearest following list; when no such section
// exists it falls back to every list in the document. Repeated lines within
// the same recipe are dropped. Malformed or empty markup yields nil, never
// an error.
func ExtractIngredients(raw string) []string {
	doc := Parse(raw)
	nodes := flatten(doc)

	seen := make(map[string]bool)
	var lines []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		lines = append(lines, s)
	}

	// Primary pass: each ingredient-labeled element contributes the nearest
	// list that follows it in document order. A label with no following list
	// contributes nothing.
	for i, n := range nodes {
		if !ingredientLabelTags[n.Data] {
			continue
		}
		if !strings.Contains(strings.ToLower(n.Text()), "ingredient") {
			continue
		}
		for _, m := range nodes[i+1:] {
			if listTags[m.Data] {
				collectItems(m, add)
				break
			}
		}
	}
	if len(lines) > 0 {
		return lines
	}

	// Fallback: no labeled section found anywhere, so take every list in the
	// document. Nested lists are revisited here; dedup keeps items single.
	for _, n := range nodes {
		if listTags[n.Data] {
			collectItems(n, add)
		}
	}
	return lines
}

// flatten returns every element node in pre-order, i.e. document order.
func flatten(root *Node) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Type != ElementNode {
				continue
			}
			out = append(out, c)
			walk(c)
		}
	}
	walk(root)
	return out
}

// collectItems extracts the trimmed text of every item in a list container.
// Nested sub-lists are flattened into the parent's entries: the item's own
// text first, then the sub-list's items, keeping document order.
func collectItems(list *Node, add func(string)) {
	for _, c := range list.Children {
		if c.Type != ElementNode {
			continue
		}
		switch {
		case c.Data == "li":
			add(itemText(c))
			for _, sub := range childLists(c) {
				collectItems(sub, add)
			}
		case listTags[c.Data]:
			collectItems(c, add)
		}
	}
}

// itemText returns a list item's own text, excluding any nested sub-list.
func itemText(item *Node) string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			switch {
			case c.Type == TextNode:
				b.WriteString(c.Data)
			case listTags[c.Data]:
				// handled separately by collectItems
			default:
				walk(c)
			}
		}
	}
	walk(item)
	return strings.TrimSpace(b.String())
}

// childLists finds the top-most list containers nested under a node.
func childLists(n *Node) []*Node {
	var lists []*Node
	var walk func(*Node)
	walk = func(m *Node) {
		for _, c := range m.Children {
			if c.Type != ElementNode {
				continue
			}
			if listTags[c.Data] {
				lists = append(lists, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return lists
}
