package xml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/xrechnung-processor/internal/model"
)

// Locator resolves logical field names to values in a parsed tree,
// abstracting over the namespace prefixes and nesting depth of the active
// dialect. Absence is a normal condition: a field that cannot be found
// resolves to the empty string, never an error.
type Locator struct {
	syntax   model.Syntax
	prefixes []string
}

// NewLocator creates a locator for the given dialect
func NewLocator(d model.Dialect) *Locator {
	syntax := d.Syntax()
	return &Locator{
		syntax:   syntax,
		prefixes: prefixCandidates[syntax],
	}
}

// Field resolves a logical field name within scope, trying each candidate
// path for the active dialect in order
func (l *Locator) Field(scope *etree.Element, name string) string {
	for _, path := range PathsFor(name, l.syntax) {
		if v := l.Locate(scope, path); v != "" {
			return v
		}
	}
	return ""
}

// Element resolves a logical field name to the first matching element,
// for anchoring scoped lookups on optional substructures
func (l *Locator) Element(scope *etree.Element, name string) *etree.Element {
	for _, path := range PathsFor(name, l.syntax) {
		if elem := l.locateElement(scope, path); elem != nil {
			return elem
		}
	}
	return nil
}

// Elements resolves a logical field name to all matching elements in
// document order, for repeating structures such as invoice lines
func (l *Locator) Elements(scope *etree.Element, name string) []*etree.Element {
	for _, path := range PathsFor(name, l.syntax) {
		if elems := l.locateAll(scope, path); len(elems) > 0 {
			return elems
		}
	}
	return nil
}

// Locate resolves a raw path within scope. Resolution order, first match
// wins: an exact id="<path>" attribute anywhere in scope, then a
// namespace-qualified walk of the path segments, with "seg/@attr" tails
// returning the attribute value. The result is whitespace-trimmed; any
// further normalization is the extractor's business.
func (l *Locator) Locate(scope *etree.Element, path string) string {
	if scope == nil {
		return ""
	}

	// Semantically tagged markup wins over structural lookup.
	if elem := findByIDAttr(scope, path); elem != nil {
		return strings.TrimSpace(elem.Text())
	}

	parts := strings.Split(path, "/")
	current := scope
	for i, part := range parts {
		if strings.HasPrefix(part, "@") {
			if i != len(parts)-1 {
				return ""
			}
			return strings.TrimSpace(current.SelectAttrValue(part[1:], ""))
		}
		next := l.findDescendant(current, part)
		if next == nil {
			return ""
		}
		current = next
	}
	return strings.TrimSpace(current.Text())
}

func (l *Locator) locateElement(scope *etree.Element, path string) *etree.Element {
	if scope == nil {
		return nil
	}
	current := scope
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, "@") {
			return nil
		}
		next := l.findDescendant(current, part)
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

func (l *Locator) locateAll(scope *etree.Element, path string) []*etree.Element {
	if scope == nil {
		return nil
	}
	parts := strings.Split(path, "/")
	// Walk down to the parent of the repeating element, then collect all
	// occurrences of the last segment.
	current := scope
	for _, part := range parts[:len(parts)-1] {
		current = l.findDescendant(current, part)
		if current == nil {
			return nil
		}
	}
	var out []*etree.Element
	collectDescendants(current, parts[len(parts)-1], &out)
	return out
}

// findDescendant returns the first descendant of scope with the given
// local name, preferring the dialect's configured prefixes, then
// unqualified elements, then any prefix
func (l *Locator) findDescendant(scope *etree.Element, local string) *etree.Element {
	for _, prefix := range l.prefixes {
		if elem := findPrefixed(scope, prefix, local); elem != nil {
			return elem
		}
	}
	if elem := findPrefixed(scope, "", local); elem != nil {
		return elem
	}
	return findAnyPrefix(scope, local)
}

func findPrefixed(scope *etree.Element, space, local string) *etree.Element {
	for _, child := range scope.ChildElements() {
		if child.Tag == local && child.Space == space {
			return child
		}
		if found := findPrefixed(child, space, local); found != nil {
			return found
		}
	}
	return nil
}

func findAnyPrefix(scope *etree.Element, local string) *etree.Element {
	for _, child := range scope.ChildElements() {
		if child.Tag == local {
			return child
		}
		if found := findAnyPrefix(child, local); found != nil {
			return found
		}
	}
	return nil
}

// collectDescendants gathers every descendant with the given local name in
// document order, ignoring namespace prefixes. Matching elements are not
// searched again; a line item cannot nest inside another line item.
func collectDescendants(scope *etree.Element, local string, out *[]*etree.Element) {
	for _, child := range scope.ChildElements() {
		if child.Tag == local {
			*out = append(*out, child)
			continue
		}
		collectDescendants(child, local, out)
	}
}

// findByIDAttr searches scope for an element carrying id="<name>"
func findByIDAttr(scope *etree.Element, name string) *etree.Element {
	if scope.SelectAttrValue("id", "") == name {
		return scope
	}
	for _, child := range scope.ChildElements() {
		if found := findByIDAttr(child, name); found != nil {
			return found
		}
	}
	return nil
}
