// Package fixml holds the attribute-tree layer of the codec: a generic,
// namespace-stripped view of an attribute-centric XML document. Everything
// typed (reports, orders) is built on top of it in internal/protocol.
package fixml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	ErrMalformed  = errors.New("malformed xml document")
	ErrNoDocument = errors.New("document has no root element")
)

// AttributeNode is one element of the attribute tree. Its attributes are
// plain string pairs and each child element sits under its local tag name.
// Keys are unique per node: inserting a child under a key held by an
// attribute drops the attribute, and a repeated child tag replaces the
// earlier one. Nodes are not safe for concurrent mutation.
type AttributeNode struct {
	attrs    map[string]string
	children map[string]*AttributeNode
	// Child insertion order, kept so rendering is stable.
	childOrder []string
}

func NewNode() *AttributeNode {
	return &AttributeNode{
		attrs:    make(map[string]string),
		children: make(map[string]*AttributeNode),
	}
}

// Parse converts a whole XML document into the tree rooted at its document
// element. Tag names are reduced to their local part; a tag with no
// namespace at all is used verbatim, which is a supported input. Namespace
// declarations (xmlns and friends) are not surfaced as attributes. Character
// data is discarded: the dialect is attribute-centric.
func Parse(doc []byte) (*AttributeNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoDocument
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			node, err := parseElement(dec, start)
			if err != nil {
				return nil, err
			}
			if err := expectTrailer(dec); err != nil {
				return nil, err
			}
			return node, nil
		}
	}
}

// expectTrailer consumes whatever follows the document element. Only
// whitespace, comments and processing instructions may appear there; a
// second element or stray character data makes the document ill-formed.
func expectTrailer(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("%w: content after document element", ErrMalformed)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("%w: content after document element", ErrMalformed)
			}
		}
	}
}

// parseElement consumes tokens up to and including start's end element.
func parseElement(dec *xml.Decoder, start xml.StartElement) (*AttributeNode, error) {
	node := NewNode()
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		node.SetAttr(a.Name.Local, a.Value)
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			// Includes running out of input before the element closes.
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			node.SetChild(t.Name.Local, child)
		case xml.EndElement:
			return node, nil
		}
	}
}

// Attr returns the attribute stored under key.
func (n *AttributeNode) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Child returns the child element stored under key.
func (n *AttributeNode) Child(key string) (*AttributeNode, bool) {
	c, ok := n.children[key]
	return c, ok
}

// SetAttr stores an attribute. Setting an attribute under a key already
// held by a child is a no-op; children win over same-named attributes.
func (n *AttributeNode) SetAttr(key, value string) *AttributeNode {
	if _, taken := n.children[key]; taken {
		return n
	}
	n.attrs[key] = value
	return n
}

// SetChild stores a child element under its local tag name. A same-named
// attribute is evicted and a same-named earlier child is replaced.
func (n *AttributeNode) SetChild(key string, child *AttributeNode) *AttributeNode {
	delete(n.attrs, key)
	if _, seen := n.children[key]; !seen {
		n.childOrder = append(n.childOrder, key)
	}
	n.children[key] = child
	return n
}

// Len reports the number of keys on this node, attributes and children
// combined.
func (n *AttributeNode) Len() int {
	return len(n.attrs) + len(n.children)
}

// Elements returns the child element keys in insertion order.
func (n *AttributeNode) Elements() []string {
	elems := make([]string, len(n.childOrder))
	copy(elems, n.childOrder)
	return elems
}

// Keys returns every key on this node in sorted order.
func (n *AttributeNode) Keys() []string {
	keys := make([]string, 0, n.Len())
	for k := range n.attrs {
		keys = append(keys, k)
	}
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
