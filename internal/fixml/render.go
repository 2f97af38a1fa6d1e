package fixml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
)

// Render serializes the node as a document: an outer root element carrying
// the namespace declaration, with this node as its single child element
// named name. Attributes are written in sorted key order and children in
// insertion order, so output is byte-stable for identical trees.
func (n *AttributeNode) Render(name, root, namespace string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	outer := xml.StartElement{
		Name: xml.Name{Local: root},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: namespace}},
	}
	if err := enc.EncodeToken(outer); err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", root, err)
	}
	if err := n.encode(enc, name); err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", name, err)
	}
	if err := enc.EncodeToken(outer.End()); err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", root, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (n *AttributeNode) encode(enc *xml.Encoder, name string) error {
	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := xml.StartElement{Name: xml.Name{Local: name}}
	for _, k := range keys {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: k},
			Value: n.attrs[k],
		})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, key := range n.childOrder {
		if err := n.children[key].encode(enc, key); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
