// Package xml converts raw feed XML into a generic tree of nested maps and
// slices, preserving namespaced element names as literal keys. It knows
// nothing about product schemas; callers navigate the tree themselves.
package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// AttributePrefix is prepended to attribute names so they cannot collide with
// child element keys.
const AttributePrefix = "@_"

// TextKey holds an element's character data when the element also has
// attributes or children. Pure-text elements decode to a plain string instead.
const TextKey = "#text"

const (
	googleMerchantNS = "http://base.google.com/ns/1.0"
	atomNS           = "http://www.w3.org/2005/Atom"
)

// nsAliases maps well-known namespace URIs back to the short prefix feeds
// write them with. encoding/xml resolves declared prefixes to URIs, so this is
// how a literal "g:price" key survives parsing.
var nsAliases = map[string]string{
	googleMerchantNS: "g",
	atomNS:           "",
}

// ParseError reports malformed XML. The parser does not attempt recovery.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed feed document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes an XML document into a generic tree. Repeated sibling
// elements with the same tag become a []interface{}; a single occurrence
// stays a scalar or map — callers must be prepared for either shape.
func Parse(content string) (map[string]interface{}, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil // body is decoded to UTF-8 before parsing
	}

	root := make(map[string]interface{})
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		if start, ok := token.(xml.StartElement); ok {
			child, err := decodeElement(decoder, start)
			if err != nil {
				return nil, &ParseError{Err: err}
			}
			insertChild(root, nameKey(start.Name), child)
		}
	}

	if len(root) == 0 {
		return nil, &ParseError{Err: errors.New("document contains no elements")}
	}
	return root, nil
}

// decodeElement recursively decodes one element. It returns a plain string
// for pure-text elements, otherwise a map of attributes, children, and text.
func decodeElement(decoder *xml.Decoder, start xml.StartElement) (interface{}, error) {
	node := make(map[string]interface{})

	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		node[AttributePrefix+nameKey(attr.Name)] = attr.Value
	}

	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			child, err := decodeElement(decoder, t)
			if err != nil {
				return nil, err
			}
			insertChild(node, nameKey(t.Name), child)

		case xml.CharData:
			if trimmed := strings.TrimSpace(string(t)); trimmed != "" {
				text.WriteString(trimmed)
			}

		case xml.EndElement:
			if txt := text.String(); txt != "" {
				if len(node) == 0 {
					return txt, nil
				}
				node[TextKey] = txt
			}
			return node, nil
		}
	}
}

// insertChild adds a child under key, promoting repeated siblings to a slice.
func insertChild(node map[string]interface{}, key string, child interface{}) {
	existing, ok := node[key]
	if !ok {
		node[key] = child
		return
	}
	switch v := existing.(type) {
	case []interface{}:
		node[key] = append(v, child)
	default:
		node[key] = []interface{}{v, child}
	}
}

// nameKey rebuilds the literal key for a resolved XML name. Undeclared
// prefixes surface from encoding/xml as the prefix itself and pass through
// verbatim; unrecognized declared namespaces collapse to the local name.
func nameKey(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if alias, ok := nsAliases[n.Space]; ok {
		if alias == "" {
			return n.Local
		}
		return alias + ":" + n.Local
	}
	if !strings.Contains(n.Space, "/") {
		return n.Space + ":" + n.Local
	}
	return n.Local
}
