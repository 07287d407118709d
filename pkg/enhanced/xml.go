// File: xml.go
// Title: XML Serializer
// Description: Renders the snapshot as an XML document rooted at the
//              sanitized error name.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Compact output is opt-in

package enhanced

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"
)

var invalidTagChars = regexp.MustCompile(`[^a-zA-Z0-9\-._]`)

// SanitizeXMLTag turns name into a valid element name. Characters outside
// letters, digits, '-', '.' and '_' become '_', and a '_' is prepended
// unless the name starts with a letter or underscore.
func SanitizeXMLTag(name string) string {
	tag := invalidTagChars.ReplaceAllString(name, "_")
	if tag == "" {
		return "_"
	}
	c := tag[0]
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return tag
	}
	return "_" + tag
}

// ToXML renders the composite as an XML document. Array elements are
// written as item_<index> and nil values as empty elements.
func (e *Error) ToXML() (string, error) {
	return e.serialize(FormatXML, func(snap *Object) (string, error) {
		var b strings.Builder
		b.WriteString(xml.Header)

		enc := xml.NewEncoder(&b)
		if !e.opts.CompactXML {
			enc.Indent("", e.opts.XMLIndent)
		}
		if err := encodeXML(enc, SanitizeXMLTag(e.name), snap); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return b.String(), nil
	})
}

func encodeXML(enc *xml.Encoder, tag string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch t := v.(type) {
	case *Object:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if err := encodeXML(enc, SanitizeXMLTag(pair.Key), pair.Value); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range t {
			if err := encodeXML(enc, "item_"+strconv.Itoa(i), item); err != nil {
				return err
			}
		}
	case nil:
	default:
		if err := enc.EncodeToken(xml.CharData(scalarText(t))); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}
