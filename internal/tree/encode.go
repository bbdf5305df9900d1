package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Indent returns the document as JSON indented by two spaces. Member order
// and number literals are kept as written; a JSONL document is written as an
// array of its records.
func (d *Document) Indent() (string, error) {
	var compact bytes.Buffer
	if err := writeCompact(&compact, d.Root); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return "", fmt.Errorf("indenting JSON: %w", err)
	}
	return out.String(), nil
}

func writeCompact(buf *bytes.Buffer, n *Node) error {
	switch n.Kind {
	case Object:
		buf.WriteByte('{')
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, c.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCompact(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCompact(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case String:
		return writeString(buf, n.Value)
	default:
		buf.WriteString(n.Value)
	}
	return nil
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
