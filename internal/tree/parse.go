package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// ErrInvalidJSON is returned when the input is neither a JSON value nor a
// JSON Lines stream.
var ErrInvalidJSON = errors.New("invalid JSON")

// LineError reports the first JSONL line that is not valid JSON.
type LineError struct {
	// Line is 1-based.
	Line int
	Text string
}

func (e *LineError) Error() string {
	text := e.Text
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	return fmt.Sprintf("%v on line %d: %s", ErrInvalidJSON, e.Line, text)
}

// Unwrap makes errors.Is(err, ErrInvalidJSON) hold.
func (e *LineError) Unwrap() error { return ErrInvalidJSON }

// Parse reads text as one JSON value, or failing that as JSON Lines: one
// value per line, blank lines ignored. Object member order is kept; a
// repeated key keeps its first position and takes the last value.
func Parse(text string) (*Document, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) > 0 && json.Valid(data) {
		root, err := parseValue(data)
		if err != nil {
			return nil, err
		}
		doc := &Document{Root: root}
		doc.index()
		return doc, nil
	}
	return parseLines(text)
}

func parseLines(text string) (*Document, error) {
	root := &Node{Kind: Array}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !json.Valid([]byte(line)) {
			return nil, &LineError{Line: i + 1, Text: line}
		}
		n, err := parseValue([]byte(line))
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line}
		}
		root.Children = append(root.Children, n)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("%w: no JSON value found", ErrInvalidJSON)
	}
	doc := &Document{Root: root, JSONL: true}
	doc.index()
	return doc, nil
}

func parseValue(data []byte) (*Node, error) {
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return build(value, typ)
}

// build converts one raw value, as returned by jsonparser, into a subtree.
func build(value []byte, typ jsonparser.ValueType) (*Node, error) {
	switch typ {
	case jsonparser.Object:
		n := &Node{Kind: Object}
		seen := make(map[string]int)
		err := jsonparser.ObjectEach(value, func(key, member []byte, mt jsonparser.ValueType, _ int) error {
			child, err := build(member, mt)
			if err != nil {
				return err
			}
			child.Key = string(key)
			if i, dup := seen[child.Key]; dup {
				n.Children[i] = child
				return nil
			}
			seen[child.Key] = len(n.Children)
			n.Children = append(n.Children, child)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return n, nil

	case jsonparser.Array:
		n := &Node{Kind: Array}
		var inner error
		_, err := jsonparser.ArrayEach(value, func(item []byte, it jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			child, err := build(item, it)
			if err != nil {
				inner = err
				return
			}
			n.Children = append(n.Children, child)
		})
		if err == nil {
			err = inner
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return n, nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return &Node{Kind: String, Value: s}, nil

	case jsonparser.Number:
		return &Node{Kind: Number, Value: string(value)}, nil

	case jsonparser.Boolean:
		return &Node{Kind: Boolean, Value: string(value)}, nil

	case jsonparser.Null:
		return &Node{Kind: Null, Value: "null"}, nil
	}
	return nil, fmt.Errorf("%w: unexpected value %q", ErrInvalidJSON, value)
}
