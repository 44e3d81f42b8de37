package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Decode strictly parses a single JSON value. Surrounding whitespace is
// allowed; anything else after the value is an error.
func Decode(text string) (*Value, error) {
	// Unmarshal validates the whole input before decoding, so its error is the
	// syntax error a user should see.
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	return readValue(dec)
}

func readValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return readArray(dec)
		case '{':
			return readObject(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func readArray(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: KindArray, Items: []*Value{}}
	for dec.More() {
		item, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, item)
	}
	// Closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

func readObject(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: KindObject, Members: []Member{}}
	var seen map[string]int
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		item, err := readValue(dec)
		if err != nil {
			return nil, err
		}

		// A repeated key keeps its first position and takes the last value.
		if seen == nil {
			seen = make(map[string]int)
		}
		if pos, dup := seen[key]; dup {
			v.Members[pos].Value = item
			continue
		}
		seen[key] = len(v.Members)
		v.Members = append(v.Members, Member{Key: key, Value: item})
	}
	// Closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

// trimLine removes surrounding whitespace, including a byte order mark.
func trimLine(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
