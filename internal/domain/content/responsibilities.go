package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedResponsibilities = errors.New("malformed responsibilities")

// EncodeResponsibilities serializes a responsibility list for the experience.responsibilities column.
// A nil list is stored as "[]".
func EncodeResponsibilities(items []string) string {
	if items == nil {
		items = []string{}
	}

	// marshalling a []string cannot fail
	b, _ := json.Marshal(items)

	return string(b)
}

// DecodeResponsibilities parses a stored responsibility list. An empty column is an empty list.
func DecodeResponsibilities(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" || raw == "null" {
		return []string{}, nil
	}

	var items []string

	err := json.Unmarshal([]byte(raw), &items)

	if err != nil {
		return []string{}, fmt.Errorf("%w: %v", ErrMalformedResponsibilities, err)
	}

	if items == nil {
		items = []string{}
	}

	return items, nil
}

// ResponsibilitiesOrEmpty is DecodeResponsibilities for read paths: malformed data becomes an empty list.
func ResponsibilitiesOrEmpty(raw string) []string {
	items, err := DecodeResponsibilities(raw)
	if err != nil {
		return []string{}
	}

	return items
}
