package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List is the one container every list endpoint is normalised into.
type List[T any] struct {
	Items    []T
	Count    int
	Next     string
	Previous string
}

type paginated struct {
	Results  json.RawMessage `json:"results"`
	Count    *int            `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
}

// decodeList accepts a bare array, a {results: [...]} page or a single object.
func decodeList[T any](data []byte) (*List[T], error) {
	data = bytes.TrimSpace(data)
	list := &List[T]{Items: []T{}}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return list, nil
	}

	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &list.Items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		list.Count = len(list.Items)
		return list, nil

	case '{':
		var page paginated
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decoding page: %w", err)
		}

		if page.Results == nil {
			var item T
			if err := json.Unmarshal(data, &item); err != nil {
				return nil, fmt.Errorf("decoding object: %w", err)
			}
			list.Items = []T{item}
			list.Count = 1
			return list, nil
		}

		if err := json.Unmarshal(page.Results, &list.Items); err != nil {
			return nil, fmt.Errorf("decoding results: %w", err)
		}
		if list.Items == nil {
			list.Items = []T{}
		}

		list.Count = len(list.Items)
		if page.Count != nil {
			list.Count = *page.Count
		}
		if page.Next != nil {
			list.Next = *page.Next
		}
		if page.Previous != nil {
			list.Previous = *page.Previous
		}
		return list, nil
	}

	return nil, fmt.Errorf("unexpected list payload starting with %q", data[0])
}
