// Copyright © 2024 Bank-Vaults Maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"strconv"
)

// lookup walks value along path. Objects are indexed by member name and arrays
// by decimal index. Returns nil as soon as the walk cannot continue.
func lookup(value any, path []string) any {
	if len(path) > 0 && isFalsy(value) {
		return nil
	}

	for _, segment := range path {
		switch node := value.(type) {
		case map[string]any:
			value = node[segment]

		case []any:
			idx, ok := parseIndex(segment)
			if !ok || idx >= len(node) {
				return nil
			}
			value = node[idx]

		default:
			return nil
		}
	}

	return value
}

// assign sets value at path inside node, creating missing objects on the way.
// Returns the (possibly reallocated) node. Arrays can be extended by one
// element by addressing index len(array).
func assign(node any, path []string, value any) (any, error) {
	segment, rest := path[0], path[1:]

	switch container := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			container[segment] = value
			return container, nil
		}

		child, exists := container[segment]
		if !exists {
			child = map[string]any{}
		}
		child, err := assign(child, rest, value)
		if err != nil {
			return nil, err
		}
		container[segment] = child
		return container, nil

	case []any:
		idx, ok := parseIndex(segment)
		if !ok || idx > len(container) {
			return nil, fmt.Errorf("cannot set index '%s' of array with length %d", segment, len(container))
		}

		if idx == len(container) {
			if len(rest) == 0 {
				return append(container, value), nil
			}
			child, err := assign(map[string]any{}, rest, value)
			if err != nil {
				return nil, err
			}
			return append(container, child), nil
		}

		if len(rest) == 0 {
			container[idx] = value
			return container, nil
		}
		child, err := assign(container[idx], rest, value)
		if err != nil {
			return nil, err
		}
		container[idx] = child
		return container, nil

	default:
		return nil, fmt.Errorf("cannot set property '%s' on %s", segment, describe(node))
	}
}

// parseIndex accepts canonical non-negative decimal indexes only, so "01" or
// "+1" address object members rather than array slots.
func parseIndex(segment string) (int, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || strconv.Itoa(idx) != segment {
		return 0, false
	}
	return idx, true
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", value)
	}
}
