package gemini

import (
	"fmt"
	"sort"

	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
}

// ToSchema converts a JSON-schema style map (as built by the prompts package)
// into the SDK's response schema. Required properties keep their declared order
// at the front of PropertyOrdering.
func ToSchema(m map[string]any) (*genai.Schema, error) {
	rawType, _ := m["type"].(string)
	t, ok := schemaTypes[rawType]
	if !ok {
		return nil, fmt.Errorf("unsupported schema type %q", rawType)
	}
	s := &genai.Schema{Type: t}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if enum, err := stringList(m["enum"]); err != nil {
		return nil, fmt.Errorf("enum: %w", err)
	} else if len(enum) > 0 {
		s.Enum = enum
	}

	switch t {
	case genai.TypeObject:
		props, _ := m["properties"].(map[string]any)
		required, err := stringList(m["required"])
		if err != nil {
			return nil, fmt.Errorf("required: %w", err)
		}
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			pm, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %s: expected object, got %T", name, raw)
			}
			ps, err := ToSchema(pm)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			s.Properties[name] = ps
		}
		for _, r := range required {
			if _, ok := s.Properties[r]; !ok {
				return nil, fmt.Errorf("required property %s is not declared", r)
			}
		}
		s.Required = required
		s.PropertyOrdering = propertyOrdering(required, props)
	case genai.TypeArray:
		items, ok := m["items"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("array schema without items")
		}
		is, err := ToSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = is
	}
	return s, nil
}

func propertyOrdering(required []string, props map[string]any) []string {
	out := append([]string(nil), required...)
	seen := make(map[string]bool, len(out))
	for _, r := range out {
		seen[r] = true
	}
	var rest []string
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			s, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", x)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", v)
	}
}
