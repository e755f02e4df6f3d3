package prompts

func ObjectSchema(properties map[string]any, required []string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func ArraySchema(items map[string]any) map[string]any {
	return map[string]any{
		"type":  "array",
		"items": items,
	}
}

func StringArraySchema() map[string]any {
	return ArraySchema(StringSchema())
}

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func NumberSchema() map[string]any {
	return map[string]any{"type": "number"}
}

func BoolSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

// Describe returns a copy of schema with a description attached.
func Describe(schema map[string]any, description string) map[string]any {
	out := make(map[string]any, len(schema)+1)
	for k, v := range schema {
		out[k] = v
	}
	out["description"] = description
	return out
}
