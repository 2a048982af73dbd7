package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// coercion holds the declared types of the root object's properties. Only
// local subschemas are inspected; a property defined through $ref keeps its
// string value. Every name listed in properties is kept, even without a type,
// so additionalProperties never applies to it.
type coercion struct {
	properties map[string][]string
	patterns   []patternTypes
	additional []string
}

type patternTypes struct {
	pattern *regexp.Regexp
	types   []string
}

func newCoercion(schema any) *coercion {
	out := &coercion{
		properties: map[string][]string{},
	}

	root, ok := schema.(map[string]any)

	if !ok {
		return out
	}

	if properties, ok := root["properties"].(map[string]any); ok {
		for name, sub := range properties {
			out.properties[name] = declaredTypes(sub)
		}
	}

	if patterns, ok := root["patternProperties"].(map[string]any); ok {
		for expr, sub := range patterns {
			pattern, err := regexp.Compile(expr)

			if err != nil {
				continue
			}

			out.patterns = append(out.patterns, patternTypes{pattern: pattern, types: declaredTypes(sub)})
		}

		slices.SortFunc(out.patterns, func(a, b patternTypes) int {
			return strings.Compare(a.pattern.String(), b.pattern.String())
		})
	}

	out.additional = declaredTypes(root["additionalProperties"])

	return out
}

func declaredTypes(schema any) []string {
	object, ok := schema.(map[string]any)

	if !ok {
		return nil
	}

	switch t := object["type"].(type) {
	case string:
		return []string{t}
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	}

	return nil
}

func (c *coercion) typesFor(name string) []string {
	if types, ok := c.properties[name]; ok {
		return types
	}

	for _, p := range c.patterns {
		if p.pattern.MatchString(name) {
			return p.types
		}
	}

	return c.additional
}

func (c *coercion) apply(instance map[string]any) {
	for name, value := range instance {
		s, ok := value.(string)

		if !ok {
			continue
		}

		if types := c.typesFor(name); len(types) > 0 {
			instance[name] = coerceString(s, types)
		}
	}
}

// coerceString converts value to the first listed type able to represent it.
// Listing "string" before another type stops conversion.
func coerceString(value string, types []string) any {
	for _, t := range types {
		switch t {
		case "string":
			return value
		case "integer":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				return json.Number(strconv.FormatInt(n, 10))
			}
			// "5.0" and "1e3" are integers too
			if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && f == math.Trunc(f) {
				return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
			}
		case "number":
			if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
				return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
			}
		case "boolean":
			switch value {
			case "true":
				return true
			case "false":
				return false
			}
		case "null":
			if value == "" {
				return nil
			}
		}
	}

	return value
}
