package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType enumerates the closed set of property kinds a template schema
// can declare. Form generators switch on this tag; there is no reflection.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeColor   FieldType = "color"
	TypeURL     FieldType = "url"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// Field describes one property of a template: its type tag, UI label,
// default value and constraints. Array fields carry an Items descriptor for
// their elements; object fields carry nested Fields.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Default  any       `json:"default,omitempty"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Items    *Field    `json:"items,omitempty"`
	Fields   []Field   `json:"fields,omitempty"`
}

// Schema is an ordered list of field descriptors for one template.
type Schema struct {
	Fields []Field
}

var (
	hexColorRe  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorRe = regexp.MustCompile(`^rgba?\(`)
)

// ValidationError carries per-field failure details so a caller can correct
// the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property %q: %s", e.Field, e.Reason)
}

// Apply merges caller-supplied overrides over the schema defaults, validates
// the result and returns the merged bag. Keys not declared by the schema are
// dropped. The input maps are not mutated.
func (s Schema) Apply(overrides map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		val, ok := overrides[f.Name]
		if !ok {
			if f.Default != nil {
				merged[f.Name] = f.Default
				continue
			}
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Reason: "required property missing"}
			}
			continue
		}
		checked, err := checkField(f.Name, f, val)
		if err != nil {
			return nil, err
		}
		merged[f.Name] = checked
	}
	return merged, nil
}

func checkField(path string, f Field, val any) (any, error) {
	switch f.Type {
	case TypeString:
		str, ok := val.(string)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected a string"}
		}
		if len(f.Options) > 0 && !contains(f.Options, str) {
			return nil, &ValidationError{Field: path, Reason: fmt.Sprintf("must be one of %s", strings.Join(f.Options, ", "))}
		}
		return str, nil

	case TypeColor:
		str, ok := val.(string)
		if !ok || !(hexColorRe.MatchString(str) || funcColorRe.MatchString(str)) {
			return nil, &ValidationError{Field: path, Reason: "must be a valid color (e.g. #FF0000)"}
		}
		return str, nil

	case TypeURL:
		str, ok := val.(string)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected a URL string"}
		}
		if str != "" && !strings.HasPrefix(str, "/") &&
			!strings.HasPrefix(str, "http://") && !strings.HasPrefix(str, "https://") {
			return nil, &ValidationError{Field: path, Reason: "must be an absolute URL, a /-rooted path, or empty"}
		}
		return str, nil

	case TypeNumber:
		num, ok := toFloat(val)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected a number"}
		}
		if f.Min != nil && num < *f.Min {
			return nil, &ValidationError{Field: path, Reason: fmt.Sprintf("must be >= %v", *f.Min)}
		}
		if f.Max != nil && num > *f.Max {
			return nil, &ValidationError{Field: path, Reason: fmt.Sprintf("must be <= %v", *f.Max)}
		}
		return num, nil

	case TypeBoolean:
		b, ok := val.(bool)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected a boolean"}
		}
		return b, nil

	case TypeArray:
		items, ok := val.([]any)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected an array"}
		}
		if f.Items == nil {
			return items, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			checked, err := checkField(fmt.Sprintf("%s[%d]", path, i), *f.Items, item)
			if err != nil {
				return nil, err
			}
			out[i] = checked
		}
		return out, nil

	case TypeObject:
		obj, ok := val.(map[string]any)
		if !ok {
			return nil, &ValidationError{Field: path, Reason: "expected an object"}
		}
		out := make(map[string]any, len(f.Fields))
		for _, sub := range f.Fields {
			subVal, present := obj[sub.Name]
			if !present {
				if sub.Default != nil {
					out[sub.Name] = sub.Default
				} else if sub.Required {
					return nil, &ValidationError{Field: path + "." + sub.Name, Reason: "required property missing"}
				}
				continue
			}
			checked, err := checkField(path+"."+sub.Name, sub, subVal)
			if err != nil {
				return nil, err
			}
			out[sub.Name] = checked
		}
		return out, nil
	}

	return nil, &ValidationError{Field: path, Reason: fmt.Sprintf("unknown field type %q", f.Type)}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func contains(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}

// Label derives a human-readable label from a camelCase property name,
// e.g. "productName" -> "Product Name".
func Label(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
