package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// Overrides maps snake_case binding names to replacement keys.
type Overrides map[string][]string

// ApplyOverrides replaces the keys of the key.Binding fields of km, which
// must be a pointer to a struct. Field names are matched in snake_case:
// overrides["go_live"] replaces km.GoLive. Embedded structs are recursed.
func ApplyOverrides(km interface{}, overrides Overrides) {
	if len(overrides) == 0 {
		return
	}
	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return
	}
	applyOverridesRecursive(v.Elem(), overrides)
}

func applyOverridesRecursive(v reflect.Value, overrides Overrides) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		if !field.CanSet() {
			continue
		}
		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}
		if fieldType.Type != bindingType {
			continue
		}

		keys, ok := overrides[camelToSnake(fieldType.Name)]
		if !ok || len(keys) == 0 {
			continue
		}
		current := field.Interface().(key.Binding)
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], current.Help().Desc),
		)))
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: GoLive -> go_live, FadeToBlack -> fade_to_black
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
