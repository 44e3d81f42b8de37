package keymap

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// BindingInfo is a serializable description of one binding, as printed by
// `jsonlview keys`.
type BindingInfo struct {
	Keys        []string `json:"keys"`
	Description string   `json:"description"`
	// ConfigKey is the name to use under viewer.keys to override the binding.
	ConfigKey string `json:"config_key"`
}

// SectionInfo is a serializable section.
type SectionInfo struct {
	Name     string        `json:"name"`
	Bindings []BindingInfo `json:"bindings"`
}

// Export describes every enabled binding of km, with the config key that
// overrides it.
func Export(km SectionedKeyMap) []SectionInfo {
	configKeys := make(map[string]string)
	extractConfigKeys(reflect.ValueOf(km), configKeys)

	var out []SectionInfo
	for _, s := range km.Sections() {
		info := SectionInfo{Name: s.Name}
		for _, b := range s.FilterEnabled() {
			info.Bindings = append(info.Bindings, BindingInfo{
				Keys:        b.Keys(),
				Description: b.Help().Desc,
				ConfigKey:   configKeys[b.Help().Desc],
			})
		}
		if len(info.Bindings) > 0 {
			out = append(out, info)
		}
	}
	return out
}

// extractConfigKeys maps the help description of every key.Binding field to
// its snake_case field name.
func extractConfigKeys(v reflect.Value, m map[string]string) {
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		val := v.Field(i)

		if field.Anonymous {
			extractConfigKeys(val, m)
			continue
		}
		if field.Type != bindingType || !val.CanInterface() {
			continue
		}
		if desc := val.Interface().(key.Binding).Help().Desc; desc != "" {
			m[desc] = camelToSnake(field.Name)
		}
	}
}
