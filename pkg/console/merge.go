package console

import (
	"github.com/mitchellh/mapstructure"
)

// mergeValues decodes the keys of values onto the struct dst points to.
// Fields whose key is absent keep their value. Lists and maps present in
// values replace the current ones.
func mergeValues(dst any, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}
