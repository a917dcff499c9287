package agent

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
type TypedConfigList struct {
	Type
	ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfigList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       Type
		ConfigList json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ty, ok := registeredTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: no agent type %q registered",
			raw.Type)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(raw.ConfigList, value.Interface()); err != nil {
		return fmt.Errorf("unmarshalJSON: could not decode %v config "+
			"list: %w", raw.Type, err)
	}

	t.Type = raw.Type
	t.ConfigList = value.Elem().Interface().(ConfigList)
	return nil
}

// At returns the Config at index i in the TypedConfigList
func (t TypedConfigList) At(i int) Config {
	return ConfigAt(i, t.ConfigList)
}
