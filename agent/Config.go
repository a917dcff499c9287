package agent

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes on a
	// freshly built gridworld described by env
	CreateAgent(env envconfig.Config, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

// ConfigList stores a number of Configs compactly. A ConfigList is a
// struct whose fields are slices, one per field of the Config type it
// stores, named identically. The Configs in the list are every
// combination of the field values.
type ConfigList interface {
	// Config returns an empty Config of the type stored in the list
	Config() Config

	// Type returns the Type of the stored Configs
	Type() Type

	// NumFields returns the number of settable fields of the list
	NumFields() int

	// Len returns the number of Configs in the list
	Len() int
}

// ConfigAt returns the Config at index i of a ConfigList.
//
// Configs are ordered with the first field of the list varying
// slowest and the last field varying fastest. For example, a list
// with fields A = [a1, a2] and B = [b1, b2] contains the Configs
// (a1, b1), (a1, b2), (a2, b1), (a2, b2) in that order.
func ConfigAt(i int, c ConfigList) Config {
	if i < 0 || i >= c.Len() {
		panic(fmt.Sprintf("configAt: index %d out of range [0, %d)", i,
			c.Len()))
	}

	list := reflect.ValueOf(c)
	config := reflect.New(reflect.TypeOf(c.Config())).Elem()

	for f := list.NumField() - 1; f >= 0; f-- {
		values := list.Field(f)
		n := values.Len()

		name := list.Type().Field(f).Name
		config.FieldByName(name).Set(values.Index(i % n))
		i /= n
	}

	return config.Interface().(Config)
}
