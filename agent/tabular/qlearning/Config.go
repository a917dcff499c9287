package qlearning

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.EGreedyQLearningTabular, ConfigList{})
}

// DefaultConfig is a configuration known to learn the cliff walking
// gridworld quickly
var DefaultConfig = Config{LearningRate: 0.6, Discount: 0.9, Epsilon: 0.0}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	LearningRate []float64
	Discount     []float64
	Epsilon      []float64
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(learningRate, discount, ɛ []float64) agent.TypedConfigList {
	config := ConfigList{
		LearningRate: learningRate,
		Discount:     discount,
		Epsilon:      ɛ,
	}
	return agent.NewTypedConfigList(config)
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.LearningRate) * len(c.Discount) * len(c.Epsilon)
}

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64 // α, step size of each update
	Discount     float64 // γ
	Epsilon      float64 // ε, probability of exploring
}

// CreateAgent creates the agent from the Config on a new gridworld
// built from env. The hazards of the agent are the hazards of env.
func (c Config) CreateAgent(env envconfig.Config,
	seed uint64) (agent.Agent, error) {
	g, err := env.Create()
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	return New(g, env.Start, env.Goal, env.Hazards(), c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if !unit(c.LearningRate) {
		return fmt.Errorf("validate: learning rate %v not in [0, 1]",
			c.LearningRate)
	}
	if !unit(c.Discount) {
		return fmt.Errorf("validate: discount %v not in [0, 1]", c.Discount)
	}
	if !unit(c.Epsilon) {
		return fmt.Errorf("validate: epsilon %v not in [0, 1]", c.Epsilon)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}

func (c Config) String() string {
	return fmt.Sprintf("α=%.2f γ=%.2f ε=%.2f", c.LearningRate, c.Discount,
		c.Epsilon)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
