// Package envconfig provides configuration structs for configuring
// gridworlds with cliffs, rewards, start and goal cells. Gridworld
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
)

// Name stores the name of the preset gridworlds that can be
// configured with this package
type Name string

// Gridworlds available as presets
const (
	CliffWalk    Name = "CliffWalk"
	CustomCliffs Name = "CustomCliffs"
)

// Names lists every preset
var Names = []Name{CliffWalk, CustomCliffs}

// Geometry shared by the presets
const (
	Width  int = 12
	Height int = 4
	Start  int = 36
	Goal   int = 47
)

// Config implements a specific configuration of a gridworld: its
// dimensions, the start and goal cells, the rewards of specific cells,
// and the number of steps the learned path to the goal should take.
type Config struct {
	Width  int
	Height int
	Start  int
	Goal   int

	// OptimalSteps is the length of the best path from Start to Goal
	OptimalSteps int

	// Overrides maps cell indices to rewards. Any reward at or below
	// the cliff reward makes the cell a hazard.
	Overrides map[int]int

	// Rewards is the reward scheme of the gridworld. If nil,
	// gridworld.DefaultRewards is used.
	Rewards *gridworld.Rewards `json:",omitempty"`
}

// RewardScheme returns the reward scheme used by the Config
func (c Config) RewardScheme() gridworld.Rewards {
	if c.Rewards == nil {
		return gridworld.DefaultRewards
	}
	return *c.Rewards
}

// Validate returns an error if the Config does not describe a valid
// gridworld
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("validate: invalid dimensions (%d, %d)", c.Width,
			c.Height)
	}

	n := c.Width * c.Height
	if c.Start < 0 || c.Start >= n {
		return fmt.Errorf("validate: start at cell %d: %w", c.Start,
			gridworld.ErrOutOfRange)
	}
	if c.Goal < 0 || c.Goal >= n {
		return fmt.Errorf("validate: goal at cell %d: %w", c.Goal,
			gridworld.ErrOutOfRange)
	}
	for i := range c.Overrides {
		if i < 0 || i >= n {
			return fmt.Errorf("validate: override at cell %d: %w", i,
				gridworld.ErrOutOfRange)
		}
	}

	if c.OptimalSteps < 0 {
		return fmt.Errorf("validate: optimal steps cannot be negative")
	}
	return nil
}

// Create builds a new gridworld described by the Config
func (c Config) Create() (*gridworld.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return gridworld.NewWithRewards(c.Width, c.Height, c.Overrides, c.Goal,
		c.RewardScheme())
}

// Hazards returns the sorted indices of the hazards in the gridworld
func (c Config) Hazards() []int {
	return gridworld.Hazards(c.Overrides, c.RewardScheme().Cliff)
}

// Preset returns the Config of the preset gridworld with the given name
func Preset(name Name) (Config, error) {
	switch name {
	case CliffWalk:
		return NewCliffWalk(), nil

	case CustomCliffs:
		return NewCustomCliffs(), nil
	}

	return Config{}, fmt.Errorf("preset: no such gridworld %q", name)
}

// NewCliffWalk returns the classic cliff walking gridworld: a 12 x 4
// grid with the start and goal in the bottom corners and a cliff along
// the bottom row between them. The shortest safe path takes 13 steps.
func NewCliffWalk() Config {
	overrides := make(map[int]int)
	for i := Start + 1; i <= Start+10; i++ {
		overrides[i] = gridworld.DefaultRewards.Cliff
	}

	return Config{
		Width:        Width,
		Height:       Height,
		Start:        Start,
		Goal:         Goal,
		OptimalSteps: 13,
		Overrides:    overrides,
	}
}

// NewCustomCliffs returns the cliff walking gridworld with a mix of
// penalties and cliffs. Every 13 step path crosses the penalty at cell
// 28, so the best path detours through the upper rows in 15 steps.
func NewCustomCliffs() Config {
	overrides := map[int]int{
		5:  -50,
		7:  -50,
		28: -50,
		40: -100,
		42: -50,
		43: -50,
		44: -50,
		45: -100,
		46: -200,
	}

	return Config{
		Width:        Width,
		Height:       Height,
		Start:        Start,
		Goal:         Goal,
		OptimalSteps: 15,
		Overrides:    overrides,
	}
}
