package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/cliffwalk/agent"
	"github.com/samuelfneumann/cliffwalk/agent/tabular/qlearning"
	"github.com/samuelfneumann/cliffwalk/config"
	"github.com/samuelfneumann/cliffwalk/environment/envconfig"
	"github.com/samuelfneumann/cliffwalk/environment/gridworld"
	"github.com/samuelfneumann/cliffwalk/experiment"
	"github.com/samuelfneumann/cliffwalk/experiment/trackers"
	"github.com/spf13/cobra"
)

// options holds the flags shared by all commands
type options struct {
	preset      string
	seed        uint64
	trials      int
	maxEpisodes int
	noColor     bool

	alpha, gamma, epsilon float64
}

func newRootCommand(defaults config.Config) *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:          "cliffwalk",
		Short:        "Tabular Q-Learning on cliff walking gridworlds",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.preset, "preset", defaults.Preset,
		"Gridworld preset (CliffWalk or CustomCliffs)")
	root.PersistentFlags().Uint64Var(&o.seed, "seed", defaults.Seed,
		"Seed of the first trial")
	root.PersistentFlags().IntVar(&o.trials, "trials", defaults.Trials,
		"Trials per agent configuration")
	root.PersistentFlags().IntVar(&o.maxEpisodes, "max-episodes",
		defaults.MaxEpisodes, "Episode cap per trial, 0 for none")
	root.PersistentFlags().BoolVar(&o.noColor, "no-color", defaults.NoColor,
		"Disable coloured output")

	root.AddCommand(
		trainCommand(o),
		safeCommand(o),
		sweepCommand(o, defaults),
		lapsCommand(o),
		dumpCommand(o),
	)
	return root
}

// hyperparameterFlags adds the flags of a single agent configuration
func hyperparameterFlags(cmd *cobra.Command, o *options) {
	d := qlearning.DefaultConfig
	cmd.Flags().Float64Var(&o.alpha, "alpha", d.LearningRate, "Learning rate")
	cmd.Flags().Float64Var(&o.gamma, "gamma", d.Discount, "Discount factor")
	cmd.Flags().Float64Var(&o.epsilon, "epsilon", d.Epsilon,
		"Exploration probability")
}

func (o *options) env() (envconfig.Config, error) {
	return envconfig.Preset(envconfig.Name(o.preset))
}

func (o *options) agentConfig() (qlearning.Config, error) {
	c := qlearning.Config{
		LearningRate: o.alpha,
		Discount:     o.gamma,
		Epsilon:      o.epsilon,
	}
	if err := checkLearningRate(c); err != nil {
		return qlearning.Config{}, err
	}
	return c, c.Validate()
}

func (o *options) colors() aurora.Aurora {
	return aurora.NewAurora(!o.noColor)
}

// checkLearningRate rejects a zero learning rate. Values never change
// without learning, so training cannot converge and a greedy episode
// need never terminate.
func checkLearningRate(c agent.Config) error {
	if q, ok := c.(qlearning.Config); ok && q.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v",
			q.LearningRate)
	}
	return nil
}

func trainCommand(o *options) *cobra.Command {
	var episodes int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a single agent until its greedy path is optimal",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.env()
			if err != nil {
				return err
			}
			c, err := o.agentConfig()
			if err != nil {
				return err
			}

			a, err := c.CreateAgent(env, o.seed)
			if err != nil {
				return err
			}
			q := a.(*qlearning.QLearning)

			lengths := trackers.NewEpisodeLength("")
			q.Register(lengths)

			log.Printf("%s training %v on %v", config.LogInfo, c, o.preset)
			out := cmd.OutOrStdout()
			if episodes > 0 {
				if err := experiment.Train(q, episodes); err != nil {
					return err
				}
				fmt.Fprintf(out, "Ran %d episodes.\n", episodes)
			} else {
				n, err := experiment.Convergence(q, env.OptimalSteps,
					o.maxEpisodes)
				if err != nil {
					return fmt.Errorf("after %d episodes: %w", n, err)
				}
				fmt.Fprintf(out, "Took %d episodes to find the optimal "+
					"path.\n", n)
			}

			if l := lengths.Lengths(); len(l) > 0 {
				fmt.Fprintf(out, "Last episode took %d steps.\n", l[len(l)-1])
			}

			path := q.GreedyPath(q.Grid().Len())
			fmt.Fprintf(out, "Greedy path: %v\n", path)
			fmt.Fprintln(out, gridworld.Render(q.Grid(), path, q.Hazards(),
				o.colors()))
			return nil
		},
	}
	hyperparameterFlags(cmd, o)
	cmd.Flags().IntVar(&episodes, "episodes", 0,
		"Run a fixed number of episodes instead of training to convergence")
	return cmd
}

func safeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safe",
		Short: "Estimate the episodes needed to trust the learned path",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.env()
			if err != nil {
				return err
			}
			c, err := o.agentConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt)
			defer stop()

			log.Printf("%s running %d trials of %v", config.LogInfo, o.trials, c)
			r, err := experiment.SafeEpisodes(ctx, env, c, o.trials,
				o.maxEpisodes, o.seed)
			if err != nil {
				return err
			}
			if r.Failures > 0 {
				log.Printf("%s %d of %d trials did not converge within %d "+
					"episodes", config.LogWarn, r.Failures, o.trials,
					o.maxEpisodes)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Safe number of episodes: %d "+
				"(mean %.2f)\n", r.Max, r.Mean)
			return nil
		},
	}
	hyperparameterFlags(cmd, o)
	return cmd
}

// defaultSweep returns the grid of learning rates and discounts in
// 0.1, ..., 1.0 and exploration probabilities in 0.0, ..., 1.0
func defaultSweep() agent.TypedConfigList {
	var alpha, gamma, epsilon []float64
	for i := 0; i <= 10; i++ {
		if i > 0 {
			alpha = append(alpha, float64(i)/10)
			gamma = append(gamma, float64(i)/10)
		}
		epsilon = append(epsilon, float64(i)/10)
	}
	return qlearning.NewConfigList(alpha, gamma, epsilon)
}

// loadExperiment reads an experiment Config from a JSON file
func loadExperiment(filename string) (experiment.Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return experiment.Config{}, fmt.Errorf("loadExperiment: %w", err)
	}

	var c experiment.Config
	if err := json.Unmarshal(data, &c); err != nil {
		return experiment.Config{}, fmt.Errorf("loadExperiment: %w", err)
	}
	return c, nil
}

func sweepCommand(o *options, defaults config.Config) *cobra.Command {
	var configFile, csvFile, chartFile string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Search agent configurations for the fewest safe episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var c experiment.Config
			if configFile != "" {
				var err error
				if c, err = loadExperiment(configFile); err != nil {
					return err
				}
			} else {
				env, err := o.env()
				if err != nil {
					return err
				}
				c = experiment.Config{
					Type:        experiment.SafeEpisodesExp,
					Trials:      o.trials,
					MaxEpisodes: o.maxEpisodes,
					Seed:        o.seed,
					EnvConf:     env,
					AgentConf:   defaultSweep(),
				}
			}
			if c.AgentConf.ConfigList != nil {
				for i := 0; i < c.AgentConf.Len(); i++ {
					if err := checkLearningRate(c.AgentConf.At(i)); err != nil {
						return fmt.Errorf("config %d: %w", i, err)
					}
				}
			}

			var out io.Writer = cmd.OutOrStdout()
			if csvFile != "" {
				f, err := os.Create(csvFile)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			s, err := experiment.NewSweep(c, trackers.NewResultWriter(out,
				trackers.DefaultColumns...))
			if err != nil {
				return err
			}
			if chartFile != "" {
				s.Register(trackers.NewChart(chartFile, "Safe episodes"))
			}
			if csvFile != "" {
				s.ShowProgress(cmd.ErrOrStderr())
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt)
			defer stop()

			log.Printf("%s sweeping %d configurations with %d trials each",
				config.LogInfo, c.AgentConf.Len(), c.Trials)
			runErr := s.Run(ctx)
			if err := s.Save(); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}

			best, ok := s.Best()
			if !ok {
				return fmt.Errorf("no configuration converged on every trial")
			}

			au := o.colors()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, au.Bold(fmt.Sprintf("Number of safe episodes: %d",
				best.Max)))
			if q, ok := best.Config.(qlearning.Config); ok {
				fmt.Fprintf(w, "Alpha: %v\nGamma: %v\nEpsilon: %v\n",
					q.LearningRate, q.Discount, q.Epsilon)
			} else {
				fmt.Fprintf(w, "Config: %v\n", best.Config)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "",
		"Experiment JSON file, overriding the default sweep")
	cmd.Flags().StringVar(&csvFile, "csv", defaults.CSV,
		"Write result rows to this file instead of stdout")
	cmd.Flags().StringVar(&chartFile, "chart", defaults.Chart,
		"Render an HTML chart of the results to this file")
	return cmd
}

func lapsCommand(o *options) *cobra.Command {
	var laps, episodes int

	cmd := &cobra.Command{
		Use:   "laps",
		Short: "Time laps of training episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.env()
			if err != nil {
				return err
			}
			c, err := o.agentConfig()
			if err != nil {
				return err
			}
			a, err := c.CreateAgent(env, o.seed)
			if err != nil {
				return err
			}

			log.Printf("%s running %d timed laps", config.LogInfo, laps)
			durations, err := experiment.Laps(a, laps, episodes)
			if err != nil {
				return err
			}
			for i, d := range durations {
				fmt.Fprintf(cmd.OutOrStdout(), "Lap %d: %d milliseconds\n",
					i+1, d.Milliseconds())
			}
			return nil
		},
	}
	hyperparameterFlags(cmd, o)
	cmd.Flags().IntVar(&laps, "laps", 5, "Number of laps")
	cmd.Flags().IntVar(&episodes, "episodes", 100, "Episodes per lap")
	return cmd
}

func dumpCommand(o *options) *cobra.Command {
	var episodes int

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the action value table of the gridworld",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.env()
			if err != nil {
				return err
			}
			c, err := o.agentConfig()
			if err != nil {
				return err
			}
			a, err := c.CreateAgent(env, o.seed)
			if err != nil {
				return err
			}
			if err := experiment.Train(a, episodes); err != nil {
				return err
			}

			q := a.(*qlearning.QLearning)
			out := cmd.OutOrStdout()
			if err := q.Grid().Dump(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, gridworld.Format(q.Grid().Values()))
			return nil
		},
	}
	hyperparameterFlags(cmd, o)
	cmd.Flags().IntVar(&episodes, "episodes", 0,
		"Episodes to train before dumping")
	return cmd
}
