// Command combspec wires a domain implementation into a Searcher and
// writes the discovered specification to standard output as a stream of
// JSON objects (§6: "a minimal binary ... illustrative only, not core").
//
// Grounded on theRebelliousNerd-codenerd/cmd/nerd/main.go's cobra +
// PersistentPreRunE zap wiring, generalized down to this framework's much
// smaller surface.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/enadeau/combspec"
	"github.com/enadeau/combspec/internal/config"
	"github.com/enadeau/combspec/internal/forest"
	"github.com/enadeau/combspec/internal/logging"
	"github.com/enadeau/combspec/internal/ruledb"
	"github.com/enadeau/combspec/words"
)

var (
	verbose    bool
	configPath string
	prefix     string
	alphabet   string
	patterns   []string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "combspec",
	Short: "Search for combinatorial specifications",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the combspec version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("combspec 0.1.0")
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for a specification over the words-avoiding-patterns domain",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logging.Sync(logger)
		}
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML search config")
	searchCmd.Flags().StringVar(&prefix, "prefix", "", "starting prefix")
	searchCmd.Flags().StringVar(&alphabet, "alphabet", "ab", "alphabet letters, concatenated")
	searchCmd.Flags().StringSliceVar(&patterns, "pattern", []string{"ababa", "babb"}, "forbidden factor (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd, searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("combspec: failed to load config: %w", err)
		}
		cfg = loaded
	}
	if verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose && !verbose {
		l, err := logging.New(true)
		if err != nil {
			return err
		}
		logger = l
	}

	start := words.New(prefix, patterns, alphabet)
	pack := words.Pack()

	spec, err := runWithRuleStore(cfg, start, pack)
	if err != nil {
		return fmt.Errorf("combspec: search did not find a specification: %w", err)
	}
	return streamSpecification(spec)
}

func runWithRuleStore(cfg *config.SearchConfig, start words.AvoidingWithPrefix, pack *combspec.StrategyPack[words.AvoidingWithPrefix, words.Strategy]) (*combspec.Specification[words.AvoidingWithPrefix, words.Strategy], error) {
	switch cfg.RuleStore {
	case config.RuleStoreSimple:
		store := ruledb.New[words.AvoidingWithPrefix, words.Strategy]()
		s := combspec.New[words.AvoidingWithPrefix, words.Strategy](start, pack, store, logger)
		return s.AutoSearch(cfg)
	default:
		store := forest.New[words.AvoidingWithPrefix, words.Strategy]()
		s := combspec.New[words.AvoidingWithPrefix, words.Strategy](start, pack, store, logger)
		return s.AutoSearch(cfg)
	}
}

// streamSpecification writes the root class object, then for each rule its
// parent class object, its strategy descriptor object, and one class
// object per child, per §6's "stream of the JSON objects" contract.
func streamSpecification(spec *combspec.Specification[words.AvoidingWithPrefix, words.Strategy]) error {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(spec.Root.DescribeClass()); err != nil {
		return err
	}
	for _, r := range spec.Rules {
		if err := enc.Encode(r.Parent.DescribeClass()); err != nil {
			return err
		}
		if err := enc.Encode(r.Strategy.DescribeStrategy()); err != nil {
			return err
		}
		for _, c := range r.Children {
			if err := enc.Encode(c.DescribeClass()); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
