package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guillaumefe/menvuln-sub000/internal/config"
	"github.com/guillaumefe/menvuln-sub000/internal/graph"
	"github.com/guillaumefe/menvuln-sub000/internal/persist"
)

var (
	log *zap.SugaredLogger

	// Command line flags
	modelPath       string
	statePath       string
	includeLateral  bool
	includeContains bool
	maxPaths        int
	outputFormat    string
)

func init() {
	logger, _ := zap.NewProduction()
	log = logger.Sugar()
}

var rootCmd = &cobra.Command{
	Use:   "menvuln",
	Short: "menvuln - multi-stage attack path modeling and enumeration",
	Long: `menvuln models an estate of targets connected by direct, lateral and
containment relations, and enumerates every qualifying attack path from each
attacker's entry points to their objectives. Models come from a YAML scenario
file, a saved JSON snapshot, or a live snapshot of the local host.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPaths("")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "YAML scenario file (default: embedded demo model)")
	rootCmd.PersistentFlags().StringVarP(&statePath, "state", "s", "", "JSON snapshot file (takes precedence over --model)")
	rootCmd.PersistentFlags().BoolVar(&includeLateral, "lateral", false, "traverse lateral relations")
	rootCmd.PersistentFlags().BoolVar(&includeContains, "contains", false, "traverse containment relations")
	rootCmd.PersistentFlags().IntVar(&maxPaths, "max-paths", 0, "path ceiling per attacker on cyclic graphs (0 = model default)")

	var pathsCmd = &cobra.Command{
		Use:   "paths [attacker-id]",
		Short: "Enumerate attack paths for one attacker, or for all of them",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			attackerID := ""
			if len(args) > 0 {
				attackerID = args[0]
			}
			runPaths(attackerID)
		},
	}
	pathsCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "also export results (json, csv, excel, all)")
	rootCmd.AddCommand(pathsCmd)

	var dotCmd = &cobra.Command{
		Use:   "dot [output-file]",
		Short: "Render the model as a Graphviz DOT file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := "attack_model.dot"
			if len(args) > 0 {
				out = args[0]
			}
			runDot(out)
		},
	}
	rootCmd.AddCommand(dotCmd)

	var discoverCmd = &cobra.Command{
		Use:   "discover [output-file]",
		Short: "Snapshot the local host into a model file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			out := "menvuln_state.json"
			if len(args) > 0 {
				out = args[0]
			}
			runDiscover(out)
		},
	}
	rootCmd.AddCommand(discoverCmd)

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "List the model's targets, vulnerabilities and attackers",
		Run: func(cmd *cobra.Command, args []string) {
			runShow()
		},
	}
	rootCmd.AddCommand(showCmd)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("unexpected panic: %v", r)
			os.Exit(1)
		}
		log.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// loadStore resolves the model source: an explicit snapshot wins, then a
// scenario file, then the embedded demo. The returned policy and ceiling
// merge the model defaults with the command line flags.
func loadStore() (*graph.Store, graph.Policy, int, error) {
	pol := graph.Policy{IncludeLateral: includeLateral, IncludeContains: includeContains}
	ceiling := maxPaths

	if statePath != "" {
		s, err := persist.Load(statePath)
		if err != nil {
			return nil, pol, 0, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return s, pol, ceiling, nil
	}

	m, err := config.LoadModel(modelPath)
	if err != nil {
		return nil, pol, 0, err
	}
	s, err := m.Build()
	if err != nil {
		return nil, pol, 0, err
	}

	defaults := m.GraphPolicy()
	pol.IncludeLateral = pol.IncludeLateral || defaults.IncludeLateral
	pol.IncludeContains = pol.IncludeContains || defaults.IncludeContains
	if ceiling == 0 {
		ceiling = m.Policy.MaxPaths
	}
	return s, pol, ceiling, nil
}
