package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"vxtimeline/internal/config"
	"vxtimeline/internal/logger"
	"vxtimeline/internal/timeline"
	"vxtimeline/internal/vxerr"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd builds the vxtimeline command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "vxtimeline",
		Short: "Inspect and query timeline sequences",
		Long: `vxtimeline loads sequence dumps and answers what is on screen and on air
at a given instant, how timeline time maps into each clip's source media,
and whether the sequence is internally consistent.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the YAML config file")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "L", "", "Log level (error, warn, info, debug)")

	root.AddCommand(newSettingsCmd(a))
	root.AddCommand(newNewCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newAtCmd(a))
	return root
}

// Execute runs the command tree against os.Args.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.cfg = cfg
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), level)
	a.log.Debugf("Configuration loaded from %q", a.configPath)
	return nil
}

// loadSequence decodes a sequence dump and validates it.
func (a *app) loadSequence(path string) (*timeline.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file at %s: %w", path, err)
	}

	var seq timeline.Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, vxerr.Wrap(vxerr.DomainProject, err, "failed to decode sequence %s", path)
	}
	if err := seq.Validate(); err != nil {
		return nil, fmt.Errorf("sequence %s is invalid: %w", path, err)
	}

	a.log.Infof("Loaded sequence %q: %d video and %d audio tracks", seq.Name, len(seq.VideoTracks()), len(seq.AudioTracks()))
	return &seq, nil
}
