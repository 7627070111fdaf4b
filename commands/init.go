package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msaldanha/nulldev/config"
	"github.com/msaldanha/nulldev/err"
	"github.com/msaldanha/nulldev/timeline"
)

const ErrConfigExists = err.Error("config file already exists")

var (
	initForce bool

	initCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Long: `init writes the effective configuration (defaults, the --config file and
the environment) to path, nulldev.yaml by default. The default normalizer
rules are included so they can be edited. The API key is never written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "nulldev.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	cfg, er := loadConfig()
	if er != nil {
		return er
	}
	path = expandPath(path)
	if er := writeConfig(cfg, path, initForce); er != nil {
		return er
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}

func writeConfig(cfg *config.Config, path string, force bool) error {
	if _, er := os.Stat(path); er == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	out := *cfg
	if len(out.Normalizer.Rules) == 0 {
		out.Normalizer.Rules = timeline.DefaultRules()
	}
	if er := os.MkdirAll(filepath.Dir(path), 0o755); er != nil {
		return fmt.Errorf("failed to create config directory: %w", er)
	}
	return out.Save(path)
}
