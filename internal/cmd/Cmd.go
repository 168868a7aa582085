package cmd

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/hal"
)

var LogCommand = base.NewLogCategory("Command")

var ErrWarningsAsErrors = errors.New("warnings were treated as errors")

const (
	GROUP_GENERATE = "generate"
	GROUP_PROJECT  = "project"
	GROUP_INFO     = "info"
)

/***************************************
 * Command environment
 ***************************************/

type globalFlags struct {
	ConfigFile  string
	ProjectFile string
	Verbose     bool
	Profile     string
}

// State shared by every sub-command of one invocation
type environment struct {
	Flags  globalFlags
	Config *Config

	viper   *viper.Viper
	profile interface{ Stop() }
}

func (x *environment) setup(root *cobra.Command) error {
	config, err := LoadConfig(x.viper, root, x.Flags.ConfigFile)
	if err != nil {
		return err
	}
	x.Config = config

	var level base.LogLevel
	if err := level.Set(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	if x.Flags.Verbose && level > base.LOG_VERBOSE {
		level = base.LOG_VERBOSE
	}
	base.SetLogVisibleLevel(level)
	base.SetLogWarningAsError(config.WarningsAsErrors)
	base.SetParallelism(config.Workers)

	switch strings.ToLower(x.Flags.Profile) {
	case "":
	case "cpu":
		x.profile = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		x.profile = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		return fmt.Errorf("unknown profiling mode %q, expected cpu or mem", x.Flags.Profile)
	}

	base.LogTrace(LogCommand, "log level %v, %d workers", level, base.GetParallelism())
	return nil
}

func (x *environment) teardown() {
	base.SetLogWarningAsError(false)
	if x.profile != nil {
		x.profile.Stop()
		x.profile = nil
	}
}

/***************************************
 * Root command
 ***************************************/

func newRootCommand(prgName string) (*cobra.Command, *environment) {
	env := &environment{viper: viper.New()}

	root := &cobra.Command{
		Use:           prgName,
		Short:         "Generates Visual Studio solutions and projects from a project description",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(cmd.Root())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&env.Flags.ConfigFile, "config", "c", "", "configuration file (default is ./"+CONFIG_NAME+".{yaml,json,toml})")
	flags.StringVarP(&env.Flags.ProjectFile, "project", "p", "", "project file (default is the first *.jucer.{json,toml,yaml,yml} of the working directory)")
	flags.BoolVarP(&env.Flags.Verbose, "verbose", "v", false, "shortcut for --log-level=verbose")
	flags.StringVar(&env.Flags.Profile, "profile", "", "write a cpu or mem profile in the working directory")
	flags.String("log-level", DefaultConfig.LogLevel, "minimum visible log level")
	flags.Bool("warnings-as-errors", DefaultConfig.WarningsAsErrors, "log warnings as errors and fail the command when any was logged")
	flags.Int("workers", DefaultConfig.Workers, "maximum number of documents generated concurrently (0 for one per cpu)")

	root.AddGroup(
		&cobra.Group{ID: GROUP_GENERATE, Title: "Generation:"},
		&cobra.Group{ID: GROUP_PROJECT, Title: "Project:"},
		&cobra.Group{ID: GROUP_INFO, Title: "Information:"})

	root.AddCommand(
		newExportCommand(env),
		newStatusCommand(env),
		newCleanCommand(env),
		newPackCommand(env),
		newInitCommand(env),
		newUpgradeCommand(env),
		newPropertiesCommand(env),
		newVersionsCommand(env))

	return root, env
}

func RunCommand(prgName string, out goio.Writer, args ...string) error {
	root, env := newRootCommand(prgName)
	defer env.teardown()
	defer base.FlushLog()

	root.SetArgs(args)
	root.SetOut(out)

	errorsBefore := base.LogErrorCount()
	if err := root.Execute(); err != nil {
		return err
	}
	if env.Config != nil && env.Config.WarningsAsErrors {
		if n := base.LogErrorCount() - errorsBefore; n > 0 {
			return fmt.Errorf("%w: %d logged", ErrWarningsAsErrors, n)
		}
	}
	return nil
}

func LaunchCommand(prgName string, args ...string) error {
	if !hal.InitHAL() {
		pterm.DisableStyling()
	}
	return RunCommand(prgName, os.Stdout, args...)
}
