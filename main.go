package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"devconsole/app"
	"devconsole/cmd"
	"devconsole/cmd/commands"
	"devconsole/config"
	"devconsole/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version      = "0.1.0"
	examplesFlag bool
	noColorFlag  bool
	strictFlag   bool
	rootCmd      = &cobra.Command{
		Use:   "devconsole",
		Short: "devconsole - an interactive developer console for typed commands",
		Long: `devconsole runs typed commands from a console panel.

Commands are typed as 'name arg1 arg2'. Quote arguments that contain
spaces. Type 'help' in the console for the list of commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, registry := setup()
			defer log.Close()

			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return runBatch(ctx, registry, os.Stdin, cmd.OutOrStdout(), cfg, false)
			}
			return app.Run(ctx, registry, log.Default, cfg)
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [file]",
		Short: "Run console commands from a file, or stdin, without the panel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, registry := setup()
			defer log.Close()

			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runBatch(cmd.Context(), registry, in, cmd.OutOrStdout(), cfg, strictFlag)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of devconsole",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devconsole version %s\n", version)
		},
	}
)

// setup loads the config, starts logging and builds the registry.
func setup() (*config.Config, *cmd.Registry) {
	cfg := config.LoadConfig()
	log.Initialize(cfg.LogConfig())

	if noColorFlag {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	registry := cmd.NewRegistry(
		cmd.WithLogger(log.Default),
		cmd.WithHistoryCapacity(cfg.HistoryCapacity),
	)
	if examplesFlag {
		registry.Register(commands.NewExample(log.Default))
	}
	return cfg, registry
}

// runBatch executes a script with the built-in commands that make sense
// without a panel.
func runBatch(ctx context.Context, registry *cmd.Registry, in io.Reader, out io.Writer, cfg *config.Config, strict bool) error {
	console := commands.NewConsole(log.Default, registry, cfg.HelpPageSize, commands.ConsoleHandlers{})
	registry.Register(console)
	defer registry.Unregister(console)

	return app.RunScript(ctx, registry, log.Default, in, out, strict)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&examplesFlag, "examples", false,
		"Register the example commands")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false,
		"Disable colors")
	runCmd.Flags().BoolVar(&strictFlag, "strict", false,
		"Stop at the first failing command and exit non-zero")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
