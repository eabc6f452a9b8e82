package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toyz/rename-tool/internal/cli"
	"github.com/toyz/rename-tool/internal/errors"
	"github.com/toyz/rename-tool/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs(), cli.ResolveExecutableName()))
}

// flagValues holds the parsed global flags
type flagValues struct {
	dryRun  bool
	verbose bool
	quiet   bool
	files   bool
	all     bool
}

func (f *flagValues) bind(flags *pflag.FlagSet) {
	flags.BoolVar(&f.dryRun, "dry-run", false, "Preview changes without applying them")
	flags.BoolVar(&f.verbose, "verbose", false, "Print detailed information")
	flags.BoolVar(&f.quiet, "quiet", false, "Suppress all output except warnings and errors")
	flags.BoolVar(&f.files, "files", false, "Include files in renaming (default: folders only)")
	flags.BoolVar(&f.all, "all", false, "Include both files and folders in renaming")
}

// options converts the flags; --all wins over --files
func (f *flagValues) options() cli.Options {
	options := cli.DefaultOptions()
	options.DryRun = f.dryRun
	options.Verbose = f.verbose
	options.Quiet = f.quiet

	switch {
	case f.all:
		options.IncludeFiles = true
		options.IncludeFolders = true
	case f.files:
		options.IncludeFiles = true
		options.IncludeFolders = false
	}

	return options
}

// app carries what the commands share once flags are parsed
type app struct {
	fs          afero.Fs
	executable  string
	stdout      io.Writer
	stderr      io.Writer
	flags       flagValues
	globals     *pflag.FlagSet
	positional  []string
	help        bool
	diagnostics *utils.DiagnosticSystem
	reporter    *cli.DiagnosticReporter
	renamer     *cli.Renamer
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer, fs afero.Fs, executable string) int {
	a := &app{
		fs:         fs,
		executable: executable,
		stdout:     stdout,
		stderr:     stderr,
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	reporter := a.reporter
	if reporter == nil {
		reporter = cli.NewDiagnosticReporter(stderr, false)
	}
	reporter.ReportError(err)

	if !errors.HasCode(err, errors.PatternErrorCode) {
		cmd, _, findErr := root.Find(args)
		if findErr != nil || cmd == nil {
			cmd = root
		}
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}

	return 1
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rename-tool [options] <command> [arguments]",
		Short: "Batch rename files and folders",
		Long: `Renames a single item, or every direct child of a directory whose name
fully matches a regular expression. By default only folders are renamed.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.NewUsageError("missing command")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	a.flags.bind(root.PersistentFlags())
	a.globals = root.PersistentFlags()

	root.AddCommand(
		a.command("single <old_name> <new_name>", "Rename one file or folder", 2,
			func(args []string) error {
				// failures are reported by the renamer and do not change the exit code
				_ = a.renamer.RenameSingle(args[0], args[1])
				return nil
			}),
		a.command("prefix <directory> <pattern> <prefix>", "Prepend text to matching names", 3,
			func(args []string) error {
				return a.renameMultiple(args[0], args[1], cli.Prefix{Value: args[2]})
			}),
		a.command("suffix <directory> <pattern> <suffix>", "Insert text before the extension of matching names", 3,
			func(args []string) error {
				return a.renameMultiple(args[0], args[1], cli.Suffix{Value: args[2]})
			}),
		a.command("replace <directory> <pattern> <old_text> <new_text>", "Replace every occurrence of text in matching names", 4,
			func(args []string) error {
				return a.renameMultiple(args[0], args[1], cli.Replace{Old: args[2], New: args[3]})
			}),
		a.command("regex <directory> <pattern> <regex> <replacement>", "Substitute regular expression matches in matching names ($1 refers to a group)", 4,
			func(args []string) error {
				transform, err := cli.NewRegexReplace(args[2], args[3])
				if err != nil {
					return err
				}
				return a.renameMultiple(args[0], args[1], transform)
			}),
	)

	return root
}

// command builds a subcommand taking n positional arguments. Flag parsing is
// left to splitArgs so that values starting with '-' stay positional.
func (a *app) command(use, short string, n int, run func(args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		Args: func(cmd *cobra.Command, args []string) error {
			positional, err := a.splitArgs(args)
			if err != nil {
				return err
			}
			if a.help {
				return nil
			}
			if len(positional) != n {
				return errors.NewUsageError("%s expects %d arguments, got %d", cmd.Name(), n, len(positional))
			}
			a.positional = positional
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.help {
				return cmd.Help()
			}
			return run(a.positional)
		},
	}
}

// splitArgs applies the global switches found in args and returns the rest.
// Only "--name" and "--name=value" forms of the known switches are options;
// anything with a single dash is positional and "--" ends option handling.
func (a *app) splitArgs(args []string) ([]string, error) {
	positional := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(positional, args[i+1:]...), nil
		}
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg[2:], "=")
		if name == "help" {
			a.help = true
			continue
		}

		flag := a.globals.Lookup(name)
		if flag == nil {
			return nil, errors.NewUsageError("unknown flag: --%s", name)
		}
		if !hasValue {
			value = flag.NoOptDefVal
		}
		if err := flag.Value.Set(value); err != nil {
			return nil, errors.NewUsageError("invalid argument %q for --%s", value, name).WithContext("cause", err.Error())
		}
	}
	return positional, nil
}

func (a *app) setup() {
	options := a.flags.options()

	a.diagnostics = utils.NewDiagnosticSystem(options.DiagnosticLevel()).SetOutput(a.stdout, a.stderr)
	a.reporter = cli.NewDiagnosticReporter(a.stderr, options.Verbose)

	config := cli.NewConfig(options, a.executable)
	a.renamer = cli.NewRenamer(a.fs, config, a.diagnostics)

	if a.diagnostics.Enabled(utils.DiagnosticVerbose) {
		a.diagnostics.Section("Configuration")
		a.diagnostics.Indent()
		a.diagnostics.List("Scope: %s", options.ScopeName())
		a.diagnostics.List("Dry run: %t", options.DryRun)
		a.diagnostics.List("Executable: %s", config.ExecutableName)
		a.diagnostics.Unindent()
	}
}

// renameMultiple runs a batch. An unreadable directory is reported and ends
// the command without failing the process; an invalid pattern fails it.
func (a *app) renameMultiple(directory, pattern string, transform cli.Transform) error {
	_, err := a.renamer.RenameMultiple(directory, pattern, transform)
	if err == nil {
		return nil
	}

	if errors.HasCode(err, errors.PatternErrorCode) {
		return err
	}

	a.reporter.ReportError(err)
	return nil
}
