// Package cmd wires the rich-tables CLI: it reads one structured value from a
// file argument or stdin, optionally transforms it with a CEL expression and
// record-limiting flags, renders it through the adaptive dispatcher, and
// writes the result to stdout or an interactive pager.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hrwtech/rich-tables/internal/expr"
	"github.com/hrwtech/rich-tables/internal/render"
	"github.com/hrwtech/rich-tables/internal/ui"
	"github.com/hrwtech/rich-tables/pkg/loader"
	"github.com/hrwtech/rich-tables/pkg/logger"
	"github.com/hrwtech/rich-tables/pkg/settings"
)

// errShowHelp is returned by loadInputData when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

// Use a generous fallback to avoid overly narrow packing when size cannot be
// detected (e.g., CI, PowerShell).
const defaultFallbackTermWidth = 120

var (
	jsonOut     bool
	noColor     bool
	interactive bool
	outputWidth int
	expression  string

	limitRecords  int
	offsetRecords int
	tailRecords   int

	verbose bool

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:     settings.CliBinaryName + " [file]",
	Short:   "Render JSON as adaptive terminal tables",
	Long:    "Reads a JSON, YAML, NDJSON or TOML value and renders it as color tables,\ntrees and panels sized to the terminal. With no file argument, input is read\nfrom stdin.",
	Example: "\n  tables data.json\n  curl -s https://api.example.com/items | tables\n  tables data.json -e '_.items.filter(x, x.count > 3)'\n  tables data.json --tail 20 -i\n  tables diff '{\"a\": 1}' '{\"a\": 2}'\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Initialize structured logger with JSON output.
		// Map CLI verbose flag to log level: verbose => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8 = 0
		if verbose {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		params := settings.NewCliParams()
		params.MinLogLevel = level
		params.NoColor = noColor
		params.Width = outputWidth
		params.Interactive = interactive
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), params)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		lgr := logger.FromContext(rootCtx)
		run, ok := settings.FromContext(rootCtx)
		if !ok {
			run = settings.NewCliParams()
		}

		limitCfg, err := limiterFromFlags(cmd.Flags())
		if err != nil {
			cmd.SilenceUsage = false
			return fmt.Errorf("record limiting: %w", err)
		}

		input, err := loadInputData(args)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		} else if err != nil {
			return err
		}

		value, err := loader.Load(input)
		var notStructured *loader.ErrNotStructured
		if errors.As(err, &notStructured) {
			// Bare text passes through untouched.
			fmt.Fprintln(cmd.OutOrStdout(), notStructured.Text)
			return nil
		} else if err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}

		if expression != "" {
			ev, err := expr.NewEvaluator()
			if err != nil {
				return fmt.Errorf("initializing expression environment: %w", err)
			}
			result, err := ev.Evaluate(expression, value.ToAny())
			if err != nil {
				return fmt.Errorf("evaluating expression: %w", err)
			}
			value = render.FromAny(result)
		}

		if limitCfg.IsActive() {
			value = limitCfg.Apply(value)
		}

		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), value)
		}

		width := resolveWidth(run.Width)
		lgr.V(1).Info("rendering", "width", width, "kind", value.Kind().String())

		content := renderDocument(value, width, run.NoColor)
		if run.Interactive {
			return ui.RunPager(settings.CliBinaryName, content)
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

// loadInputData reads input from the file argument or stdin. It returns
// errShowHelp when there is neither a file nor piped input.
func loadInputData(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	isPiped := (stat.Mode() & os.ModeCharDevice) == 0
	if !isPiped {
		return "", errShowHelp
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v render.Value) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v.ToAny())
}

// resolveWidth prefers the explicit flag, then the detected terminal width.
func resolveWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if w, _ := detectTerminalSize(); w > 0 {
		return w
	}
	return defaultFallbackTermWidth
}

// detectTerminalSize returns the best-effort terminal width/height by probing
// stdout, stderr, and stdin, then falling back to $COLUMNS.
func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return 0, 0
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(cliVersionString()) //nolint:forbidigo
		return nil
	},
}

func cliVersionString() string {
	vi := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, vi.BuildVersion, vi.Commit, vi.BuildTime)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print the (transformed) input as indented JSON instead of rendering")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "view output in a scrollable pager with search")
	rootCmd.Flags().IntVar(&outputWidth, "width", 0, "output width in columns (default: terminal width)")
	rootCmd.Flags().StringVarP(&expression, "expr", "e", "", "CEL expression using '_' as root, applied before rendering. Example: '_.items.map(x, x.name)'")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "limit total number of records displayed")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N records")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "show the last N records (mutually exclusive with --limit; ignores --offset)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
