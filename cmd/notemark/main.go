package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/notemark"
	"pkt.systems/notemark/internal/config"
)

const (
	defaultWidth = 80
	autoTheme    = "auto"
)

func init() {
	version.SetDefaultModule("pkt.systems/notemark")
}

type options struct {
	themeName  string
	widthFlag  int
	formatName string
	boring     bool
	softWrap   bool
	rawHTML    bool
	container  string
	listThemes bool
	outPath    string
	configPath string
	watchPath  string
	dbPath     string
	noteID     int64
	listNotes  bool
	addNote    string
	searchText string
	seedDemo   bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code: 0 on success, 1 for runtime
// failures and 2 for usage errors. Deferred cleanup always runs before main exits.
func run(args []string) int {
	var opts options

	flags := pflag.NewFlagSet("notemark", pflag.ContinueOnError)
	flags.StringVarP(&opts.themeName, "theme", "t", autoTheme, "Theme name (auto picks one for the terminal)")
	flags.IntVarP(&opts.widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&opts.formatName, "format", "f", string(notemark.FormatANSI), "Output format: "+strings.Join(notemark.Formats(), "|"))
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate output without ANSI styling")
	flags.BoolVar(&opts.softWrap, "soft-wrap", false, "Break words longer than the output width")
	flags.BoolVar(&opts.rawHTML, "raw-html", false, "Do not escape text in HTML output")
	flags.StringVar(&opts.container, "container", "", "Wrap HTML output in a div with this class")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default is notemark/config.toml in the user config dir)")
	flags.StringVar(&opts.watchPath, "watch", "", "Re-render FILE whenever it changes")
	flags.StringVar(&opts.dbPath, "db", "", "Notes database path")
	flags.Int64Var(&opts.noteID, "note", 0, "Render the stored note with this id")
	flags.BoolVar(&opts.listNotes, "list-notes", false, "List stored notes")
	flags.StringVar(&opts.addNote, "add-note", "", "Store the inputs as a new note with this title (\"-\" for an untitled note)")
	flags.StringVar(&opts.searchText, "search", "", "List stored notes containing this text")
	flags.BoolVar(&opts.seedDemo, "seed-demo", false, "Create the demo note if the database is empty")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: notemark [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nRenders text with $(content, classes) style directives.")
		fmt.Fprintln(os.Stderr, "If no input is provided, text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.listThemes {
		printThemes(os.Stdout)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	applyConfig(&opts, cfg, flags.Changed)

	format, err := notemark.ParseFormat(opts.formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --format: %v\n", err)
		return 2
	}

	writer, closeOut, err := resolveOutput(opts.outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() {
			if err := closeOut.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close output: %v\n", err)
			}
		}()
	}

	theme, err := resolveTheme(opts.themeName, opts.boring, writer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printThemes(os.Stderr)
		return 2
	}

	req := notemark.RenderRequest{
		Writer: writer,
		Format: format,
		Width:  resolveWidth(opts.widthFlag, writer),
		Theme:  theme,
		Options: []notemark.RenderOption{
			notemark.WithSoftWrap(opts.softWrap),
			notemark.WithRawHTML(opts.rawHTML),
			notemark.WithContainer(opts.container),
			notemark.WithClassAliases(cfg.Aliases),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.notesMode():
		err = runNotes(ctx, opts, flags.Args(), req)
	case opts.watchPath != "":
		err = runWatch(ctx, opts.watchPath, req, isTerminal(writer))
	default:
		err = renderInputs(ctx, flags.Args(), req)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func (o options) notesMode() bool {
	return o.noteID != 0 || o.listNotes || o.addNote != "" || o.searchText != "" || o.seedDemo
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	} else {
		path = normalizePath(path)
	}
	return config.Load(path)
}

// applyConfig copies config values into opts for every flag the user did not set.
func applyConfig(opts *options, cfg config.Config, changed func(string) bool) {
	if !changed("theme") && cfg.Theme != "" {
		opts.themeName = cfg.Theme
	}
	if !changed("width") && cfg.Width > 0 {
		opts.widthFlag = cfg.Width
	}
	if !changed("format") && cfg.Format != "" {
		opts.formatName = cfg.Format
	}
	if !changed("raw-html") {
		opts.rawHTML = cfg.RawHTML
	}
	if !changed("container") && cfg.Container != "" {
		opts.container = cfg.Container
	}
	if !changed("soft-wrap") {
		opts.softWrap = cfg.SoftWrap
	}
	if !changed("db") && cfg.Database != "" {
		opts.dbPath = cfg.Database
	}
}

func renderInputs(ctx context.Context, args []string, req notemark.RenderRequest) error {
	in, err := openInputs(ctx, args)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	req.Reader = in
	return notemark.Render(req)
}

func printThemes(w io.Writer) {
	fmt.Fprintln(w, autoTheme)
	for _, name := range notemark.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveTheme(name string, boring bool, w io.Writer) (notemark.Theme, error) {
	if boring {
		return notemark.BoringTheme(), nil
	}
	if strings.EqualFold(strings.TrimSpace(name), autoTheme) {
		if !isTerminal(w) {
			return notemark.BoringTheme(), nil
		}
		return notemark.ThemeForProfile(termenv.EnvColorProfile()), nil
	}
	theme, ok := notemark.ThemeByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}

// resolveWidth picks the explicit width, else the width of w when it is a terminal,
// else $COLUMNS, else defaultWidth.
func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
