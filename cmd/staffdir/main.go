package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/bloom"
	"github.com/fwojciec/staffdir/crawl"
	"github.com/fwojciec/staffdir/fs"
	"github.com/fwojciec/staffdir/goquery"
	staffhttp "github.com/fwojciec/staffdir/http"
	"github.com/fwojciec/staffdir/rod"
	staffslog "github.com/fwojciec/staffdir/slog"
	"github.com/fwojciec/staffdir/sqlite"
	"github.com/fwojciec/staffdir/yaml"
)

// expectedContacts sizes the overlap filter for a large directory.
const expectedContacts = 200_000

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the contact store.
	DB *sqlite.DB

	// Closers are released in reverse order by Close.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("staffdir"),
		kong.Description("Scrape a staff directory through its capped search form"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'staffdir --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch strings.Fields(kongCtx.Command())[0] {
	case "crawl":
		if err := m.wireCrawl(deps, &cli.Crawl); err != nil {
			return err
		}
	case "parse":
		profile, err := loadProfile(cli.Parse.Profile, "")
		if err != nil {
			return err
		}
		deps.Profile = profile
		deps.Extractor = goquery.NewExtractor(goquery.WithSelectors(profile.Selectors))
	case "list":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		deps.Contacts = sqlite.NewContactService(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireCrawl builds the searcher and writer chain for the crawl command.
func (m *Main) wireCrawl(deps *Dependencies, cmd *CrawlCmd) error {
	profile, err := loadProfile(cmd.Profile, cmd.URL)
	if err != nil {
		return err
	}
	if cmd.MaxResults > 0 {
		profile.MaxResults = cmd.MaxResults
	}
	deps.Profile = profile

	extractor := staffslog.NewLoggingExtractor(
		goquery.NewExtractor(goquery.WithSelectors(profile.Selectors)),
		deps.Logger,
	)

	var searcher staffdir.Searcher
	if cmd.HTTP {
		s := staffhttp.NewSearcher(profile, extractor, staffhttp.WithTimeout(cmd.Timeout))
		m.closers = append(m.closers, s)
		searcher = s
	} else {
		manager, err := rod.NewBrowserManager(rod.WithMaxPages(cmd.MaxPages))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or use --http")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, manager)
		s := rod.NewSearcher(manager, profile, extractor, rod.WithSearchTimeout(cmd.Timeout))
		m.closers = append(m.closers, s)
		searcher = s
	}
	if cmd.Rate > 0 {
		searcher = crawl.NewThrottledSearcher(searcher, cmd.Rate)
	}
	deps.Searcher = staffslog.NewLoggingSearcher(searcher, deps.Logger)

	format, err := fs.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	sink, err := fs.Create(cmd.Output, format)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	m.closers = append(m.closers, sink)
	deps.Sink = sink

	var writer staffdir.BatchWriter = sink
	if cmd.DB {
		if err := m.openDB(deps.Stderr); err != nil {
			return err
		}
		writer = crawl.MultiWriter(sink, sqlite.NewContactService(m.DB))
	}
	deps.Writer = staffslog.NewLoggingBatchWriter(writer, deps.Logger)
	deps.Seen = bloom.NewFilter(expectedContacts, 0.001)

	return nil
}

// openDB opens the SQLite database at DBPath.
func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STAFFDIR_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.closers = append(m.closers, m.DB)
	return nil
}

// loadProfile returns the profile at path, or the default profile when
// path is empty. A non-empty url replaces the profile's search page.
func loadProfile(path, url string) (*staffdir.Profile, error) {
	profile := staffdir.DefaultProfile()
	if path != "" {
		var err error
		if profile, err = yaml.LoadProfile(path); err != nil {
			return nil, err
		}
	}
	if url != "" {
		profile.URL = url
	}
	return profile, nil
}

func defaultDBPath() string {
	if path := os.Getenv("STAFFDIR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "staffdir.db"
	}
	dir := filepath.Join(home, ".staffdir")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "staffdir.db")
}
