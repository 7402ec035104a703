package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/staffdir"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Profile   *staffdir.Profile
	Extractor staffdir.Extractor
	Searcher  staffdir.Searcher
	Writer    staffdir.BatchWriter
	Sink      io.Closer
	Seen      staffdir.ContactSet
	Contacts  staffdir.ContactService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every query and batch to stderr"`

	Crawl CrawlCmd `cmd:"" help:"Enumerate the directory and write every contact"`
	Parse ParseCmd `cmd:"" help:"Extract contacts from a saved results page"`
	List  ListCmd  `cmd:"" help:"List contacts stored by 'crawl --db'"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Profile    string        `short:"p" type:"path" help:"Site profile YAML file"`
	URL        string        `help:"Search page URL, overriding the profile"`
	Output     string        `short:"o" default:"data.json" help:"Output file"`
	Format     string        `short:"f" enum:"concat,array" default:"concat" help:"Output format (concat, array)"`
	DB         bool          `help:"Also store contacts in the SQLite database (STAFFDIR_DB)"`
	Prefix     string        `help:"Only enumerate surnames under this prefix"`
	MaxResults int           `help:"Per-query result cap, overriding the profile"`
	Rate       float64       `default:"0" help:"Maximum queries per second (0 for no limit)"`
	Timeout    time.Duration `short:"t" default:"60s" help:"Timeout per query"`
	HTTP       bool          `name:"http" help:"Submit the search form over HTTP instead of in a browser"`
	MaxPages   int           `default:"75" help:"Pages per browser before it is restarted"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File    string `arg:"" type:"existingfile" help:"Saved search results page"`
	Profile string `short:"p" type:"path" help:"Site profile YAML file"`
	Names   bool   `help:"Print only last names"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Last   string `help:"Surname prefix, case-insensitive"`
	Prefix string `help:"Query prefix the contacts were found under"`
	Limit  int    `short:"n" help:"Maximum number of contacts to list"`
	Offset int    `help:"Number of contacts to skip"`
	Count  bool   `short:"c" help:"Print only the number of matching contacts"`
}
