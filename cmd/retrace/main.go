package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"retrace/internal/app"
	"retrace/internal/client"
	"retrace/internal/config"
	"retrace/internal/logging"
	"retrace/internal/types"
)

const usageText = `retrace browses recorded assistant sessions.

Usage:
  retrace <command> [flags]

Commands:
  ui        run the terminal UI (default)
  sessions  list recent sessions
  projects  list projects with session counts
  search    full-text search over messages
  context   print a session's shareable context
  usage     show token usage
  help      show help

Flags:
  -h, --help   show help

Examples:
  retrace
  retrace sessions --project /home/me/src/demo
  retrace search "worker pool" --source codex
  retrace usage --days 30
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		exitOnErr("ui", runUI(nil))
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
	case "ui":
		exitOnErr("ui", runUI(args[1:]))
	case "sessions":
		exitOnErr("sessions", runSessions(args[1:]))
	case "projects":
		exitOnErr("projects", runProjects(args[1:]))
	case "search":
		exitOnErr("search", runSearch(args[1:]))
	case "context":
		exitOnErr("context", runContext(args[1:]))
	case "usage":
		exitOnErr("usage", runUsage(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func newStoreClient() (*client.Client, error) {
	return client.New()
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func runUI(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	prefs, err := config.LoadPreferences()
	if err != nil {
		return err
	}
	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	log, closer, err := logging.NewFileLogger(logPath, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		log = logging.Nop()
	} else {
		defer closer.Close()
	}

	c := client.NewWithBaseURL(cfg.StoreBaseURL())
	return app.Run(c, prefs, log)
}

func runSessions(args []string) error {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	project := fs.String("project", "", "filter by project path")
	source := fs.String("source", "", "session source (claude, codex, gemini)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	sessions, err := c.ListSessions(ctx, *project, *source)
	if err != nil {
		return err
	}
	printSessions(sessions)
	return nil
}

func runProjects(args []string) error {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	source := fs.String("source", "", "session source")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	projects, err := c.ListProjects(ctx, *source)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSESSIONS\tPATH")
	for _, project := range projects {
		fmt.Fprintf(writer, "%s\t%d\t%s\n", project.Name, project.SessionCount, project.Path)
	}
	return writer.Flush()
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	source := fs.String("source", "", "session source")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("search requires a query")
	}
	query := fs.Arg(0)

	c, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	results, err := c.Search(ctx, query, *source)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "SESSION\tPROJECT\tMATCH")
	for _, result := range results {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", result.SessionID, result.ProjectName, result.MatchedContent)
	}
	return writer.Flush()
}

func runContext(args []string) error {
	fs := flag.NewFlagSet("context", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	source := fs.String("source", "", "session source")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("context requires a session id")
	}
	id := fs.Arg(0)

	c, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()
	text, err := c.SessionContext(ctx, id, *source)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}

func runUsage(args []string) error {
	fs := flag.NewFlagSet("usage", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	source := fs.String("source", "", "session source")
	days := fs.Int("days", 0, "include a per-day breakdown over this window")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	summary, err := c.UsageSummary(ctx, *source)
	if err != nil {
		return err
	}
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "WINDOW\tTOKENS\tCOST")
	printUsageRow(writer, "today", summary.Today)
	printUsageRow(writer, "this month", summary.ThisMonth)
	printUsageRow(writer, "total", summary.Total)
	if err := writer.Flush(); err != nil {
		return err
	}

	if *days <= 0 {
		return nil
	}
	detail, err := c.UsageDetail(ctx, *days, *source)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)
	dayWriter := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(dayWriter, "DATE\tINPUT\tOUTPUT\tCOST")
	for _, day := range detail.DailyUsage {
		fmt.Fprintf(dayWriter, "%s\t%d\t%d\t$%.2f\n", day.Date, day.InputTokens, day.OutputTokens, day.CostUSD)
	}
	return dayWriter.Flush()
}

func printUsageRow(writer *tabwriter.Writer, label string, usage types.TokenUsage) {
	fmt.Fprintf(writer, "%s\t%d\t$%.2f\n", label, usage.TotalTokens, usage.CostUSD)
}

func printSessions(sessions []types.SessionSummary) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tUPDATED\tMSGS\tPROJECT\tTITLE")
	for _, session := range sessions {
		updated := "-"
		if !session.UpdatedAt.IsZero() {
			updated = session.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n", session.ID, updated, session.MessageCount, session.ProjectName, session.Title)
	}
	_ = writer.Flush()
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}
