package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/interceptors/audit"
)

var auditFlags struct {
	method    string
	outcome   string
	since     string
	until     string
	limit     int
	format    string
	output    string
	olderThan int
	dryRun    bool
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit database",
	Long: `Query and maintain the proxy invocation audit trail.

Audit records describe intercepted method calls: method name, owning type,
argument count, duration, and outcome. Argument and result values are never
recorded.

Subcommands:
  list   - List audit records with filters
  prune  - Delete records older than the retention window

Examples:
  # List the most recent failed invocations
  callisto audit list --outcome error --limit 20

  # Export a time window to CSV
  callisto audit list --since 2026-08-01T00:00:00Z --format csv --output audit.csv

  # Prune records older than 30 days
  callisto audit prune --older-than 30`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit records",
	Long: `List audit records matching the given filters, newest first.

Timestamps use RFC3339 format, e.g. 2026-08-01T00:00:00Z.

Examples:
  # Recent invocations of one method
  callisto audit list --method Greet

  # Failures in a time window
  callisto audit list --outcome error --since 2026-08-01T00:00:00Z --until 2026-08-02T00:00:00Z

  # Export to JSON
  callisto audit list --format json --output audit.json`,
	RunE: listAuditRecords,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old audit records",
	Long: `Delete audit records older than the retention window.

The retention window defaults to audit.retention.days from the configuration
file and can be overridden with --older-than. Use --dry-run to see how many
records would be deleted without deleting them.`,
	RunE: pruneAuditRecords,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd, auditPruneCmd)

	auditListCmd.Flags().StringVar(&auditFlags.method, "method", "", "filter by method name")
	auditListCmd.Flags().StringVar(&auditFlags.outcome, "outcome", "", "filter by outcome (success, error)")
	auditListCmd.Flags().StringVar(&auditFlags.since, "since", "", "only records at or after this RFC3339 timestamp")
	auditListCmd.Flags().StringVar(&auditFlags.until, "until", "", "only records at or before this RFC3339 timestamp")
	auditListCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditListCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json, csv")
	auditListCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")

	auditPruneCmd.Flags().IntVar(&auditFlags.olderThan, "older-than", 0, "delete records older than this many days (default: audit.retention.days)")
	auditPruneCmd.Flags().BoolVar(&auditFlags.dryRun, "dry-run", false, "report what would be deleted without deleting")
}

// openAuditStore opens the audit store named by the loaded configuration.
func openAuditStore(cfg *config.Config) (audit.Store, error) {
	switch cfg.Audit.Backend {
	case "sqlite":
		return audit.NewSQLiteStore(&cfg.Audit.SQLite)
	case "memory":
		return audit.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
	}
}

func buildFilter() (audit.Filter, error) {
	filter := audit.Filter{
		Method:  auditFlags.method,
		Outcome: auditFlags.outcome,
		Limit:   auditFlags.limit,
	}

	if auditFlags.since != "" {
		since, err := time.Parse(time.RFC3339, auditFlags.since)
		if err != nil {
			return audit.Filter{}, fmt.Errorf("invalid --since timestamp: %w", err)
		}
		filter.Since = since
	}
	if auditFlags.until != "" {
		until, err := time.Parse(time.RFC3339, auditFlags.until)
		if err != nil {
			return audit.Filter{}, fmt.Errorf("invalid --until timestamp: %w", err)
		}
		filter.Until = until
	}

	return filter, nil
}

// recordTable adapts audit records for CSV output.
type recordTable []*audit.Record

func (recordTable) Header() []string {
	return []string{"id", "time", "method", "owner", "arg_count", "duration", "outcome", "error"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.ID,
			r.Time.Format(time.RFC3339Nano),
			r.Method,
			r.Owner,
			strconv.Itoa(r.ArgCount),
			r.Duration.String(),
			r.Outcome,
			r.Error,
		})
	}
	return rows
}

func listAuditRecords(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	store, err := openAuditStore(cfg)
	if err != nil {
		return cli.NewCommandError("audit list", err)
	}
	defer store.Close()

	filter, err := buildFilter()
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()
	records, err := store.Query(ctx, filter)
	if err != nil {
		return cli.NewCommandError("audit list", fmt.Errorf("query failed: %w", err))
	}

	out := os.Stdout
	if auditFlags.output != "" {
		f, err := os.Create(auditFlags.output)
		if err != nil {
			return cli.NewCommandError("audit list", fmt.Errorf("failed to create output file: %w", err))
		}
		defer f.Close()
		out = f
	}

	switch cli.OutputFormat(auditFlags.format) {
	case cli.FormatJSON:
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, records)
	case cli.FormatCSV:
		return cli.NewFormatter(cli.FormatCSV).FormatTo(out, recordTable(records))
	default:
		if len(records) == 0 {
			fmt.Fprintln(out, "No audit records found.")
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "%s  %-20s %-8s %8s  args=%d",
				r.Time.Format(time.RFC3339), r.Owner+"."+r.Method, r.Outcome,
				r.Duration.Round(time.Microsecond), r.ArgCount)
			if r.Error != "" {
				fmt.Fprintf(out, "  %s", r.Error)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "\nTotal: %d record(s)\n", len(records))
		return nil
	}
}

func pruneAuditRecords(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	days := auditFlags.olderThan
	if days <= 0 {
		days = cfg.Audit.Retention.Days
	}
	if days <= 0 {
		return fmt.Errorf("no retention window: set --older-than or audit.retention.days")
	}

	store, err := openAuditStore(cfg)
	if err != nil {
		return cli.NewCommandError("audit prune", err)
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	cutoff := time.Now().AddDate(0, 0, -days)

	if auditFlags.dryRun {
		count, err := store.Count(ctx, audit.Filter{Until: cutoff})
		if err != nil {
			return cli.NewCommandError("audit prune", fmt.Errorf("count failed: %w", err))
		}
		fmt.Printf("Would delete %d record(s) older than %s.\n", count, cutoff.Format(time.RFC3339))
		return nil
	}

	deleted, err := store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return cli.NewCommandError("audit prune", fmt.Errorf("delete failed: %w", err))
	}

	fmt.Printf("Deleted %d record(s) older than %s.\n", deleted, cutoff.Format(time.RFC3339))
	return nil
}
