/*
Package cli provides command-line interface utilities for the callisto tool.

The cli package includes output formatters, typed command errors, and a
signal-aware context helper used by the callisto command.

Output Formatting:

Command results can be rendered as text, JSON, or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, records); err != nil {
		return err
	}

CSV output operates on tabular data: the CSVFormatter carries the header
row and expects the data to implement the Tabular interface.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
