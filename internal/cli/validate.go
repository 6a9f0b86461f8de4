package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"mcquiz/internal/config"
	"mcquiz/internal/question"
)

// runValidate builds the handler for the validate command. It checks
// the config and then parses the bank, reporting every diagnostic the
// parser collected without failing on them.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for "+config.ConfigFileName+")")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		resolvedConfig, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		baseDir := config.BaseDirFromConfigPath(resolvedConfig)
		bank, diags, err := question.Load(resolvePath(baseDir, cfg.Bank))
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Bank OK: %d questions, %d diagnostics\n", len(bank), len(diags))
		for _, diag := range diags {
			fmt.Fprintf(stdout, "  %s\n", diag.String())
		}
		return ExitOK
	}
}
