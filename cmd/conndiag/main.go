// Package main provides the entry point for the conndiag tool. It splits
// connection strings into their components with passwords redacted, and
// renders binary payloads as printable quoted text.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-conn-diag/internal/common"
	"github.com/isseis/go-conn-diag/internal/config"
	"github.com/isseis/go-conn-diag/internal/connstr"
	"github.com/isseis/go-conn-diag/internal/logging"
	"github.com/isseis/go-conn-diag/internal/quoting"
	"github.com/isseis/go-conn-diag/internal/strbuf"
	"github.com/isseis/go-conn-diag/internal/terminal"
	"github.com/isseis/go-conn-diag/internal/trace"
)

// traceEnvVar enables entry/exit tracing when set to a truthy value.
const traceEnvVar = "CONNDIAG_TRACE"

var (
	configPath     = flag.String("config", "", "path to config file (TOML)")
	logLevel       = flag.String("log-level", "", "log level (debug, info, warn, error); overrides config")
	quoteMode      = flag.Bool("quote", false, "quote stdin bytes as printable text instead of splitting URLs")
	interactive    = flag.Bool("interactive", false, "force interactive (human) output")
	nonInteractive = flag.Bool("non-interactive", false, "force non-interactive (machine) output")
)

func main() {
	runID := logging.GenerateRunID()

	if err := run(runID); err != nil {
		slog.Error("conndiag failed", "error", err, "run_id", runID)
		os.Exit(1)
	}
}

func run(runID string) error {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}

	detector := terminal.NewDetector(terminal.DetectorOptions{
		ForceInteractive:    *interactive,
		ForceNonInteractive: *nonInteractive,
	})

	if err := logging.Setup(logging.Options{
		Level:       level,
		Interactive: detector.IsInteractive(),
		Placeholder: cfg.Redact.Placeholder,
		RunID:       runID,
	}); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	var tracer *trace.Tracer
	if common.EnvBool(traceEnvVar) {
		tracer = trace.NewSlogTracer(slog.Default())
	}

	if *quoteMode {
		return quoteStdin(cfg, tracer)
	}
	return splitAll(flag.Args(), cfg, tracer)
}

// quoteStdin reads the whole payload from stdin and writes its quoted
// printable form to stdout, bounded by the configured output limit.
func quoteStdin(cfg *config.Config, tracer *trace.Tracer) error {
	tracer.FuncEntry("quoteStdin")

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	tracer.Value("input_bytes", len(data))

	var buf *strbuf.Buffer
	if cfg.Quote.MaxOutputBytes > 0 {
		buf = strbuf.NewWithLimit(0, cfg.Quote.MaxOutputBytes)
	} else {
		buf = strbuf.New(0)
	}

	if err := quoting.Quote(buf, data); err != nil {
		if errors.Is(err, strbuf.ErrCapacityLimit) {
			return fmt.Errorf("payload of %d bytes exceeds the quote output limit: %w", len(data), err)
		}
		return fmt.Errorf("failed to quote payload: %w", err)
	}

	fmt.Println(buf.String())
	tracer.FuncExit("quoteStdin", buf.Len())
	return nil
}

// splitAll splits every connection string given as an argument, or each
// stdin line when no arguments are present.
func splitAll(args []string, cfg *config.Config, tracer *trace.Tracer) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := splitOne(arg, cfg, tracer); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			if err := splitOne(line, cfg, tracer); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return nil
}

func splitOne(raw string, cfg *config.Config, tracer *trace.Tracer) error {
	tracer.FuncEntry("splitOne")
	tracer.Value("url", raw)

	u, err := connstr.ParseString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse %q: %w", raw, err)
	}

	slog.Debug("split connection string", "url", raw, "host", u.Host)

	placeholder := cfg.Redact.Placeholder
	fmt.Println(u.Redacted(placeholder))
	printComponent("scheme", u.Scheme, u.HasScheme)
	printComponent("user", u.User, u.HasUser)
	if u.HasPassword {
		printComponent("password", placeholder, true)
	}
	printComponent("host", u.Host, true)
	printComponent("port", u.Port, u.HasPort)
	printComponent("path", u.Path, u.HasPath)

	tracer.FuncExit("splitOne", u.Host)
	return nil
}

func printComponent(name, value string, present bool) {
	if !present {
		return
	}
	// The decoded user may carry arbitrary bytes; keep the output printable.
	fmt.Printf("  %-8s ", name+":")
	quoting.Print([]byte(value))
	fmt.Println()
}
