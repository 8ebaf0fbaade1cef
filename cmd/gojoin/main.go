// Command gojoin joins the lines of two sorted files on a common field.
//
//	gojoin [flags] FILE1 FILE2
//
// For each pair of input lines with identical join fields, gojoin writes a
// line to standard output. FILE1 or FILE2 (not both) may be "-" for
// standard input.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/gojoin/bootstrap"
	"github.com/kbukum/gojoin/config"
	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/join"
	"github.com/kbukum/gojoin/logger"
	"github.com/kbukum/gojoin/pipeline"
	"github.com/kbukum/gojoin/source"
	"github.com/kbukum/gojoin/version"
)

const name = "gojoin"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the flags that are not configuration keys.
type options struct {
	configFile  string
	envFile     string
	showVersion bool
	showHelp    bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringP("unpaired", "a", "", "also print unpairable lines from file FILENUM, where FILENUM is 1 or 2")
	fs.BoolP("ignore-case", "i", false, "ignore differences in case when comparing fields")
	fs.StringP("field", "j", "", "equivalent to '-1 FIELD -2 FIELD'")
	fs.StringP("field1", "1", "", "join on this FIELD of file 1")
	fs.StringP("field2", "2", "", "join on this FIELD of file 2")
	fs.StringP("separator", "t", "", "use CHAR as input and output field separator ('' joins whole lines)")
	fs.Bool("check-order", false, "fail if an input is not sorted on its join field")
	fs.StringVar(&opts.configFile, "config", "", "YAML, JSON or TOML configuration file")
	fs.StringVar(&opts.envFile, "env-file", "", "dotenv file with GOJOIN_ variables")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.BoolVarP(&opts.showVersion, "version", "V", false, "print version and exit")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "print help and exit")
	return fs
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [OPTION]... FILE1 FILE2\n", name)
	fmt.Fprintln(w, "For each pair of input lines with identical join fields, write a line to")
	fmt.Fprintln(w, "standard output. The default join field is the first, delimited by blanks.")
	fmt.Fprintln(w, "When FILE1 or FILE2 (not both) is -, read standard input.")
	fmt.Fprintln(w)
	fmt.Fprint(w, fs.FlagUsages())
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return usageError(stderr, err.Error())
	}

	switch {
	case opts.showHelp:
		usage(stdout, fs)
		return 0
	case opts.showVersion:
		fmt.Fprintln(stdout, version.Line(name))
		return 0
	}

	if msg := operandError(fs.Args()); msg != "" {
		return usageError(stderr, msg)
	}

	if err := execute(fs, opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", name, errors.Diagnostic(err))
		return errors.ExitCode(err)
	}
	return 0
}

func usageError(stderr io.Writer, msg string) int {
	fmt.Fprintf(stderr, "%s: %s\n", name, msg)
	fmt.Fprintf(stderr, "Try '%s --help' for more information.\n", name)
	return errors.ExitFailure
}

func operandError(operands []string) string {
	switch len(operands) {
	case 0:
		return "missing operand"
	case 1:
		return fmt.Sprintf("missing operand after '%s'", operands[0])
	case 2:
		return ""
	default:
		return fmt.Sprintf("extra operand '%s'", operands[2])
	}
}

func execute(fs *pflag.FlagSet, opts options, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load(name, fs,
		config.WithConfigFile(opts.configFile),
		config.WithEnvFile(opts.envFile),
	)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithLogger(logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)),
		bootstrap.WithVersion(version.Short()),
		bootstrap.WithRunID(cfg.RunID),
		bootstrap.WithGracefulTimeout(cfg.Telemetry.ShutdownTimeout),
	)
	if err != nil {
		return err
	}
	logger.RegisterDefaults("join", "cli", "telemetry")
	log := logger.Get("cli").WithContext(app.Context(context.Background()))
	defer func() { logFailure(log, err) }()

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	file1, file2 := cfg.Inputs[0], cfg.Inputs[1]
	var src1, src2 pipeline.Iterator[string]
	app.OnStart(func(context.Context) error {
		bufSize := cfg.Input.Bytes()
		var err error
		if src1, err = source.Open(file1, stdin, bufSize); err != nil {
			return err
		}
		src2, err = source.Open(file2, stdin, bufSize)
		return err
	})
	app.OnStop(func(context.Context) error {
		return stderrors.Join(closeSource(src1), closeSource(src2))
	})

	return app.RunTask(context.Background(), func(ctx context.Context) error {
		engine := join.NewEngine(settings, src1, src2, stdout,
			join.WithMetrics(app.Metrics),
			join.WithNames(file1, file2),
		)
		stats, err := engine.Run(ctx)
		if err == nil {
			log.Info("join complete", logger.Fields(
				"paired", stats.Paired, "groups", stats.Groups,
			))
		}
		return err
	})
}

// closeSource closes src if it was opened. The engine closes its sources
// too; Close is safe to repeat.
func closeSource(src pipeline.Iterator[string]) error {
	if src == nil {
		return nil
	}
	return src.Close()
}

// logFailure records whether err stopped the invocation while it was being
// set up or while it was joining.
func logFailure(log *logger.Logger, err error) {
	if err == nil {
		return
	}
	appErr := errors.Wrap(err)
	phase := "run"
	if errors.IsConfigCode(appErr.Code) {
		phase = "setup"
	}
	log.Debug("gojoin failed",
		logger.Fields("phase", phase, logger.FieldCode, string(appErr.Code)),
		logger.ErrorFields("execute", err),
	)
}
