package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/simplelogging/simplelog"
	"github.com/simplelogging/simplelog/build"
	"github.com/urfave/cli"
)

var (
	// stdout receives the console handler output and command results.
	stdout io.Writer = os.Stdout

	// stdin is where traces are read from when the trace flag is "-".
	stdin io.Reader = os.Stdin
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[simplelog] %v\n", err)
	os.Exit(1)
}

// session is a configured backend plus the registry its metrics live in.
type session struct {
	cfg      *simplelog.Config
	backend  *simplelog.Backend
	registry *prometheus.Registry
}

// newSession loads the config named by the global flags, applies the flag
// overrides and starts a backend.
func newSession(ctx *cli.Context) (*session, error) {
	cfg, err := simplelog.LoadConfig(ctx.GlobalString("configfile"))
	if err != nil {
		return nil, err
	}

	if ctx.GlobalIsSet("debuglevel") {
		cfg.DebugLevel = ctx.GlobalString("debuglevel")
	}
	if ctx.GlobalIsSet("role") {
		cfg.Role = ctx.GlobalString("role")
	}
	if ctx.GlobalIsSet("logdir") {
		cfg.LogDir = ctx.GlobalString("logdir")
	}
	if ctx.GlobalBool("nologfile") {
		cfg.Logging.File.Disable = true
	}
	if ctx.GlobalBool("metrics") {
		cfg.Metrics = true
	}

	cfg, err = simplelog.ValidateConfig(*cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	backend, err := simplelog.NewBackend(cfg, simplelog.BackendConfig{
		Console:    stdout,
		Registerer: registry,
	})
	if err != nil {
		return nil, err
	}
	backend.SetupLoggers()

	return &session{
		cfg:      cfg,
		backend:  backend,
		registry: registry,
	}, nil
}

// close prints the metrics if they were requested and flushes the log.
func (s *session) close() error {
	if s.cfg.Metrics {
		if err := printMetrics(s.registry); err != nil {
			return err
		}
	}

	return s.backend.Close()
}

// printMetrics writes every counter of the registry to stdout as
// "name{labels} value", sorted for stable output.
func printMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("unable to gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q",
					label.GetName(), label.GetValue()))
			}

			lines = append(lines, fmt.Sprintf("%s{%s} %v",
				family.GetName(), strings.Join(labels, ","),
				metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}

	return nil
}

// withSession runs action with a session that is closed afterwards.
func withSession(action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		s, err := newSession(ctx)
		if err != nil {
			return err
		}

		if err := action(ctx, s); err != nil {
			_ = s.close()
			return err
		}

		return s.close()
	}
}

// newApp returns the command line application with every command and
// global flag.
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "simplelog"
	app.Version = build.Version() + " commit=" + build.Commit
	if !build.IsProdBuild() {
		app.Version += " " + build.Deployment.String()
	}
	app.Usage = "write call-site attributed log lines from the shell"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:      "configfile, C",
			Value:     simplelog.DefaultConfigFile,
			Usage:     "The path to the configuration file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name: "debuglevel, d",
			Usage: "Override the debug level, e.g. " +
				"info,MyCategory=trace.",
		},
		cli.StringFlag{
			Name: "role",
			Usage: "Override the net mode lines are tagged " +
				"with {none, standalone, dedicated, listen, " +
				"client}.",
		},
		cli.StringFlag{
			Name:      "logdir",
			Usage:     "Override the directory of the log file.",
			TakesFile: true,
		},
		cli.BoolFlag{
			Name:  "nologfile",
			Usage: "Only log to the console.",
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "Print the line counters before exiting.",
		},
	}
	app.Commands = []cli.Command{
		logCommand,
		blueprintCommand,
		screenCommand,
		parseCommand,
	}
	app.Writer = stdout

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}
