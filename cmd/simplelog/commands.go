package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/simplelogging/simplelog"
	"github.com/simplelogging/simplelog/callsite"
	"github.com/simplelogging/simplelog/overlay"
	"github.com/urfave/cli"
)

var (
	categoryFlag = cli.StringFlag{
		Name:  "category",
		Value: simplelog.TransientCategory,
		Usage: "The log category to write to.",
	}

	verbosityFlag = cli.StringFlag{
		Name: "verbosity",
		Usage: "The verbosity to log at {Error, Warning, Log, " +
			"Verbose, VeryVerbose}, the configured default " +
			"if not set.",
	}

	durationFlag = cli.DurationFlag{
		Name: "duration",
		Usage: "How long the line stays on screen, the configured " +
			"screen.duration if not set.",
	}
)

// durationFromFlag returns the screen duration given on the command line,
// or the configured one.
func durationFromFlag(ctx *cli.Context, s *session) time.Duration {
	if !ctx.IsSet(durationFlag.Name) {
		return s.backend.ScreenDuration()
	}

	return ctx.Duration(durationFlag.Name)
}

// verbosityFromFlag returns the verbosity named by the command's flag, or
// the configured default.
func verbosityFromFlag(ctx *cli.Context,
	s *session) (simplelog.Verbosity, error) {

	if !ctx.IsSet(verbosityFlag.Name) {
		return s.cfg.DefaultVerbosity(), nil
	}

	return simplelog.ParseVerbosity(ctx.String(verbosityFlag.Name))
}

// readTrace reads a textual script stack trace from path, or from stdin if
// path is "-".
func readTrace(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("unable to read trace: %w", err)
	}

	return string(data), nil
}

var logCommand = cli.Command{
	Name:      "log",
	Usage:     "Log a message attributed to this command.",
	ArgsUsage: "message",
	Flags: []cli.Flag{
		categoryFlag,
		verbosityFlag,
		cli.BoolFlag{
			Name:  "static",
			Usage: "Leave out the net mode tag.",
		},
		cli.BoolFlag{
			Name:  "once",
			Usage: "Log through a log once call site.",
		},
		cli.IntFlag{
			Name:  "repeat",
			Value: 1,
			Usage: "How many times to log the message.",
		},
	},
	Action: withSession(logMessage),
}

func logMessage(ctx *cli.Context, s *session) error {
	if ctx.NArg() == 0 {
		return cli.ShowCommandHelp(ctx, "log")
	}

	v, err := verbosityFromFlag(ctx, s)
	if err != nil {
		return err
	}

	var (
		logger   = s.backend.Logger()
		category = ctx.String(categoryFlag.Name)
		msg      = strings.Join(ctx.Args(), " ")
		role     = s.backend.Context()
	)
	for i := 0; i < ctx.Int("repeat"); i++ {
		switch {
		case ctx.Bool("once") && ctx.Bool("static"):
			logger.LogOnceStatic(category, v, "%s", msg)

		case ctx.Bool("once"):
			logger.LogOnce(role, category, v, "%s", msg)

		case ctx.Bool("static"):
			logger.LogStatic(category, v, "%s", msg)

		default:
			logger.Log(role, category, v, "%s", msg)
		}
	}

	return nil
}

var blueprintCommand = cli.Command{
	Name:  "blueprint",
	Usage: "Log a message attributed to the last frame of a script trace.",
	Description: `
	Reads a script stack trace, one frame per line with the most recent
	frame last, and logs the message the way a scripted log node does:
	attributed to the calling function, skipping generated dispatch
	frames.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:      "trace",
			Value:     "-",
			Usage:     "The trace file, - for stdin.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name:  "message",
			Value: simplelog.DefaultBlueprintParams().Message,
			Usage: "The message to log.",
		},
		categoryFlag,
		verbosityFlag,
		cli.BoolFlag{
			Name:  "screen",
			Usage: "Also draw the line on screen.",
		},
		durationFlag,
	},
	Action: withSession(blueprintLog),
}

func blueprintLog(ctx *cli.Context, s *session) error {
	trace, err := readTrace(ctx.String("trace"))
	if err != nil {
		return err
	}

	v, err := verbosityFromFlag(ctx, s)
	if err != nil {
		return err
	}

	p := s.backend.BlueprintParams()
	p.Message = ctx.String("message")
	p.Category = ctx.String(categoryFlag.Name)
	p.Verbosity = v
	p.PrintToScreen = ctx.Bool("screen")
	p.ScreenDuration = durationFromFlag(ctx, s)

	s.backend.Logger().BlueprintLogTrace(trace, s.backend.Context(), p)

	if !p.PrintToScreen {
		return nil
	}

	return drawOverlay(s, false, 0)
}

var screenCommand = cli.Command{
	Name:      "screen",
	Usage:     "Draw a message on screen without logging it.",
	ArgsUsage: "message",
	Flags: []cli.Flag{
		durationFlag,
		cli.StringFlag{
			Name:  "color",
			Value: overlay.White.String(),
			Usage: "The color of the line {white, red, yellow, " +
				"cyan, green, blue, magenta}.",
		},
		cli.BoolFlag{
			Name:  "follow",
			Usage: "Keep redrawing until the line expires.",
		},
	},
	Action: withSession(screenLog),
}

func screenLog(ctx *cli.Context, s *session) error {
	if ctx.NArg() == 0 {
		return cli.ShowCommandHelp(ctx, "screen")
	}

	c, err := overlay.ParseColor(ctx.String("color"))
	if err != nil {
		return err
	}

	d := durationFromFlag(ctx, s)
	s.backend.Logger().ScreenLog(d, c, "%s", strings.Join(ctx.Args(), " "))

	return drawOverlay(s, ctx.Bool("follow"), d)
}

// drawOverlay draws the overlay on stdout once, or until d has passed when
// follow is set.
func drawOverlay(s *session, follow bool, d time.Duration) error {
	r, t := s.backend.NewRenderer(stdout)
	if r == nil {
		return errors.New("the screen overlay is disabled")
	}

	if !follow {
		t.Stop()
		_, err := r.Render()

		return err
	}

	ctxc, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	r.Run(ctxc, t)

	return nil
}

var parseCommand = cli.Command{
	Name:  "parse",
	Usage: "Print the caller a script trace is attributed to.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:      "trace",
			Value:     "-",
			Usage:     "The trace file, - for stdin.",
			TakesFile: true,
		},
		cli.BoolFlag{
			Name:  "frames",
			Usage: "Print the parsed frames as well.",
		},
	},
	Action: parseTrace,
}

func parseTrace(ctx *cli.Context) error {
	trace, err := readTrace(ctx.String("trace"))
	if err != nil {
		return err
	}

	if ctx.Bool("frames") {
		for i, frame := range callsite.SplitFrames(trace) {
			fmt.Fprintf(stdout, "%d: %q\n", i, frame)
		}
	}

	name, ok := callsite.Attribute(trace)
	fmt.Fprintln(stdout, name)
	if !ok {
		return errors.New("the trace holds no script frame")
	}

	return nil
}
