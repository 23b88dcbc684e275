// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/debugger/console"
	"github.com/spam1/spamdbg/debugger/govern"
	"github.com/spam1/spamdbg/debugger/terminal"
	"github.com/spam1/spamdbg/debugger/terminal/plainterm"
	"github.com/spam1/spamdbg/export"
	"github.com/spam1/spamdbg/inspect"
	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/modalflag"
	"github.com/spam1/spamdbg/paths"
	"github.com/spam1/spamdbg/prefs"
	"github.com/spam1/spamdbg/script"
	"github.com/spam1/spamdbg/statsview"
	"github.com/spam1/spamdbg/tracefeed"
)

func main() {
	if err := launch(os.Args[1:], os.Stdout); err != nil {
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}
}

func launch(args []string, output io.Writer) error {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()

	modes := make([]string, len(govern.Modes))
	for i, m := range govern.Modes {
		modes[i] = m.String()
	}
	md.AddSubModes(modes...)

	prefsOverride := md.AddString("prefs", "", "preferences to override for this run. eg. 'run.batch::100; bus.depth::64'")
	echoLog := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server on %s", statsview.DefaultAddress))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer prefs.PopCommandLineStack()
	}
	if *echoLog {
		logger.SetEcho(output)
	}

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}
	pref, err := debugger.NewPreferences(pth)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *stats {
		if err := statsview.Launch(ctx, output, ""); err != nil {
			return err
		}
	}

	mode := govern.ParseMode(md.Mode())
	logger.Logf(logger.Allow, "spamdbg", "%s mode", mode)

	switch mode {
	case govern.ModeDebug:
		err = debug(ctx, md, pref, output)
	case govern.ModeServe:
		err = serve(ctx, md, pref, output)
	case govern.ModeScript:
		err = runScript(ctx, md, pref, output)
	case govern.ModeExport:
		err = exportHistory(ctx, md, pref, output)
	}

	if err != nil {
		return curated.Errorf("error in %s mode: %v", md.String(), err)
	}
	return nil
}

// prepare parses the flags for the mode and loads the trace named by the
// first argument. the number of arguments the mode requires is checked.
func prepare(md *modalflag.Modes, nargs int, usage string) (*tracefeed.Trace, bool, error) {
	md.AdditionalHelp(usage)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return nil, false, err
	}

	if len(md.RemainingArgs()) != nargs {
		return nil, false, curated.Errorf(curated.InvalidArgument, usage)
	}

	trace, err := tracefeed.LoadFile(md.GetArg(0))
	if err != nil {
		return nil, false, err
	}
	return trace, true, nil
}

// newSession creates a session using the preferences. Startup warnings are
// printed to output.
func newSession(pref *debugger.Preferences, output io.Writer) (*debugger.Session, error) {
	sess, err := debugger.NewSession(pref.SessionOptions()...)
	if err != nil {
		return nil, err
	}
	for _, w := range sess.StartupWarnings() {
		fmt.Fprintf(output, "* %v\n", w)
	}
	return sess, nil
}

// watchEvents logs every memory change event published on the bus.
func watchEvents(b *bus.Bus) *bus.Subscription {
	return b.Subscribe(func(ev bus.Event) {
		logger.Log(logger.Allow, "bus", ev)
	})
}

// interrupted returns a context that is cancelled by an interrupt signal.
func interrupted(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// ignoreCancel hides the error caused by the cancelling of the shared
// context.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func debug(ctx context.Context, md *modalflag.Modes, pref *debugger.Preferences, output io.Writer) error {
	md.NewMode()
	termType := md.AddString("term", "COLOR", "terminal type to use: COLOR, PLAIN")
	serveToo := md.AddBool("serve", false, "also start the inspection server")
	events := md.AddBool("events", false, "log memory change events")

	trace, ok, err := prepare(md, 1, "usage: spamdbg [DEBUG] <trace file>")
	if !ok {
		return err
	}

	sess, err := newSession(pref, output)
	if err != nil {
		return err
	}
	defer sess.Close()

	if *events {
		defer sess.Bus().Unsubscribe(watchEvents(sess.Bus()))
	}

	var term terminal.Terminal
	switch strings.ToUpper(*termType) {
	case "COLOR":
		term = newColorTerminal()
	case "PLAIN":
	default:
		return curated.Errorf(curated.InvalidArgument, fmt.Sprintf("terminal type %s", *termType))
	}
	if term == nil {
		term = &plainterm.PlainTerminal{}
	}
	if err := term.Initialise(); err != nil {
		if _, plain := term.(*plainterm.PlainTerminal); plain {
			return err
		}

		// fall back to the plain terminal if the colour terminal can't be
		// used, for example if stdin is not a terminal
		logger.Log(logger.Allow, "spamdbg", err)
		term = &plainterm.PlainTerminal{}
		if err := term.Initialise(); err != nil {
			return err
		}
	}
	defer term.CleanUp()

	con := console.NewConsole(sess, term, pref.RunBatch.Load())
	attachTabCompletion(term, con)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCancel(tracefeed.NewFeeder(trace, logger.Allow).Run(ctx, sess))
	})

	if *serveToo {
		g.Go(func() error {
			return inspect.NewServer(sess, logger.Allow, pref.RunBatch.Load()).ListenAndServe(ctx, pref.InspectAddress.String())
		})
	}

	g.Go(func() error {
		defer cancel()
		return con.Start(ctx)
	})

	return g.Wait()
}

func serve(ctx context.Context, md *modalflag.Modes, pref *debugger.Preferences, output io.Writer) error {
	md.NewMode()
	addr := md.AddString("addr", pref.InspectAddress.String(), "address to listen on")
	events := md.AddBool("events", false, "log memory change events")

	trace, ok, err := prepare(md, 1, "usage: spamdbg SERVE <trace file>")
	if !ok {
		return err
	}

	sess, err := newSession(pref, output)
	if err != nil {
		return err
	}
	defer sess.Close()

	if *events {
		defer sess.Bus().Unsubscribe(watchEvents(sess.Bus()))
	}

	ctx, stop := interrupted(ctx)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCancel(tracefeed.NewFeeder(trace, logger.Allow).Run(ctx, sess))
	})

	g.Go(func() error {
		fmt.Fprintf(output, "session %s listening on %s\n", sess.ID(), *addr)
		return inspect.NewServer(sess, logger.Allow, pref.RunBatch.Load()).ListenAndServe(ctx, *addr)
	})

	return g.Wait()
}

func runScript(ctx context.Context, md *modalflag.Modes, pref *debugger.Preferences, output io.Writer) error {
	md.NewMode()

	trace, ok, err := prepare(md, 2, "usage: spamdbg SCRIPT <trace file> <lua script>")
	if !ok {
		return err
	}

	sess, err := newSession(pref, output)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := interrupted(ctx)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCancel(tracefeed.NewFeeder(trace, logger.Allow).Run(ctx, sess))
	})

	g.Go(func() error {
		defer cancel()
		return script.NewScript(sess, logger.Allow, pref.RunBatch.Load()).RunFile(ctx, md.GetArg(1))
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(output, sess.History().Timeline())
	return nil
}

func exportHistory(ctx context.Context, md *modalflag.Modes, pref *debugger.Preferences, output io.Writer) error {
	md.NewMode()
	batch := md.AddInt("batch", pref.ExportBatch.Load(), "snapshots inserted per transaction")
	db := md.AddString("db", "", "database file (default is a unique name in the current directory)")

	trace, ok, err := prepare(md, 1, "usage: spamdbg EXPORT [-db file] <trace file>")
	if !ok {
		return err
	}

	sess, err := newSession(pref, output)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := interrupted(ctx)
	defer stop()

	// every cycle in the trace is allowed to commit. the feeder shuts the
	// session down when the trace ends
	if len(trace.Cycles) > 0 {
		if err := sess.Step(len(trace.Cycles)); err != nil {
			return err
		}
	}
	if err := tracefeed.NewFeeder(trace, logger.Allow).Run(ctx, sess); err != nil {
		return err
	}

	fn := *db
	if fn == "" {
		fn = fmt.Sprintf("%s.db", paths.UniqueFilename("export", sess.ID().String()[:8]))
	}

	d, err := export.Open(fn)
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := export.Write(ctx, d, sess, *batch)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s written to %s\n", sum, fn)
	return nil
}
