// Package app wires settings, importers, the session and the feed into one CLI run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
	"github.com/tartampluch/go-anniversary/internal/feed"
	"github.com/tartampluch/go-anniversary/internal/importer"
	"github.com/tartampluch/go-anniversary/internal/locale"
	"github.com/tartampluch/go-anniversary/internal/server"
	"golang.org/x/sync/errgroup"
)

// App runs one invocation: load, mutate, report, export and optionally serve.
// Dependencies are exported so tests can swap the clock, the network and the keyring.
type App struct {
	Opts     *Options
	Settings config.Settings
	Clock    engine.Clock
	Out      io.Writer
	Loader   *importer.Loader
	Secrets  importer.SecretStore

	// Listener, when set, is used by serve mode instead of binding Settings.Port.
	Listener net.Listener

	// Ready is closed once serve mode has attempted its first feed build.
	Ready chan struct{}

	session *engine.Session
	tr      *locale.Translator
	server  *server.FeedServer
}

// New builds an App with production dependencies.
func New(opts *Options, settings config.Settings) *App {
	return &App{
		Opts:     opts,
		Settings: settings,
		Clock:    engine.RealClock{},
		Out:      os.Stdout,
		Loader:   &importer.Loader{Fetcher: importer.NewHTTPFetcher(settings.HTTPTimeout)},
		Secrets:  importer.NewKeyringStore(),
	}
}

// Session exposes the state after Run, mostly for tests.
func (a *App) Session() *engine.Session {
	return a.session
}

// Run executes the whole pipeline. It blocks in serve mode until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompApp)

	lang := a.Settings.Language
	if a.Opts.Lang != "" {
		lang = a.Opts.Lang
	}
	a.tr = locale.New(lang)
	a.session = engine.NewSession(a.Clock, engine.EnglishLabel)

	if a.Opts.RememberPwd {
		if err := a.Secrets.Set(a.Opts.User, a.Opts.Password); err != nil {
			return err
		}
	}

	steps := []func(context.Context) error{
		a.loadSnapshot,
		a.importSources,
		a.applyMutations,
		a.selectPeriod,
		a.report,
		a.export,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	log.Debug(config.MsgSessionReady, config.LogKeyValue, a.session.String())

	if a.Opts.Serve {
		return a.serve(ctx)
	}
	return nil
}

func (a *App) loadSnapshot(context.Context) error {
	if a.Opts.SessionPath == "" {
		return nil
	}
	f, err := os.Open(a.Opts.SessionPath)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	_, err = a.session.Import(f)
	return err
}

// importSources applies -reset, then every bulk source in flag order.
func (a *App) importSources(ctx context.Context) error {
	if a.Opts.Reset {
		a.session.ResetRoster()
	}

	for _, src := range a.sources() {
		people, err := a.Loader.Load(ctx, src)
		if err != nil {
			return err
		}
		a.session.ImportPeople(people)
	}
	return nil
}

func (a *App) sources() []importer.Source {
	var out []importer.Source
	if a.Opts.CSVPath != "" {
		out = append(out, importer.Source{Path: a.Opts.CSVPath, Format: importer.FormatCSV})
	}
	if a.Opts.VCFPath != "" {
		out = append(out, importer.Source{Path: a.Opts.VCFPath, Format: importer.FormatVCard})
	}
	if a.Opts.URL != "" {
		out = append(out, a.remoteSource())
	}
	return out
}

func (a *App) remoteSource() importer.Source {
	return importer.Source{
		URL:  a.Opts.URL,
		Cred: importer.ResolveCredentials(a.Secrets, a.Opts.User, a.Opts.Password),
	}
}

func (a *App) applyMutations(context.Context) error {
	for _, p := range a.Opts.Add {
		if _, err := a.session.AddPerson(p.Name, p.StartDate); err != nil {
			return err
		}
	}
	for _, name := range a.Opts.Remove {
		a.session.RemovePerson(name)
	}
	for _, label := range a.Opts.AddMilestones {
		if _, err := a.session.AddMilestone(label); err != nil {
			return err
		}
	}
	if len(a.Opts.RemoveMilestones) > 0 {
		if _, err := a.session.RemoveMilestones(a.Opts.RemoveMilestones...); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) selectPeriod(context.Context) error {
	target := engine.CurrentPeriod(a.Clock)
	if a.Opts.Month != nil {
		target = *a.Opts.Month
	}
	_, err := a.session.SetPeriod(target.Add(a.Opts.Offset))
	return err
}

func (a *App) report(context.Context) error {
	events, err := a.session.AnniversariesFor(a.Opts.Only...)
	if err != nil {
		return err
	}
	return WriteReport(a.Out, a.tr, a.session.Period, a.session.Roster.Len(), events)
}

func (a *App) export(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompApp)

	if a.Opts.ExportPath != "" {
		if err := writeFile(a.Opts.ExportPath, a.session.Export); err != nil {
			return err
		}
		log.Info(config.MsgSessionSaved, config.LogKeyFile, a.Opts.ExportPath)
	}

	if a.Opts.ICSPath != "" {
		data, count, err := a.generator().Build(ctx, a.session, a.window())
		if err != nil {
			return err
		}
		err = writeFile(a.Opts.ICSPath, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		if err != nil {
			return err
		}
		log.Info(config.MsgICSWritten, config.LogKeyFile, a.Opts.ICSPath, config.LogKeyEvents, count)
	}
	return nil
}

func (a *App) generator() *feed.Generator {
	return &feed.Generator{
		Clock: a.Clock,
		FormatSummary: func(name string, m engine.MilestoneType) string {
			return a.tr.Summary(name, a.tr.MilestoneLabel(m.Years))
		},
		CalendarName: a.tr.Msg(config.TKeyCalName, config.ICalCalName),
		Only:         a.Opts.Only,
	}
}

func (a *App) window() feed.Window {
	return feed.Window{Before: a.Settings.WindowBefore, After: a.Settings.WindowAfter}
}

// serve runs the feed server and its worker until ctx is cancelled or the server fails.
func (a *App) serve(ctx context.Context) error {
	a.server = server.NewFeedServer(a.Settings.Port)

	worker := &Worker{
		Session:   a.session,
		Generator: a.generator(),
		Server:    a.server,
		Window:    a.window(),
		Interval:  a.Settings.RefreshInterval(),
		Ready:     a.Ready,
	}
	if a.Opts.URL != "" {
		worker.Reload = func(ctx context.Context) error {
			people, err := a.Loader.Load(ctx, a.remoteSource())
			if err != nil {
				return err
			}
			a.session.ImportPeople(people)
			return nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if a.Listener != nil {
			return a.server.Serve(gctx, a.Listener)
		}
		return a.server.Run(gctx)
	})
	g.Go(func() error { return worker.Run(gctx) })
	return g.Wait()
}

// writeFile creates (or truncates) path with owner-only permissions and fills it with write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", config.ErrWriteFile, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return nil
}
