package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/engine"
	"github.com/matzehuels/forcegraph/pkg/observability/metrics"
	"github.com/matzehuels/forcegraph/pkg/provider"
	"github.com/matzehuels/forcegraph/pkg/scene"
)

type viewOpts struct {
	configPath  string
	seed        int64
	fps         int
	watch       bool
	metricsAddr string
	logFile     string
}

func (o *viewOpts) bind(cmd *cobra.Command, withWatch bool) {
	fs := cmd.Flags()
	fs.StringVarP(&o.configPath, "config", "c", "", "config file (.toml, .yaml)")
	fs.Int64Var(&o.seed, "seed", 0, "scatter seed (default from config)")
	fs.IntVar(&o.fps, "fps", 0, "frame rate (default from config)")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.StringVar(&o.logFile, "log-file", "", "write logs here while the viewer is open")
	if withWatch {
		fs.BoolVarP(&o.watch, "watch", "w", false, "reload the file when it changes")
	}
}

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a graph in the terminal",
		Long: `Open an interactive terminal view of a graph while the simulation runs.

Mouse: click a node to highlight it, drag a node to pin it, drag the
background to pan, scroll to zoom. Keys: c center, +/- zoom, 0 reset zoom,
esc clear highlight, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			if opts.watch && input == "" {
				return fmt.Errorf("--watch needs a file")
			}
			return c.runView(cmd.Context(), input, opts)
		},
	}
	opts.bind(cmd, true)

	return cmd
}

// demoCommand opens the viewer on the built-in dataset.
func (c *CLI) demoCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Explore the built-in demo graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), "", opts)
		},
	}
	opts.bind(cmd, false)

	return cmd
}

// runView runs the engine and the terminal program until the user quits
// or ctx ends.
func (c *CLI) runView(ctx context.Context, input string, opts viewOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Engine.Seed = opts.seed
	}
	if opts.fps > 0 {
		cfg.Engine.FPS = opts.fps
	}

	store, source, err := openStore(ctx, input)
	if err != nil {
		return err
	}

	// Logging to the terminal would corrupt the alternate screen.
	logger, closeLog, err := c.viewLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.metricsAddr != "" {
		hooks, stop, err := serveMetrics(opts.metricsAddr, logger)
		if err != nil {
			return err
		}
		defer stop()
		engineOpts = append(engineOpts, engine.WithHooks(hooks))
	}

	// The real surface size arrives with the first window size message.
	e := engine.New(cfg.EngineSettings(0, 0), engineOpts...)
	defer e.Dispose()

	if opts.watch {
		go func() {
			if err := provider.Watch(ctx, input, store, logger); err != nil {
				logger.Error("watch stopped", "path", input, "err", err)
			}
		}()
	}

	frames := newFrameBox()
	runErr := make(chan error, 1)
	go func() {
		runErr <- e.Run(ctx, store, func(f *scene.Frame) {
			frames.put(frameMsg{frame: f, energy: e.Simulation().Stats().Energy})
		})
	}()

	model := newViewModel(e, frames.c, source)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err = p.Run()

	cancel()
	<-runErr

	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return parent.Err()
	}
	return err
}

// openStore loads the input file into a store, or the demo dataset.
func openStore(ctx context.Context, input string) (*provider.Store, string, error) {
	if input == "" {
		return provider.DemoStore(), "demo", nil
	}
	store, err := provider.Load(ctx, input)
	if err != nil {
		return nil, "", err
	}
	return store, input, nil
}

func (c *CLI) viewLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, c.Logger.GetLevel()), func() { _ = f.Close() }, nil
}

// serveMetrics registers engine metrics on a fresh registry and serves
// them. stop shuts the server down.
func serveMetrics(addr string, logger *log.Logger) (*metrics.Hooks, func(), error) {
	reg := prometheus.NewRegistry()
	hooks, err := metrics.New(metrics.DefaultNamespace, reg)
	if err != nil {
		return nil, nil, err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Router(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return hooks, stop, nil
}

// frameBox holds at most one pending frame. A newer frame replaces an
// unread one so the engine never waits on the terminal.
type frameBox struct {
	c chan frameMsg
}

func newFrameBox() *frameBox { return &frameBox{c: make(chan frameMsg, 1)} }

func (b *frameBox) put(m frameMsg) {
	for {
		select {
		case b.c <- m:
			return
		default:
		}
		select {
		case <-b.c:
		default:
		}
	}
}
