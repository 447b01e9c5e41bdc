package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	signalhost "github.com/wippyai/signal-host"
	"github.com/wippyai/signal-host/feature"
	"github.com/wippyai/signal-host/resource"
	"github.com/wippyai/signal-host/signal"
)

func main() {
	var (
		signals     = flag.String("signals", "HUP,USR1,USR2", "Signals to watch (names or numbers, comma-separated)")
		configFile  = flag.String("config", "", "Path to TOML config with enabled unstable features")
		logFile     = flag.String("log-file", "", "Write rotated JSON logs to this file instead of stderr")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		list        = flag.Bool("list", false, "List supported signals and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *list {
		listSignals()
		return
	}

	logger := buildLogger(*logFile, *debug)
	defer logger.Sync()
	signal.SetLogger(logger)

	gate, err := loadGate(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	host, err := signalhost.New(gate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer host.Close()

	if *interactive {
		if err := runInteractive(host); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := watch(host, logger, *signals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadGate reads the feature gate config, or enables the signal feature
// when no config is given.
func loadGate(path string) (*feature.Gate, error) {
	if path == "" {
		return feature.NewGate(feature.Signal), nil
	}
	return feature.Load(path)
}

// buildLogger assembles the zap logger: rotated JSON to a file when
// requested, console output on a terminal, JSON on a pipe.
func buildLogger(logFile string, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	var sink zapcore.WriteSyncer

	switch {
	case logFile != "":
		enc = zapcore.NewJSONEncoder(encCfg)
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	case term.IsTerminal(int(os.Stderr.Fd())):
		enc = zapcore.NewConsoleEncoder(encCfg)
		sink = zapcore.Lock(os.Stderr)
	default:
		enc = zapcore.NewJSONEncoder(encCfg)
		sink = zapcore.Lock(os.Stderr)
	}

	return zap.New(zapcore.NewCore(enc, sink, level))
}

func listSignals() {
	fmt.Println("Supported signals:")
	for signo := 1; signo < 64; signo++ {
		if name := signal.Name(signo); name != "" {
			fmt.Printf("  %2d  %s\n", signo, name)
		}
	}
}

// parseSignal accepts "HUP", "SIGHUP" or "1".
func parseSignal(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty signal name")
	}
	if signo, err := strconv.Atoi(s); err == nil {
		return signo, nil
	}
	if signo := signal.Number(strings.ToUpper(s)); signo != 0 {
		return signo, nil
	}
	return 0, fmt.Errorf("unknown signal %q", s)
}

// tableObserver logs resource registry lifecycle events.
type tableObserver struct {
	logger *zap.Logger
}

func (o tableObserver) OnResourceEvent(e resource.Event) {
	verb := "added"
	if e.Type == resource.EventRemoved {
		verb = "removed"
	}
	o.logger.Debug("resource "+verb,
		zap.Uint32("rid", uint32(e.Handle)),
		zap.Uint32("type", uint32(e.TypeID)))
}

// watch binds each requested signal and polls it in a loop, logging
// deliveries until an interrupt arrives.
func watch(host *signalhost.Host, logger *zap.Logger, signalList string) error {
	host.Table().Subscribe(tableObserver{logger: logger})
	mgr := host.Manager()

	intRID, err := mgr.Bind(signal.Number("SIGINT"))
	if err != nil {
		return fmt.Errorf("bind SIGINT: %w", err)
	}

	var wg sync.WaitGroup
	for _, s := range strings.Split(signalList, ",") {
		signo, err := parseSignal(s)
		if err != nil {
			return err
		}

		rid, err := mgr.Bind(signo)
		if err != nil {
			return fmt.Errorf("bind %s: %w", s, err)
		}
		logger.Info("watching signal",
			zap.String("name", signal.Name(signo)),
			zap.Int("signo", signo),
			zap.Uint32("rid", uint32(rid)))

		wg.Add(1)
		go func(signo int, rid resource.Handle) {
			defer wg.Done()
			for {
				delivered, err := mgr.Poll(context.Background(), rid)
				if err != nil {
					logger.Error("poll failed",
						zap.Int("signo", signo), zap.Error(err))
					return
				}
				if !delivered {
					logger.Debug("subscription closed", zap.Int("signo", signo))
					return
				}
				logger.Info("signal delivered",
					zap.String("name", signal.Name(signo)),
					zap.Int("signo", signo))
			}
		}(signo, rid)
	}

	// Block until interrupted, then unbind everything; the closed
	// subscriptions resolve the poll loops above.
	if _, err := mgr.Poll(context.Background(), intRID); err != nil {
		return err
	}
	logger.Info("interrupt received, shutting down")

	host.Close()
	wg.Wait()
	return nil
}
