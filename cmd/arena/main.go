package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qixgo/arena/internal/audio"
	"github.com/qixgo/arena/internal/config"
	"github.com/qixgo/arena/internal/data"
	"github.com/qixgo/arena/internal/game"
	"github.com/qixgo/arena/internal/input"
	"github.com/qixgo/arena/internal/persist"
	"github.com/qixgo/arena/internal/scripting"
	"github.com/qixgo/arena/internal/term"
	"github.com/qixgo/arena/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	headless := cfg.Input.Script != "" && cfg.Input.Headless

	// 2. Init logger. The screen owns the terminal, so logs go to a file.
	if cfg.Logging.File == "" && !headless {
		cfg.Logging.File = "arena.log"
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Level
	level, err := data.LoadLevel(cfg.Level.Path)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	printBanner(level.Name)
	printSection("level")
	printStat("hostiles", fmt.Sprint(level.Count()))
	printStat("finish at", fmt.Sprintf("%.0f%%", cfg.Arena.FinishPercentage))
	printStat("lives", fmt.Sprint(cfg.Player.Lives))
	fmt.Println()

	// 4. Optional session store
	var sessions *persist.SessionRepo
	if cfg.Database.DSN != "" {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("migrations applied")
		fmt.Println()
		sessions = persist.NewSessionRepo(db)
	}

	// 5. Sound, input and bot
	sink, closeAudio := audio.Open(cfg.Audio, log.Named("audio"))
	defer closeAudio()

	keys := input.NewState(cfg.Input.HoldWindow)
	var bot *scripting.Engine
	if cfg.Input.Script != "" {
		bot, err = scripting.NewEngine(cfg.Input.Script, log.Named("bot"))
		if err != nil {
			return fmt.Errorf("bot: %w", err)
		}
		defer bot.Close()
		printOK("bot script loaded: " + cfg.Input.Script)
	}

	// 6. Session
	started := time.Now()
	g := game.New(cfg, level, keys, sink, world.SystemClock{}, log)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	var screen *term.Terminal
	var interrupt <-chan struct{}
	if !headless {
		screen, err = term.Open(keys, log.Named("term"))
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		interrupt = screen.Interrupted()
	} else {
		printReady(fmt.Sprintf("headless run (frame: %s)", cfg.Frame.Rate))
	}

	// 7. Frame loop
	ticker := time.NewTicker(cfg.Frame.Rate)
	defer ticker.Stop()
	last := time.Now()

loop:
	for !g.Done() {
		select {
		case now := <-ticker.C:
			if bot != nil {
				ctx := scripting.Snapshot(g.State(), g.Tracker().Grid(), g.Tracker().IsBuilding())
				keys.Set(bot.BotKeys(ctx), now)
			}
			keys.Poll(now)
			g.Frame(now.Sub(last))
			last = now
			if screen != nil {
				screen.Draw(g)
			}
			if cfg.Frame.Limit > 0 && g.State().Frame >= cfg.Frame.Limit {
				log.Info("frame limit reached", zap.Uint64("frames", cfg.Frame.Limit))
				break loop
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			break loop
		case <-interrupt:
			log.Info("interrupted from terminal")
			break loop
		}
	}

	g.Exit()
	if screen != nil {
		screen.Close()
	}
	res := g.Result()
	printSummary(res)

	if sessions != nil {
		if err := saveResult(sessions, cfg.Level.Player, res, started); err != nil {
			return err
		}
	}
	return nil
}

func saveResult(repo *persist.SessionRepo, player string, res game.Result, started time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	row := &persist.SessionRow{
		Player:    player,
		Level:     res.Level,
		Outcome:   res.Outcome.String(),
		Lives:     res.Lives,
		Covered:   res.Covered,
		Frames:    int64(res.Frames),
		Claims:    res.Claims,
		Deaths:    res.Deaths,
		Digest:    res.Digest[:],
		StartedAt: started,
	}
	if _, err := repo.Save(ctx, row); err != nil {
		return err
	}
	printOK("session saved")

	best, err := repo.Best(ctx, res.Level, 5)
	if err != nil {
		return err
	}
	printBest(res.Level, best)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
