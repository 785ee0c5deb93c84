package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cbodonnell/arena/client/config"
	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/game"
	"github.com/cbodonnell/arena/client/input"
	"github.com/cbodonnell/arena/client/network"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/schedule"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/preferences"
	"github.com/cbodonnell/arena/pkg/queue"
	"github.com/cbodonnell/arena/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
)

// closer is satisfied by both transports.
type closer interface {
	Close() error
	Wait()
}

func main() {
	envFile := flag.String("env-file", ".env", "Optional env file to load")
	serverAddress := flag.String("server", "", "Server address, overrides "+config.EnvServerAddress)
	logLevel := flag.String("log-level", "", "Log level, overrides "+config.EnvLogLevel)
	logJSON := flag.Bool("log-json", false, "Write logs as JSON")
	preferencesPath := flag.String("preferences", "", "Preferences database, overrides "+config.EnvPreferencesPath)
	recordPath := flag.String("record", "", "Record inbound frames to this file, overrides "+config.EnvRecordPath)
	replayPath := flag.String("replay", "", "Replay a recording instead of dialing, overrides "+config.EnvReplayPath)
	debug := flag.Bool("debug", false, "Show the debug overlay")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel, err = log.ParseLogLevel(*logLevel)
		if err != nil {
			panic(fmt.Sprintf("Failed to parse log level: %v", err))
		}
	}
	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}
	if *preferencesPath != "" {
		cfg.PreferencesPath = *preferencesPath
	}
	if *recordPath != "" {
		cfg.RecordPath = *recordPath
	}
	if *replayPath != "" {
		cfg.ReplayPath = *replayPath
	}
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	format := log.FormatConsole
	if *logJSON {
		format = log.FormatJSON
	}
	log.SetDefaultLogger(log.New(os.Stdout, format, cfg.LogLevel))
	log.Info("Log level set to %s", cfg.LogLevel)
	log.Info("Starting client version %s", version.Get())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefs := preferences.Preferences{ServerAddress: cfg.ServerAddress}
	var repository preferences.Repository
	if cfg.PreferencesPath != "" {
		repository, err = preferences.NewSQLiteRepository(ctx, cfg.PreferencesPath)
		if err != nil {
			log.Warn("Preferences disabled: %v", err)
		} else {
			defer repository.Close(ctx)
			saved, err := preferences.Load(ctx, repository)
			if err != nil {
				log.Warn("Failed to load preferences: %v", err)
			}
			if saved.PlayerName != "" {
				prefs.PlayerName = saved.PlayerName
			}
			if saved.ServerAddress != "" {
				prefs.ServerAddress = saved.ServerAddress
			}
		}
	}

	events := queue.NewInMemoryQueue[network.Event](1024)

	var transport network.Transport
	var shutdown closer
	if cfg.ReplayPath != "" {
		recording, err := network.OpenRecording(cfg.ReplayPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to open recording: %v", err))
		}
		log.Info("Replaying recording %s with %d frames", recording.ID, len(recording.Frames))
		replay := network.NewReplayTransport(events, recording)
		transport, shutdown = replay, replay
	} else {
		var recorder *network.Recorder
		if cfg.RecordPath != "" {
			recorder, err = network.CreateRecorder(cfg.RecordPath)
			if err != nil {
				panic(fmt.Sprintf("Failed to create recorder: %v", err))
			}
			defer recorder.Close()
			log.Info("Recording inbound frames to %s as %s", cfg.RecordPath, recorder.ID())
		}
		ws := network.NewWSTransport(network.NewWSTransportOptions{
			Events:   events,
			Recorder: recorder,
		})
		transport, shutdown = ws, ws
	}
	defer func() {
		// nobody drains events any more, so release transports blocked on a full queue
		cancel()
		shutdown.Close()
		shutdown.Wait()
	}()

	scheduler := schedule.New(time.Now())
	sampler := input.NewSampler(scheduler)
	renderer := render.NewArenaRenderer(session.DefaultArenaWidth, session.DefaultArenaHeight)
	machine := session.NewMachine(session.NewMachineOptions{
		Transport: transport,
		Scheduler: scheduler,
		Sampler:   sampler,
		Renderer:  renderer,
	})

	g, err := game.NewGame(game.NewGameOptions{
		Ctx:           ctx,
		Debug:         cfg.Debug,
		Events:        events,
		Scheduler:     scheduler,
		Machine:       machine,
		Poller:        controls.NewPoller(sampler, input.DefaultTouchButtons()),
		Renderer:      renderer,
		PlayerName:    prefs.PlayerName,
		ServerAddress: prefs.ServerAddress,
		OnConnect: func(playerName, serverAddress string) {
			if repository == nil {
				return
			}
			p := preferences.Preferences{PlayerName: playerName, ServerAddress: serverAddress}
			if err := preferences.Save(ctx, repository, p); err != nil {
				log.Warn("Failed to save preferences: %v", err)
			}
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Arena Client")
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
