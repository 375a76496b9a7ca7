// anchor-sandbox replays camera frames through the marker scanner and shows
// anchored nodes on a top-down terminal map
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/marker-anchor/anchor"
	"github.com/lixenwraith/marker-anchor/audio"
	"github.com/lixenwraith/marker-anchor/config"
	"github.com/lixenwraith/marker-anchor/diag"
	"github.com/lixenwraith/marker-anchor/engine"
	"github.com/lixenwraith/marker-anchor/frame"
	"github.com/lixenwraith/marker-anchor/inspect"
	"github.com/lixenwraith/marker-anchor/marker"
	"github.com/lixenwraith/marker-anchor/scene"
	"github.com/lixenwraith/marker-anchor/status"
)

var (
	configFlag   = flag.String("config", "", "Path to YAML config, defaults apply when empty")
	framesFlag   = flag.String("frames", "", "Comma-separated image paths, overrides config")
	listenFlag   = flag.String("listen", "", "Inspect HTTP address, overrides config")
	headlessFlag = flag.Bool("headless", false, "Run without the terminal view, logs go to stderr")
	ticksFlag    = flag.Int64("ticks", 0, "Stop after this many ticks, 0 runs until quit")
	muteFlag     = flag.Bool("mute", false, "Disable audio cues")
)

// synthSize is the edge of generated QR frames when no images are configured
const synthSize = 240

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "anchor-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultConfig()
	if *configFlag != "" {
		loaded, err := config.LoadConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		demoScene(cfg)
	}
	if *framesFlag != "" {
		cfg.Frames.Paths = strings.Split(*framesFlag, ",")
	}
	if *listenFlag != "" {
		cfg.Inspect.Listen = *listenFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	logger, closer, err := setupLogging(cfg.Log, *headlessFlag)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := status.NewRegistry()
	graph := scene.NewGraph()
	sc := cfg.BuildScene(graph)

	source, err := buildSource(cfg)
	if err != nil {
		return err
	}
	width, height := source.Size()

	// Terminal
	var screen tcell.Screen
	var sink *diag.ScreenSink
	var diagSink diag.Sink
	if !*headlessFlag {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer func() {
			if screen != nil {
				screen.Fini()
			}
		}()
		sink = diag.NewScreenSink(screen, -1)
		diagSink = sink
	}
	emitter := diag.New(logger, diagSink, reg)

	scanner, err := anchor.NewScanner(cfg.ScannerConfig(sc.DebugVisual), sc.Bindings, anchor.Deps{
		Source:     source,
		Decoder:    marker.NewQRDecoder(cfg.Decoder.TryHarder),
		Projection: cfg.Projection(width, height),
		Surface:    cfg.Environment(),
		Scene:      graph,
		Diag:       emitter,
		Status:     reg,
	})
	if err != nil {
		return err
	}

	journal := inspect.NewJournal()
	scanner.OnPlaced(journal.Record)

	loop := engine.NewLoop(cfg.TickInterval, nil, reg)
	loop.SetCrashHandler(func(r any) {
		if screen != nil {
			screen.Fini()
			screen = nil
		}
		fmt.Fprintf(os.Stderr, "\r\nanchor-sandbox crashed: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
	})

	loop.AddSystem(source)
	loop.AddSystem(scanner)
	loop.AddSystem(scene.NewReaper(graph))

	sound, speaker := setupAudio(cfg.Audio, logger)
	if speaker != nil {
		defer speaker.Close()
	}
	if sound != nil {
		loop.AddSystem(audio.NewCueSystem(sound, reg))
	}

	if screen != nil {
		loop.AddSystem(&View{
			screen:      screen,
			graph:       graph,
			scanner:     scanner,
			reg:         reg,
			sink:        sink,
			sound:       sound,
			halfX:       viewExtent(cfg.Room.HalfX),
			halfZ:       viewExtent(cfg.Room.HalfZ),
			camX:        cfg.Camera.Position.X,
			camZ:        cfg.Camera.Position.Z,
			debugVisual: sc.DebugVisual,
		})
		go pollInput(screen, sound, cancel)
	}

	if *ticksFlag > 0 {
		limit := *ticksFlag
		loop.AddSystem(engine.SystemFunc{
			SystemName:     "tick-limit",
			SystemPriority: engine.PriorityMetrics,
			Fn: func(t engine.Tick) {
				if t.Frame+1 >= limit {
					cancel()
				}
			},
		})
	}

	if cfg.Inspect.Listen != "" {
		srv := inspect.NewServer(reg, journal, logger)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Inspect.Listen); err != nil {
				logger.Error("inspect server failed", "error", err)
			}
		}()
	}

	scanner.Start()
	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if screen != nil {
		screen.Fini()
		screen = nil
	}
	printSummary(os.Stdout, journal, reg)
	return err
}

// demoScene populates an unconfigured run with three anchorable nodes and a debug cube
func demoScene(cfg *config.Config) {
	cfg.Nodes = []config.Node{
		{Name: "chair"},
		{Name: "lamp"},
		{Name: "table", Position: config.Vec3{X: 2, Z: 3}, Active: true},
		{Name: "cube"},
	}
	cfg.Targets = []config.Target{
		{Payload: "chair-01", Node: "chair"},
		{Payload: "lamp-01", Node: "lamp"},
	}
	cfg.DebugVisual = "cube"
}

// buildSource loads configured images, or synthesizes one QR frame per target
// plus an unmapped payload and a blank frame
func buildSource(cfg *config.Config) (*frame.SequenceSource, error) {
	if len(cfg.Frames.Paths) > 0 {
		return frame.LoadSequence(cfg.Frames.Paths, cfg.Frames.Warmup, cfg.Frames.Hold)
	}

	payloads := make([]string, 0, len(cfg.Targets)+1)
	for _, t := range cfg.Targets {
		payloads = append(payloads, t.Payload)
	}
	payloads = append(payloads, "unmapped-00")

	frames := make([]frame.Frame, 0, len(payloads)+1)
	for _, p := range payloads {
		f, err := marker.EncodeQR(p, synthSize)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", p, err)
		}
		frames = append(frames, f)
	}
	frames = append(frames, blankFrame(synthSize))
	return frame.NewSequenceSource(frames, cfg.Frames.Warmup, cfg.Frames.Hold)
}

func setupAudio(cfg config.Audio, logger *slog.Logger) (*audio.SoundManager, *audio.SpeakerOutput) {
	if !cfg.Enabled {
		return nil, nil
	}
	out, err := audio.NewSpeakerOutput()
	if err != nil {
		logger.Warn("audio initialization failed, continuing without audio", "error", err)
		return nil, nil
	}
	return audio.NewSoundManager(out, cfg.Volume), out
}

// pollInput runs until the screen is finalized
func pollInput(screen tcell.Screen, sound *audio.SoundManager, cancel context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				cancel()
				return
			case ev.Rune() == 'm' && sound != nil:
				sound.ToggleMute()
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func printSummary(w io.Writer, journal *inspect.Journal, reg *status.Registry) {
	fmt.Fprintf(w, "ticks=%d scans=%d detections=%d placed=%d unmapped=%d dedup=%d\n",
		reg.Ints.Get(status.KeyTicks).Load(),
		reg.Ints.Get(status.KeyScans).Load(),
		reg.Ints.Get(status.KeyDetections).Load(),
		reg.Ints.Get(status.KeyPlacements).Load(),
		reg.Ints.Get(status.KeyUnmapped).Load(),
		reg.Ints.Get(status.KeyDedupSkips).Load())
	for _, p := range journal.Entries() {
		fmt.Fprintf(w, "  %s -> %s at %s (frame %d, hit=%t)\n", p.Payload, p.NodeName, p.Pose.Position, p.Frame, p.Hit)
	}
}

func viewExtent(half float64) float64 {
	if half <= 0 {
		return 5
	}
	return half
}
