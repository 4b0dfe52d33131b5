package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cyberfolio/internal/config"
	"github.com/san-kum/cyberfolio/internal/export"
	"github.com/san-kum/cyberfolio/internal/profile"
	"github.com/san-kum/cyberfolio/internal/scramble"
	"github.com/san-kum/cyberfolio/internal/storage"
	"github.com/san-kum/cyberfolio/internal/tui"
	"github.com/san-kum/cyberfolio/internal/viz"
	"github.com/san-kum/cyberfolio/internal/web"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	themeName  string

	cfg      *config.Config
	folio    *profile.Profile
	preset   string
	addr     string
	file     string
	asJSON   bool
	randSeed uint64
	// scramble option overrides
	speedMs   int
	tick      int
	step      int
	scrambleN int
	seed      int
	chance    float64
	overdrive bool
	overflow  bool
)

// main registers the commands and runs the interactive portfolio when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "cyberfolio",
		Short:             "cyberpunk terminal portfolio",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cfg, folio)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")

	scrambleCmd := &cobra.Command{
		Use:   "scramble [text]",
		Short: "animate text on stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScramble,
	}
	optionFlags(scrambleCmd)

	traceCmd := &cobra.Command{
		Use:   "trace [text]",
		Short: "record every frame of a scramble run",
		Args:  cobra.MinimumNArgs(1),
		RunE:  recordTrace,
	}
	optionFlags(traceCmd)
	traceCmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON instead of saving it")

	tracesCmd := &cobra.Command{
		Use:   "traces",
		Short: "list recorded traces",
		RunE:  listTraces,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [trace_id]",
		Short: "plot the settled frontier of a trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTrace,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [trace_id]",
		Short: "play a recorded trace back at its recorded speed",
		Args:  cobra.ExactArgs(1),
		RunE:  replayTrace,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_id] [path]",
		Short: "export a trace to a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [trace_id] [path]",
		Short: "render a trace as an SVG filmstrip",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the portfolio over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "print the profile as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := folio.Marshal()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	profileCmd.Flags().StringVar(&file, "file", "", "validate and print this profile instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scramble presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				marker := " "
				if name == cfg.Theme {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
		},
	}

	rootCmd.AddCommand(scrambleCmd, traceCmd, tracesCmd, plotCmd, replayCmd, exportJSONCmd, exportSVGCmd, serveCmd, profileCmd, presetsCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func optionFlags(cmd *cobra.Command) {
	def := scramble.DefaultOptions()
	cmd.Flags().StringVar(&preset, "preset", "default", "scramble preset")
	cmd.Flags().IntVar(&speedMs, "speed", int(def.Speed/time.Millisecond), "milliseconds between ticks")
	cmd.Flags().IntVar(&tick, "tick", def.Tick, "multiplier on the iteration advance")
	cmd.Flags().IntVar(&step, "step", def.Step, "base iterations advanced per tick")
	cmd.Flags().IntVar(&scrambleN, "scramble", def.Scramble, "iterations per character")
	cmd.Flags().IntVar(&seed, "seed", def.Seed, "extra iterations before settling")
	cmd.Flags().Float64Var(&chance, "chance", def.Chance, "probability the frontier character is scrambled")
	cmd.Flags().BoolVar(&overdrive, "overdrive", def.Overdrive, "scramble the tail of the previous frame")
	cmd.Flags().BoolVar(&overflow, "overflow", def.Overflow, "scramble every character past the frontier")
	cmd.Flags().Uint64Var(&randSeed, "rand-seed", 0, "random source seed (default from clock)")
}

// setup loads .env, the config file, environment overrides and the profile.
// Explicit flags win over everything else.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = addr
	}
	if f := flags.Lookup("file"); f != nil && f.Changed {
		cfg.ProfilePath = file
	}

	var err error
	if cfg.ProfilePath != "" {
		folio, err = profile.Load(cfg.ProfilePath)
	} else {
		folio, err = profile.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	return nil
}

// options resolves --preset and applies any option flag the user set.
func options(cmd *cobra.Command) (scramble.Options, error) {
	opts, ok := cfg.Preset(preset)
	if !ok {
		return scramble.Options{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		opts.Speed = time.Duration(speedMs) * time.Millisecond
	}
	if flags.Changed("tick") {
		opts.Tick = tick
	}
	if flags.Changed("step") {
		opts.Step = step
	}
	if flags.Changed("scramble") {
		opts.Scramble = scrambleN
	}
	if flags.Changed("seed") {
		opts.Seed = seed
	}
	if flags.Changed("chance") {
		opts.Chance = chance
	}
	if flags.Changed("overdrive") {
		opts.Overdrive = overdrive
	}
	if flags.Changed("overflow") {
		opts.Overflow = overflow
	}
	return opts, opts.Validate()
}

func source(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("rand-seed") {
		return randSeed
	}
	return uint64(time.Now().UnixNano())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runScramble(cmd *cobra.Command, args []string) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	r := tui.NewLiveRenderer(os.Stdout, "")
	sess, err := scramble.NewSession(strings.Join(args, " "), opts,
		scramble.WithRand(scramble.NewRand(source(cmd))),
		scramble.WithFrameFunc(r.OnFrame))
	if err != nil {
		return err
	}

	r.Start()
	defer r.Stop()
	sess.Start(ctx)
	<-sess.Done()
	sess.Stop()
	return r.Err()
}

func recordTrace(cmd *cobra.Command, args []string) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")
	rs := source(cmd)

	anim, err := scramble.New(text, opts, scramble.NewRand(rs))
	if err != nil {
		return err
	}
	frames := scramble.Record(anim)

	meta := storage.TraceMetadata{
		Text:       text,
		Preset:     preset,
		RandSeed:   rs,
		Options:    config.FromOptions(opts),
		DurationMs: opts.Duration(len([]rune(text))).Milliseconds(),
	}
	if asJSON {
		return storage.WriteJSON(os.Stdout, meta, frames)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(meta, frames)
	if err != nil {
		return err
	}

	fmt.Printf("trace: %s\n", id)
	fmt.Printf("frames: %d\n", len(frames))
	fmt.Printf("duration: %dms\n", meta.DurationMs)
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	traces, err := st.List()
	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEXT\tTIME\tFRAMES\tDURATION\tPRESET")

	for _, t := range traces {
		fmt.Fprintf(w, "%s\t%q\t%s\t%d\t%dms\t%s\n",
			t.ID,
			t.Text,
			t.Timestamp.Format("2006-01-02 15:04:05"),
			t.Frames,
			t.DurationMs,
			t.Preset,
		)
	}

	return w.Flush()
}

func plotTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough frames to plot")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("text: %q\n", meta.Text)
	fmt.Printf("frames: %d\n\n", len(frames))

	frontier := make([]float64, len(frames))
	for i, f := range frames {
		frontier[i] = float64(f.Frontier)
	}

	graph := asciigraph.Plot(frontier,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.Caption("frontier vs frame"),
	)
	fmt.Println(graph)
	return nil
}

func replayTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	opts, err := meta.ScrambleOptions()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	ticker := time.NewTicker(opts.Speed)
	defer ticker.Stop()

	r := tui.NewLiveRenderer(os.Stdout, "")
	r.Start()
	defer r.Stop()
	for _, f := range frames {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.OnFrame(f)
		}
	}
	return r.Err()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(args[1], *meta, frames); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	svg := export.FramesToSVG(frames, viz.GetTheme(cfg.Theme), 14)
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(frames), args[1])
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	logger := log.New(os.Stderr, "cyberfolio: ", log.LstdFlags)
	return web.NewServer(cfg, folio, logger).Run(ctx)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEED\tTICK\tSTEP\tSCRAMBLE\tSEED\tCHANCE\tFLAGS")
	for _, name := range config.ListPresets() {
		opts, _ := cfg.Preset(name)
		var flags []string
		if opts.Overdrive {
			flags = append(flags, "overdrive")
		}
		if opts.Overflow {
			flags = append(flags, "overflow")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%s\n",
			name, opts.Speed, opts.Tick, opts.Step, opts.Scramble, opts.Seed, opts.Chance, strings.Join(flags, ","))
	}
	return w.Flush()
}
