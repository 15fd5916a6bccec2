package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pixmorph/internal/analysis"
	"github.com/san-kum/pixmorph/internal/config"
	"github.com/san-kum/pixmorph/internal/export"
	"github.com/san-kum/pixmorph/internal/gui"
	"github.com/san-kum/pixmorph/internal/imageio"
	"github.com/san-kum/pixmorph/internal/morph"
	"github.com/san-kum/pixmorph/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	targetPath string
	seed       int64
	verbose    bool
	logFile    string
	theme      string
	// Morph overrides, applied only when set on the command line.
	resolution int
	cellSize   int
	step       float64
	amplitude  float64
	speed      float64
	refresh    float64
	// Output
	guiGIF    string
	guiPNG    string
	tuiGIF    string
	renderOut string
	renderPNG string
	every     int
	tail      int
	bins      int
	plotHist  bool
	showEase  bool
)

// main registers the commands and runs the desktop window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pixmorph [source]",
		Short:        "morph an image into a portrait by brightness rank",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&targetPath, "target", config.DefaultTargetPath, "target portrait image")
	pf.Int64Var(&seed, "seed", 0, "random seed for wobble phases (0 = time based)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&resolution, "resolution", morph.DefaultResolution, "grid resolution per side")
	pf.IntVar(&cellSize, "cell", morph.DefaultCellSize, "rendered cell size in pixels")
	pf.Float64Var(&step, "step", morph.DefaultStep, "progress per frame")
	pf.Float64Var(&amplitude, "amplitude", morph.DefaultWobbleAmplitude, "wobble amplitude in grid cells")
	pf.Float64Var(&speed, "speed", morph.DefaultWobbleSpeed, "wobble speed factor")
	pf.Float64Var(&refresh, "fps", morph.DefaultRefreshRate, "frames per second")

	guiCmd := &cobra.Command{
		Use:   "gui [source]",
		Short: "open the desktop window (drop an image to load the source)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&guiGIF, "gif", "pixmorph.gif", "recording output")
	guiCmd.Flags().StringVar(&guiPNG, "png", "pixmorph.png", "snapshot output")

	tuiCmd := &cobra.Command{
		Use:   "tui [source]",
		Short: "run the morph in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	tuiCmd.Flags().StringVar(&tuiGIF, "gif", viz.DefaultGIFPath, "recording output")

	renderCmd := &cobra.Command{
		Use:   "render [source]",
		Short: "render the morph headless to an animated gif",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "gif output (default pixmorph-<hash>.gif)")
	renderCmd.Flags().StringVar(&renderPNG, "png", "", "also write the final frame as png")
	renderCmd.Flags().IntVar(&every, "every", 0, "capture every n-th frame")
	renderCmd.Flags().IntVar(&tail, "tail", -1, "extra wobble-only frames after completion")

	inspectCmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "print brightness histograms and travel statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().IntVar(&bins, "bins", 32, "histogram bins")
	inspectCmd.Flags().BoolVar(&plotHist, "plot", true, "draw histograms")
	inspectCmd.Flags().BoolVar(&showEase, "ease", false, "also plot the easing curve")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, renderCmd, inspectCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds the effective configuration: file or defaults, then
// the preset (or fallback preset when neither a file nor a preset is
// given), then any flag that was set explicitly.
func resolveConfig(cmd *cobra.Command, fallback string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	name := preset
	if name == "" && configFile == "" {
		name = fallback
	}
	if name != "" {
		p, ok := config.Presets[name]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		cfg.Morph = p
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.TargetPath = targetPath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("resolution") {
		cfg.Morph.Resolution = resolution
	}
	if flags.Changed("cell") {
		cfg.Morph.CellSize = cellSize
	}
	if flags.Changed("step") {
		cfg.Morph.Step = step
	}
	if flags.Changed("amplitude") {
		cfg.Morph.WobbleAmplitude = amplitude
	}
	if flags.Changed("speed") {
		cfg.Morph.WobbleSpeed = speed
	}
	if flags.Changed("fps") {
		cfg.Morph.RefreshRate = refresh
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("every") {
		cfg.Export.Every = every
	}
	if flags.Changed("tail") {
		cfg.Export.TailFrames = tail
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger configures a logger writing to out, or to --log-file when set.
// The returned closer releases the log file.
func newLogger(cfg *config.Config, out io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		log.SetOutput(f)
		closer = func() { f.Close() }
	}
	return log, closer, nil
}

func newSession(cfg *config.Config, log logrus.FieldLogger) (*morph.Session, error) {
	opts := []morph.Option{morph.WithLogger(log)}
	if cfg.Seed != 0 {
		opts = append(opts, morph.WithSeed(cfg.Seed))
	}
	return morph.NewSession(cfg.Params(), opts...)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	// Load failures are shown as the session status.
	_ = session.LoadTargetFile(cfg.TargetPath)
	if len(args) == 1 {
		_ = session.LoadSourceFile(args[0])
	}

	gui.Run(session, gui.Options{
		GIFPath:      guiGIF,
		SnapshotPath: guiPNG,
		RecordEvery:  cfg.Export.Every,
		Log:          log,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "terminal")
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	_ = session.LoadTargetFile(cfg.TargetPath)

	viz.SetTheme(cfg.Theme)
	opts := viz.Options{GIFPath: tuiGIF, RecordEvery: cfg.Export.Every}
	if len(args) == 1 {
		opts.SourcePath = args[0]
	}
	p := tea.NewProgram(viz.NewModel(session, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// loadBoth loads the target and the source or returns the first failure.
func loadBoth(cfg *config.Config, log logrus.FieldLogger, sourcePath string) (*morph.Session, *imageio.Image, error) {
	session, err := newSession(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := session.LoadTargetFile(cfg.TargetPath); err != nil {
		return nil, nil, err
	}
	src, err := imageio.Load(sourcePath)
	if err != nil {
		return nil, nil, &morph.LoadError{Role: "source", Path: sourcePath, Wrapped: err}
	}
	if err := session.LoadSource(src.Img); err != nil {
		return nil, nil, err
	}
	return session, src, nil
}

// renderAnimation runs a started session to completion plus tail extra
// frames, capturing every n-th frame. The returned surface holds the last
// frame.
func renderAnimation(session *morph.Session, rec *export.GIFRecorder, every, tail int) *morph.ImageSurface {
	surface := morph.NewImageSurface(session.Params().CanvasSize())
	total := session.TotalFrames() + tail
	for i := 0; i < total; i++ {
		if i%every == 0 {
			session.Render(surface)
			rec.Capture(surface.Img)
		}
		session.Frame()
	}
	session.Render(surface)
	rec.Capture(surface.Img)
	return surface
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session, src, err := loadBoth(cfg, log, args[0])
	if err != nil {
		return err
	}
	out := renderOut
	if out == "" {
		out = fmt.Sprintf("pixmorph-%s.gif", imageio.HashString(src.Hash, 8))
	}

	rec := export.NewGIFRecorder(cfg.Morph.RefreshRate, cfg.Export.Every)
	last := renderAnimation(session, rec, cfg.Export.Every, cfg.Export.TailFrames)
	if err := rec.WriteFile(out); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   out,
		"frames": rec.Len(),
		"delay":  rec.Delay(),
	}).Info("gif written")

	if renderPNG != "" {
		if err := export.WritePNG(renderPNG, last.Img); err != nil {
			return err
		}
		log.WithField("path", renderPNG).Info("png written")
	}
	fmt.Printf("wrote %s (%d frames, status %s)\n", out, rec.Len(), session.Status())
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session, src, err := loadBoth(cfg, log, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("source  %s  %s  %d bytes  hash %s\n", args[0], src.Format, src.Size, imageio.HashString(src.Hash, 16))
	fmt.Printf("target  %s\n", cfg.TargetPath)
	fmt.Printf("grid    %d×%d (%d cells), %d frames\n\n",
		cfg.Morph.Resolution, cfg.Morph.Resolution, len(session.Points()), session.TotalFrames())

	if plotHist {
		fmt.Println(analysis.PlotHistogram(analysis.Histogram(session.SourceSamples(), bins), "source brightness"))
		fmt.Println()
		fmt.Println(analysis.PlotHistogram(analysis.Histogram(session.TargetSamples(), bins), "target brightness"))
		fmt.Println()
	}
	if showEase {
		fmt.Println(analysis.PlotCurve(analysis.EaseCurve(64), 64, 10, "eased progress"))
		fmt.Println()
	}

	st := analysis.Travel(session.Points())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tMEAN TRAVEL\tMAX TRAVEL\tSTATIONARY")
	fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%d\n", st.Count, st.Mean, st.Max, st.Stationary)
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRESOLUTION\tCELL\tSTEP\tAMPLITUDE\tSPEED\tFPS")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%g\t%g\n",
			name, p.Resolution, p.CellSize, p.Step, p.WobbleAmplitude, p.WobbleSpeed, p.RefreshRate)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}
	path := "pixmorph.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
