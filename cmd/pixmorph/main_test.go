package main

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/san-kum/pixmorph/internal/config"
	"github.com/san-kum/pixmorph/internal/export"
	"github.com/san-kum/pixmorph/internal/morph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func writeSolid(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	img := imaging.New(16, 16, c)
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.TargetPath = writeSolid(t, dir, "target.png", color.NRGBA{R: 255, A: 255})
	cfg.Seed = 7
	cfg.Morph.Resolution = 6
	cfg.Morph.CellSize = 2
	cfg.Morph.Step = 0.1
	cfg.Morph.WobbleAmplitude = 0
	return cfg, writeSolid(t, dir, "source.png", color.NRGBA{B: 255, A: 255})
}

func TestLoadBothStartsSession(t *testing.T) {
	cfg, src := testConfig(t)
	session, in, err := loadBoth(cfg, quietLog(), src)
	if err != nil {
		t.Fatal(err)
	}
	if session.Status() != morph.StatusRunning {
		t.Errorf("expected running, got %q", session.Status())
	}
	if in.Format != "png" || in.Hash == 0 {
		t.Errorf("unexpected source info: %s %d", in.Format, in.Hash)
	}
	if len(session.Points()) != 36 {
		t.Errorf("expected 36 points, got %d", len(session.Points()))
	}
}

func TestLoadBothMissingTarget(t *testing.T) {
	cfg, src := testConfig(t)
	cfg.TargetPath = filepath.Join(t.TempDir(), "nope.png")
	if _, _, err := loadBoth(cfg, quietLog(), src); err == nil {
		t.Fatal("expected an error for a missing target")
	}
}

func TestRenderAnimation(t *testing.T) {
	cfg, src := testConfig(t)
	session, _, err := loadBoth(cfg, quietLog(), src)
	if err != nil {
		t.Fatal(err)
	}
	rec := export.NewGIFRecorder(cfg.Morph.RefreshRate, 5)
	last := renderAnimation(session, rec, 5, 5)

	// 10 frames to finish plus 5 tail frames: captures at 0, 5, 10 and the last.
	if rec.Len() != 4 {
		t.Errorf("expected 4 captured frames, got %d", rec.Len())
	}
	if session.Status() != morph.StatusFinished {
		t.Errorf("expected finished, got %q", session.Status())
	}
	if got := last.Img.RGBAAt(3, 3); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected final frame in source colours, got %v", got)
	}
	if b := last.Img.Bounds(); b != image.Rect(0, 0, 12, 12) {
		t.Errorf("unexpected canvas bounds %v", b)
	}
}

func TestResolveConfigFlagsOverride(t *testing.T) {
	defer func() { preset, configFile = "", "" }()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&resolution, "resolution", morph.DefaultResolution, "")
	cmd.Flags().Float64Var(&step, "step", morph.DefaultStep, "")
	if err := cmd.Flags().Parse([]string{"--resolution", "32"}); err != nil {
		t.Fatal(err)
	}

	preset = "quick"
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Morph.Resolution != 32 {
		t.Errorf("expected flag resolution 32, got %d", cfg.Morph.Resolution)
	}
	if cfg.Morph.Step != config.Presets["quick"].Step {
		t.Errorf("expected preset step, got %g", cfg.Morph.Step)
	}

	preset = "nope"
	if _, err := resolveConfig(cmd, ""); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveConfigFallbackPreset(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cfg, err := resolveConfig(cmd, "terminal")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Morph != config.Presets["terminal"] {
		t.Errorf("expected terminal preset, got %+v", cfg.Morph)
	}
}
