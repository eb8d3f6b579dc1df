package game

import (
	"iter"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lumen/audio"
	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/systems"
	"github.com/pthm-cable/lumen/telemetry"
)

const testDT = 1.0 / 60

func newTestGame(t *testing.T, mutate func(*Options)) *Game {
	t.Helper()
	opts := Options{Config: config.Default(), Seed: 42}
	if mutate != nil {
		mutate(&opts)
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func particles(f Frame) []systems.ParticleState {
	var out []systems.ParticleState
	for p := range f.Particles {
		out = append(out, p)
	}
	return out
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

type fixedEnergy struct {
	level audio.Energy
	calls int
}

func (f *fixedEnergy) Level(dt float64) audio.Energy {
	f.calls++
	return f.level
}

func TestNewGameUsesDefaults(t *testing.T) {
	g := newTestGame(t, nil)
	cfg := config.Default()

	if got := g.Counts().Particles; got != cfg.Field.Count {
		t.Errorf("particles = %d, want %d", got, cfg.Field.Count)
	}
	if g.Settings() != DefaultSettings(cfg) {
		t.Errorf("settings = %+v, want defaults", g.Settings())
	}
	if g.Bounds() != (systems.Bounds{Width: 1280, Height: 800}) {
		t.Errorf("bounds = %+v", g.Bounds())
	}
}

func TestConfigureClampsAndKeepsLastGood(t *testing.T) {
	g := newTestGame(t, nil)

	s := g.Settings()
	s.Count = 100
	s.Flow = 1.5
	g.Configure(s)
	if g.Counts().Particles != 100 {
		t.Fatalf("particles = %d, want 100", g.Counts().Particles)
	}

	s.Count = -10
	s.Flow = math.NaN()
	s.Warp = math.Inf(1)
	g.Configure(s)
	got := g.Settings()
	if got.Count != 0 || g.Counts().Particles != 0 {
		t.Errorf("negative count gave %d particles", g.Counts().Particles)
	}
	if got.Flow != 1.5 {
		t.Errorf("flow = %v, want last good 1.5", got.Flow)
	}
	if got.Warp != config.Default().Field.Warp {
		t.Errorf("warp = %v, want last good", got.Warp)
	}
}

func TestStepZeroIsNoop(t *testing.T) {
	g := newTestGame(t, nil)
	g.OnTrigger(300, 300)
	for i := 0; i < 5; i++ {
		g.Step(testDT)
	}

	before := particles(g.Frame())
	counts := g.Counts()
	tick := g.Tick()
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		g.Step(dt)
	}

	if g.Tick() != tick || g.Counts() != counts {
		t.Fatalf("zero step changed tick or counts")
	}
	after := particles(g.Frame())
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d changed on zero step", i)
		}
	}
}

func TestTriggerSpawnsRippleAndBurst(t *testing.T) {
	g := newTestGame(t, nil)

	g.OnTrigger(400, 300)
	c := g.Counts()
	if c.Ripples != 1 {
		t.Errorf("ripples = %d, want 1", c.Ripples)
	}
	// trigger intensity 1.4: [12*1.4, 22*1.4)
	if c.Sparks < 16 || c.Sparks >= 31 {
		t.Errorf("sparks = %d, want burst in [16, 31)", c.Sparks)
	}

	s := g.Settings()
	s.Sparks = false
	g.Configure(s)
	g.OnTrigger(400, 300)
	if got := g.Counts(); got.Ripples != 2 || got.Sparks != c.Sparks {
		t.Errorf("with sparks off: %+v, want 2 ripples and no new sparks", got)
	}

	g.OnTrigger(math.NaN(), 10)
	if g.Counts().Ripples != 2 {
		t.Errorf("non-finite trigger spawned a ripple")
	}
}

func TestIgnite(t *testing.T) {
	g := newTestGame(t, nil)
	g.OnPointerMove(500, 400)
	g.OnIgnite()

	c := g.Counts()
	if c.Ripples != 1 {
		t.Errorf("ripples = %d, want 1", c.Ripples)
	}
	if c.Sparks < 36 {
		t.Errorf("sparks = %d, want at least 36 for intensity 3", c.Sparks)
	}

	moving := 0
	for p := range g.Frame().Particles {
		if r2.Norm(p.Vel) > 0 {
			moving++
		}
	}
	if moving == 0 {
		t.Error("ignite did not kick any particle")
	}
}

func TestPaletteChangeRecolorsOnly(t *testing.T) {
	g := newTestGame(t, nil)
	before := particles(g.Frame())

	// Last default palette has three colors
	last := g.Palettes().Len() - 1
	g.OnPaletteChange(last)
	f := g.Frame()
	if f.PaletteIndex != last {
		t.Fatalf("palette index = %d, want %d", f.PaletteIndex, last)
	}

	after := particles(f)
	n := f.Palette.Len()
	for i := range after {
		if after[i].Pos != before[i].Pos {
			t.Fatalf("particle %d moved on palette change", i)
		}
		if after[i].ColorIndex < 0 || after[i].ColorIndex >= n {
			t.Fatalf("particle %d color %d outside palette of %d", i, after[i].ColorIndex, n)
		}
	}

	g.OnNextPalette()
	if g.Frame().PaletteIndex != 0 {
		t.Errorf("next palette did not wrap to 0")
	}
	g.OnPaletteChange(-1)
	if g.Frame().PaletteIndex != last {
		t.Errorf("negative index did not wrap")
	}
}

func TestPointerPullsCenter(t *testing.T) {
	g := newTestGame(t, nil)
	home := g.Bounds().Center()
	target := r2.Vec{X: 1000, Y: 200}

	g.OnPointerMove(target.X, target.Y)
	if !g.Frame().Attractor.Valid() {
		t.Fatal("attractor inactive after pointer move")
	}
	for i := 0; i < 120; i++ {
		g.Step(testDT)
	}
	if d := r2.Norm(r2.Sub(g.Frame().Center, target)); d > 5 {
		t.Errorf("center %v still %v px from pointer", g.Frame().Center, d)
	}

	g.OnPointerLeave()
	if g.Frame().Attractor.Valid() {
		t.Fatal("attractor active after leave")
	}
	for i := 0; i < 600; i++ {
		g.Step(testDT)
	}
	if d := r2.Norm(r2.Sub(g.Frame().Center, home)); d > 5 {
		t.Errorf("center %v did not return home, %v px away", g.Frame().Center, d)
	}

	g.OnPointerMove(math.Inf(1), 0)
	if g.Frame().Attractor.Valid() {
		t.Error("non-finite pointer activated the attractor")
	}
}

func TestPausedUpdateDoesNothing(t *testing.T) {
	g := newTestGame(t, nil)
	g.TogglePause()
	g.Update(testDT)
	if g.Tick() != 0 {
		t.Errorf("paused update advanced to tick %d", g.Tick())
	}
	g.SetPaused(false)
	g.Update(testDT)
	if g.Tick() != 1 {
		t.Errorf("tick = %d, want 1", g.Tick())
	}
}

func TestResizeKeepsParticlesInBounds(t *testing.T) {
	g := newTestGame(t, nil)
	g.OnResize(300, 200)
	if g.Bounds() != (systems.Bounds{Width: 300, Height: 200}) {
		t.Fatalf("bounds = %+v", g.Bounds())
	}

	g.Step(testDT)
	margin := config.Default().Field.Margin
	for i, p := range particles(g.Frame()) {
		if !g.Bounds().Within(p.Pos, margin) {
			t.Fatalf("particle %d at %+v outside resized bounds", i, p.Pos)
		}
	}

	g.OnResize(-5, math.NaN())
	if g.Bounds() != (systems.Bounds{Width: 300, Height: 200}) {
		t.Errorf("invalid resize changed bounds to %+v", g.Bounds())
	}
}

func TestResizeKeepsActivePointer(t *testing.T) {
	g := newTestGame(t, nil)
	g.OnPointerMove(200, 150)
	g.OnResize(900, 700)

	f := g.Frame()
	if !f.Attractor.Active || f.Attractor.Pos != (r2.Vec{X: 200, Y: 150}) {
		t.Errorf("attractor after resize = %+v, want active at (200, 150)", f.Attractor)
	}

	g.OnPointerLeave()
	g.OnResize(400, 300)
	f = g.Frame()
	if f.Attractor.Active {
		t.Error("idle pointer became active on resize")
	}
	if f.Center != (r2.Vec{X: 200, Y: 150}) {
		t.Errorf("idle center = %+v, want the new field center", f.Center)
	}
}

func TestRipplesExpireThroughSteps(t *testing.T) {
	g := newTestGame(t, nil)
	g.OnTrigger(100, 100)
	for i := 0; i < 100; i++ {
		g.Step(testDT)
	}
	if n := count(g.Frame().Ripples); n != 0 {
		t.Errorf("%d ripples alive after 100 ticks", n)
	}
}

func TestAudioTriggersRipples(t *testing.T) {
	feed := &fixedEnergy{level: audio.Energy{Average: 120, Beat: 0.8}}
	g := newTestGame(t, func(o *Options) { o.Audio = feed })

	g.Step(testDT)
	if feed.calls != 1 {
		t.Fatalf("feed read %d times, want 1", feed.calls)
	}
	if g.Counts().Ripples != 1 {
		t.Fatalf("ripples = %d, want 1 after loud frame", g.Counts().Ripples)
	}
	if g.Energy() != feed.level {
		t.Errorf("Energy() = %+v", g.Energy())
	}

	// ripple_interval 0.25 s holds off the next ripple for 15 frames
	for i := 0; i < 10; i++ {
		g.Step(testDT)
	}
	if g.Counts().Ripples != 1 {
		t.Errorf("ripples = %d during cooldown, want 1", g.Counts().Ripples)
	}
	for i := 0; i < 10; i++ {
		g.Step(testDT)
	}
	if g.Counts().Ripples != 2 {
		t.Errorf("ripples = %d after cooldown, want 2", g.Counts().Ripples)
	}

	feed.level = audio.Energy{Average: 10}
	before := g.Counts().Ripples
	for i := 0; i < 30; i++ {
		g.Step(testDT)
	}
	if g.Counts().Ripples > before {
		t.Error("quiet feed spawned ripples")
	}
}

func TestAutoPalette(t *testing.T) {
	feed := &fixedEnergy{level: audio.Energy{Average: 50}}
	g := newTestGame(t, func(o *Options) { o.Audio = feed })
	s := g.Settings()
	s.AutoPalette = true
	g.Configure(s)

	// auto_palette_interval is 12 s
	for i := 0; i < 11*60; i++ {
		g.Step(testDT)
	}
	if g.Frame().PaletteIndex != 0 {
		t.Fatalf("palette switched early at tick %d", g.Tick())
	}
	for i := 0; i < 2*60; i++ {
		g.Step(testDT)
	}
	if g.Frame().PaletteIndex != 1 {
		t.Errorf("palette index = %d after 13 s, want 1", g.Frame().PaletteIndex)
	}
}

func TestStatsCallbackAndOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var got []telemetry.WindowStats
	g := newTestGame(t, func(o *Options) {
		o.StatsWindowSec = 0.5
		o.OutputDir = dir
		o.StatsCallback = func(s telemetry.WindowStats) { got = append(got, s) }
	})

	g.OnTrigger(640, 400)
	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}

	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2", len(got))
	}
	if got[0].RipplesSpawned != 1 || got[0].SparkBursts != 1 {
		t.Errorf("first window = %+v", got[0])
	}
	if got[1].Particles != config.Default().Field.Count {
		t.Errorf("particles = %d", got[1].Particles)
	}
	if got[1].SpeedMean <= 0 {
		t.Errorf("speed mean = %v, want moving particles", got[1].SpeedMean)
	}

	g.Unload()
	for _, name := range []string{"telemetry.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRippleRadiusFollowsBoundsOnlyWhenUnset(t *testing.T) {
	tests := []struct {
		name      string
		maxRadius float64
		wantFit   bool
	}{
		{"unset", 0, true},
		{"fixed", 500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Ripple.MaxRadius = tt.maxRadius
			if got := rippleParams(cfg).FitBounds; got != tt.wantFit {
				t.Errorf("FitBounds = %v, want %v", got, tt.wantFit)
			}
		})
	}
}
