package led

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

// fakeStrip records staged and committed frames for assertions
type fakeStrip struct {
	mu         sync.Mutex
	staged     []uint32
	shown      []uint32
	renders    int
	failNext   int
	initErr    error
	finalized  bool
	mixedFrame bool
}

func newFakeStrip(count int) *fakeStrip {
	return &fakeStrip{
		staged: make([]uint32, count),
		shown:  make([]uint32, count),
	}
}

func (f *fakeStrip) Init() error { return f.initErr }

func (f *fakeStrip) SetLED(i int, color uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged[i] = color
}

func (f *fakeStrip) Render() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders++
	if f.failNext > 0 {
		f.failNext--
		return errors.New("dma busy")
	}
	for _, c := range f.staged {
		if c != f.staged[0] {
			f.mixedFrame = true
		}
	}
	copy(f.shown, f.staged)
	return nil
}

func (f *fakeStrip) Fini() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalized = true
}

func (f *fakeStrip) Count() int { return len(f.staged) }

func (f *fakeStrip) frame() []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]uint32, len(f.shown))
	copy(out, f.shown)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func newTestDriver(strip *fakeStrip) *Driver {
	d := NewDriver(func(_ StripConfig) (Strip, error) { return strip, nil }, testLogger())
	d.renderDelay = time.Millisecond
	return d
}

func assertFrame(t *testing.T, frame []uint32, want Color) {
	t.Helper()
	for i, c := range frame {
		if c != want.Uint32() {
			t.Fatalf("pixel %d = %#06x, want %s (%#06x)", i, c, want, want.Uint32())
		}
	}
}

func TestDriver_SetColorBeforeInitialize(t *testing.T) {
	d := newTestDriver(newFakeStrip(8))

	err := d.SetColor(Red)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("SetColor() error = %v, want *WriteError", err)
	}
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SetColor() error = %v, want ErrNotInitialized", err)
	}
	if d.Initialized() {
		t.Error("Initialized() = true before Initialize")
	}
}

func TestDriver_InitializeErrors(t *testing.T) {
	openErr := errors.New("permission denied")

	tests := []struct {
		name       string
		open       Opener
		pixels     int
		brightness int
		wantCause  error
	}{
		{
			name:       "brightness too low",
			open:       func(StripConfig) (Strip, error) { return newFakeStrip(8), nil },
			pixels:     8,
			brightness: 0,
		},
		{
			name:       "brightness too high",
			open:       func(StripConfig) (Strip, error) { return newFakeStrip(8), nil },
			pixels:     8,
			brightness: 101,
		},
		{
			name:       "no pixels",
			open:       func(StripConfig) (Strip, error) { return newFakeStrip(8), nil },
			pixels:     0,
			brightness: 50,
		},
		{
			name:       "opener fails",
			open:       func(StripConfig) (Strip, error) { return nil, openErr },
			pixels:     8,
			brightness: 50,
			wantCause:  openErr,
		},
		{
			name: "hardware init fails",
			open: func(StripConfig) (Strip, error) {
				s := newFakeStrip(8)
				s.initErr = openErr
				return s, nil
			},
			pixels:     8,
			brightness: 50,
			wantCause:  openErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver(tt.open, testLogger())
			err := d.Initialize(18, tt.pixels, tt.brightness)

			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("Initialize() error = %v, want *InitError", err)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("Initialize() error = %v, want cause %v", err, tt.wantCause)
			}
			if d.Initialized() {
				t.Error("Initialized() = true after failed Initialize")
			}
		})
	}
}

func TestDriver_InitFailureReleasesStrip(t *testing.T) {
	strip := newFakeStrip(8)
	strip.initErr = errors.New("mmap failed")
	d := newTestDriver(strip)

	if err := d.Initialize(18, 8, 50); err == nil {
		t.Fatal("Initialize() succeeded with a failing strip")
	}
	if !strip.finalized {
		t.Error("strip not finalized after Init failure")
	}
}

func TestDriver_InitializePassesScaledBrightness(t *testing.T) {
	var got StripConfig
	d := NewDriver(func(cfg StripConfig) (Strip, error) {
		got = cfg
		return newFakeStrip(cfg.Count), nil
	}, testLogger())

	if err := d.Initialize(18, 12, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if got.Pin != 18 || got.Count != 12 || got.Brightness != 127 {
		t.Errorf("strip config = %+v, want pin 18, 12 pixels, brightness 127", got)
	}
}

func TestDriver_InitializeTwice(t *testing.T) {
	d := newTestDriver(newFakeStrip(8))
	if err := d.Initialize(18, 8, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := d.Initialize(18, 8, 50); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize() error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestDriver_SetColorWritesAllPixels(t *testing.T) {
	strip := newFakeStrip(8)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 8, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	if err := d.SetColor(Red); err != nil {
		t.Fatalf("SetColor() failed: %v", err)
	}

	assertFrame(t, strip.frame(), Red)
	if strip.renders != 1 {
		t.Errorf("renders = %d, want 1", strip.renders)
	}

	current, ok := d.Current()
	if !ok || current != Red {
		t.Errorf("Current() = %v, %v, want red, true", current, ok)
	}
}

func TestDriver_SetColorIdempotent(t *testing.T) {
	strip := newFakeStrip(4)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 4, 80); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	if err := d.SetColor(Amber); err != nil {
		t.Fatalf("first SetColor() failed: %v", err)
	}
	once := strip.frame()

	if err := d.SetColor(Amber); err != nil {
		t.Fatalf("second SetColor() failed: %v", err)
	}
	twice := strip.frame()

	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("pixel %d changed between identical writes: %#06x -> %#06x", i, once[i], twice[i])
		}
	}
}

func TestDriver_SetColorRetriesRender(t *testing.T) {
	strip := newFakeStrip(4)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	strip.failNext = 2
	if err := d.SetColor(Blue); err != nil {
		t.Fatalf("SetColor() should succeed after retries: %v", err)
	}
	if strip.renders != 3 {
		t.Errorf("renders = %d, want 3", strip.renders)
	}
	assertFrame(t, strip.frame(), Blue)
}

func TestDriver_SetColorFailureKeepsPreviousColor(t *testing.T) {
	strip := newFakeStrip(4)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := d.SetColor(Green); err != nil {
		t.Fatalf("SetColor(green) failed: %v", err)
	}

	strip.failNext = 10
	err := d.SetColor(Red)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("SetColor(red) error = %v, want *WriteError", err)
	}
	if writeErr.Color != Red {
		t.Errorf("WriteError.Color = %v, want red", writeErr.Color)
	}

	assertFrame(t, strip.frame(), Green)
	if current, _ := d.Current(); current != Green {
		t.Errorf("Current() = %v, want green", current)
	}
}

func TestDriver_SetColorRejectsInvalid(t *testing.T) {
	d := newTestDriver(newFakeStrip(4))
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := d.SetColor(Color(42)); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("SetColor(42) error = %v, want ErrUnknownColor", err)
	}
}

func TestDriver_ConcurrentWritesAreSerialized(t *testing.T) {
	strip := newFakeStrip(64)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 64, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	colors := []Color{Green, Amber, Red, Blue, White}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(c Color) {
			defer wg.Done()
			_ = d.SetColor(c)
		}(colors[i%len(colors)])
	}
	wg.Wait()

	if strip.mixedFrame {
		t.Fatal("a render committed pixels from interleaved writes")
	}
	current, _ := d.Current()
	assertFrame(t, strip.frame(), current)
}

func TestDriver_SwapReturnsReplacedColor(t *testing.T) {
	d := newTestDriver(newFakeStrip(4))
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatal(err)
	}

	if _, had, err := d.Swap(Green); err != nil || had {
		t.Fatalf("first Swap() had=%v err=%v, want nothing shown before", had, err)
	}
	prev, had, err := d.Swap(Amber)
	if err != nil || !had || prev != Green {
		t.Errorf("Swap(amber) = %v, %v, %v; want green, true, nil", prev, had, err)
	}
}

// Every successful swap must report the color it overwrote, so the
// transitions form one unbroken chain ending at the current color.
func TestDriver_ConcurrentSwapsChain(t *testing.T) {
	d := newTestDriver(newFakeStrip(4))
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatal(err)
	}
	if err := d.SetColor(Green); err != nil {
		t.Fatal(err)
	}

	var (
		mu      sync.Mutex
		balance = map[Color]int{}
		wg      sync.WaitGroup
	)
	colors := []Color{Red, Amber, Green, Blue}
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(c Color) {
			defer wg.Done()
			prev, had, err := d.Swap(c)
			if err != nil || !had {
				t.Errorf("Swap(%v) had=%v err=%v", c, had, err)
				return
			}
			mu.Lock()
			balance[prev]--
			balance[c]++
			mu.Unlock()
		}(colors[i%len(colors)])
	}
	wg.Wait()

	final, _ := d.Current()
	for c, n := range balance {
		want := 0
		switch {
		case c == final && c == Green:
		case c == final:
			want = 1
		case c == Green:
			want = -1
		}
		if n != want {
			t.Errorf("color %v balance = %d, want %d", c, n, want)
		}
	}
}

func TestDriver_Close(t *testing.T) {
	strip := newFakeStrip(4)
	d := newTestDriver(strip)
	if err := d.Initialize(18, 4, 50); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := d.SetColor(White); err != nil {
		t.Fatalf("SetColor() failed: %v", err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	assertFrame(t, strip.frame(), Off)
	if !strip.finalized {
		t.Error("Close() did not release the strip")
	}
	if d.Initialized() {
		t.Error("Initialized() = true after Close")
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}
