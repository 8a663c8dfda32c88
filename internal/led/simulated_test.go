package led

import "testing"

func TestSimulated_RenderCommitsFrame(t *testing.T) {
	s := newSimulated(StripConfig{Pin: 18, Count: 3, Brightness: 255}, testLogger())
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	for i := 0; i < s.Count(); i++ {
		s.SetLED(i, Red.Uint32())
	}

	// Staged pixels are not visible until Render
	for i, c := range s.Frame() {
		if c != 0 {
			t.Fatalf("pixel %d visible before Render: %#06x", i, c)
		}
	}

	if err := s.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	assertFrame(t, s.Frame(), Red)
}

func TestSimulated_Brightness(t *testing.T) {
	s := newSimulated(StripConfig{Pin: 18, Count: 1, Brightness: ScaleBrightness(50)}, testLogger())
	s.SetLED(0, White.Uint32())
	if err := s.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	if got := s.Frame()[0]; got != 0x7f7f7f {
		t.Errorf("dimmed white = %#06x, want 0x7f7f7f", got)
	}
}

func TestSimulated_InitRequiresPixels(t *testing.T) {
	s := newSimulated(StripConfig{Pin: 18, Count: 0, Brightness: 255}, testLogger())
	if err := s.Init(); err == nil {
		t.Error("Init() with zero pixels should fail")
	}
}

func TestSimulated_SetLEDOutOfRange(t *testing.T) {
	s := newSimulated(StripConfig{Pin: 18, Count: 2, Brightness: 255}, testLogger())
	s.SetLED(-1, Red.Uint32())
	s.SetLED(5, Red.Uint32())
	if err := s.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	assertFrame(t, s.Frame(), Off)
}
