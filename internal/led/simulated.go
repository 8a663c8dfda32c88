package led

import (
	"fmt"
	"sync"

	"github.com/smazurov/statusled/internal/logging"
)

// simulated implements Strip in memory for systems without ws281x hardware.
// Staged pixels only become visible in the committed frame on Render.
type simulated struct {
	logger     logging.Logger
	brightness uint8

	mu        sync.Mutex
	pending   []uint32
	committed []uint32
	renders   int
}

// newSimulated creates an in-memory strip
func newSimulated(cfg StripConfig, logger logging.Logger) *simulated {
	return &simulated{
		logger:     logger,
		brightness: cfg.Brightness,
		pending:    make([]uint32, cfg.Count),
		committed:  make([]uint32, cfg.Count),
	}
}

func (s *simulated) Init() error {
	if len(s.pending) == 0 {
		return fmt.Errorf("simulated strip needs at least one pixel")
	}
	s.logger.Info("Simulated LED strip ready", "pixels", len(s.pending), "brightness", s.brightness)
	return nil
}

func (s *simulated) SetLED(i int, color uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pending) {
		return
	}
	s.pending[i] = color
}

// Render copies the staged pixels into the committed frame, applying brightness
func (s *simulated) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := make([]uint32, len(s.pending))
	for i, c := range s.pending {
		frame[i] = dim(c, s.brightness)
	}
	s.committed = frame
	s.renders++

	if len(frame) > 0 {
		s.logger.Debug("[SIM] Rendered LED frame", "rgb", fmt.Sprintf("#%06x", frame[0]), "pixels", len(frame))
	}
	return nil
}

func (s *simulated) Fini() {
	s.logger.Debug("Simulated LED strip released")
}

func (s *simulated) Count() int {
	return len(s.pending)
}

// Frame returns a copy of the last committed frame.
func (s *simulated) Frame() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint32, len(s.committed))
	copy(out, s.committed)
	return out
}

// dim scales every channel of a 0x00RRGGBB value by brightness/255.
func dim(c uint32, brightness uint8) uint32 {
	scale := func(v uint32) uint32 { return v * uint32(brightness) / 255 }
	r := scale(c >> 16 & 0xff)
	g := scale(c >> 8 & 0xff)
	b := scale(c & 0xff)
	return r<<16 | g<<8 | b
}
