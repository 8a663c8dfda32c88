package led

// Strip is the hardware capability behind a Driver. Its method set follows
// the rpi-ws281x API: pixels are staged with SetLED and shown together by Render.
type Strip interface {
	// Init claims the hardware. It is called once before any other method.
	Init() error

	// SetLED stages a 0x00RRGGBB value for pixel i without showing it.
	SetLED(i int, color uint32)

	// Render commits every staged pixel in one transaction.
	Render() error

	// Fini releases the hardware.
	Fini()

	// Count returns the number of pixels.
	Count() int
}

// StripConfig describes the strip to open.
type StripConfig struct {
	Pin        int
	Count      int
	Brightness uint8 // 0-255, applied by the hardware to every pixel
}

// Opener constructs a Strip for the given configuration.
type Opener func(cfg StripConfig) (Strip, error)

// ScaleBrightness converts a 1-100 percentage to the 0-255 range used by ws281x.
func ScaleBrightness(percent int) uint8 {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 255
	default:
		return uint8(percent * 255 / 100)
	}
}
