//go:build !ws281x

package led

const hardwareSupported = false

func newHardwareStrip(_ StripConfig) (Strip, error) {
	return nil, ErrNoHardware
}
