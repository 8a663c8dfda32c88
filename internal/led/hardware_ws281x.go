//go:build ws281x

package led

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
)

const hardwareSupported = true

// pwm1Pins are routed to the second PWM channel.
var pwm1Pins = map[int]bool{13: true, 19: true, 41: true, 45: true, 53: true}

// ws281x drives a real strip through the rpi_ws281x C library.
type ws281x struct {
	dev     *ws2811.WS2811
	channel int
	count   int
}

func newHardwareStrip(cfg StripConfig) (Strip, error) {
	opt := ws2811.DefaultOptions
	used := opt.Channels[0]
	used.GpioPin = cfg.Pin
	used.LedCount = cfg.Count
	used.Brightness = int(cfg.Brightness)
	used.StripeType = ws2811.WS2811StripGRB

	idle := ws2811.ChannelOption{}
	index := 0
	opt.Channels = []ws2811.ChannelOption{used, idle}
	if pwm1Pins[cfg.Pin] {
		index = 1
		opt.Channels = []ws2811.ChannelOption{idle, used}
	}

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create ws281x device: %w", err)
	}
	return &ws281x{dev: dev, channel: index, count: cfg.Count}, nil
}

func (w *ws281x) Init() error {
	return w.dev.Init()
}

func (w *ws281x) SetLED(i int, color uint32) {
	leds := w.dev.Leds(w.channel)
	if i < 0 || i >= len(leds) {
		return
	}
	leds[i] = color
}

func (w *ws281x) Render() error {
	if err := w.dev.Render(); err != nil {
		return err
	}
	return w.dev.Wait()
}

func (w *ws281x) Fini() {
	w.dev.Fini()
}

func (w *ws281x) Count() int {
	return w.count
}
