package led

import (
	"os"
	"strings"

	"github.com/smazurov/statusled/internal/logging"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// NewOpener picks a strip implementation based on board detection.
// Falls back to a simulated strip when ws281x hardware is unavailable or
// when simulate is set.
func NewOpener(logger logging.Logger, simulate bool) Opener {
	simulatedOpener := func(cfg StripConfig) (Strip, error) {
		return newSimulated(cfg, logger), nil
	}

	if simulate {
		logger.Info("LED simulation requested, using simulated strip")
		return simulatedOpener
	}

	boardModel := detectBoard()
	logger.Info("Detecting board for LED strip", "board_model", boardModel)

	switch {
	case strings.Contains(boardModel, "Raspberry Pi") && hardwareSupported:
		logger.Info("Detected Raspberry Pi, using ws281x LED strip")
		return newHardwareStrip

	case strings.Contains(boardModel, "Raspberry Pi"):
		logger.Warn("Raspberry Pi detected but built without ws281x support, using simulated strip")
		return simulatedOpener

	default:
		logger.Info("No ws281x support detected, using simulated strip", "board_model", boardModel)
		return simulatedOpener
	}
}

// detectBoard reads the device tree model to identify the board.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}

	// Device tree model contains null bytes, trim them
	model := strings.TrimRight(string(data), "\x00")
	return model
}
