package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Output plays a decoded clip on some audio device.
type Output interface {
	Play(ctx context.Context, c Clip) error
}

// AplayOutput pipes raw PCM into ALSA's aplay. Used when the server runs on
// the machine with the speakers (classroom kiosk).
type AplayOutput struct {
	Command string // defaults to "aplay"
	Device  string // defaults to "default"
}

// Play blocks until the clip has been handed to aplay and it exits.
func (a AplayOutput) Play(ctx context.Context, c Clip) error {
	name := a.Command
	if name == "" {
		name = "aplay"
	}
	dev := a.Device
	if dev == "" {
		dev = "default"
	}
	cmd := exec.CommandContext(ctx, name,
		"-q", "-D", dev, "-t", "raw", "-r", strconv.Itoa(c.SampleRate), "-f", "S16_LE", "-c", "1")
	cmd.Stdin = bytes.NewReader(c.PCM16())
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(out))
	}
	return nil
}
