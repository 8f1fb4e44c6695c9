package audio

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// sdlDevice queues samples to an SDL audio device.
type sdlDevice struct {
	id sdl.AudioDeviceID
}

// New opens the default SDL audio output and returns a beeper playing on
// it. If no device is available, a silent beeper is returned together
// with the error so that the caller can decide to continue without sound.
func New(logger *log.Logger) (*Beeper, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return Nop(), fmt.Errorf("initializing SDL audio: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}
	var obtained sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, &spec, &obtained, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return Nop(), fmt.Errorf("opening audio device: %w", err)
	}

	logger.Debug("Audio device opened",
		log.Int("frequency", int(obtained.Freq)),
		log.Int("samples", int(obtained.Samples)),
	)

	return newBeeper(logger, &sdlDevice{id: id}), nil
}

func (d *sdlDevice) Queue(samples []byte) error {
	if err := sdl.QueueAudio(d.id, samples); err != nil {
		return fmt.Errorf("queueing %d samples: %w", len(samples), err)
	}
	return nil
}

func (d *sdlDevice) Queued() int {
	return int(sdl.GetQueuedAudioSize(d.id))
}

func (d *sdlDevice) Pause(paused bool) {
	sdl.PauseAudioDevice(d.id, paused)
}

func (d *sdlDevice) Clear() {
	sdl.ClearQueuedAudio(d.id)
}

func (d *sdlDevice) Close() {
	sdl.CloseAudioDevice(d.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
