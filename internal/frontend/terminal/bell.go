package terminal

import (
	"github.com/retroenv/retrogolib/log"
)

// Bell is a beeper that rings the terminal bell when the tone starts.
type Bell struct {
	logger   *log.Logger
	terminal *Terminal
	on       bool
}

// NewBell returns a beeper using the bell of the terminal.
func NewBell(logger *log.Logger, t *Terminal) *Bell {
	return &Bell{logger: logger, terminal: t}
}

// SetTone rings the bell on every transition from silent to audible.
func (b *Bell) SetTone(on bool) {
	if on && !b.on {
		if err := b.terminal.Beep(); err != nil {
			b.logger.Warn("Terminal bell failed", log.Err(err))
		}
	}
	b.on = on
}

// Close implements the beeper interface, the bell needs no cleanup.
func (b *Bell) Close() error {
	return nil
}
