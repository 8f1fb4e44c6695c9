package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type keyEvent struct {
	code    uint8
	pressed bool
}

type recorder struct {
	events []keyEvent
}

func (r *recorder) handle(code uint8, pressed bool) {
	r.events = append(r.events, keyEvent{code: code, pressed: pressed})
}

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *time.Time) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	now := time.Unix(1000, 0)
	term, err := newTerminal(log.NewTestLogger(t), screen, "33ff66", func() time.Time { return now })
	assert.NoError(t, err)
	t.Cleanup(func() { _ = term.Close() })
	return term, screen, &now
}

func TestPoll_KeyPressAndAutoRelease(t *testing.T) {
	term, screen, now := newTestTerminal(t)
	rec := &recorder{}

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	assert.True(t, term.Poll(rec.handle))
	assert.Len(t, rec.events, 1)
	assert.Equal(t, keyEvent{code: 0x5, pressed: true}, rec.events[0])

	// a repeat within the hold time does not send another press
	*now = now.Add(HoldTime / 2)
	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	assert.True(t, term.Poll(rec.handle))
	assert.Len(t, rec.events, 1)

	// the repeat extended the hold time
	*now = now.Add(HoldTime / 2)
	assert.True(t, term.Poll(rec.handle))
	assert.Len(t, rec.events, 1)

	*now = now.Add(HoldTime)
	assert.True(t, term.Poll(rec.handle))
	assert.Len(t, rec.events, 2)
	assert.Equal(t, keyEvent{code: 0x5, pressed: false}, rec.events[1])
}

func TestPoll_UnmappedKeys(t *testing.T) {
	term, screen, _ := newTestTerminal(t)
	rec := &recorder{}

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.True(t, term.Poll(rec.handle))
	assert.Len(t, rec.events, 0)
}

func TestPoll_Quit(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
	}{
		{"escape", tcell.KeyEscape},
		{"ctrl c", tcell.KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, screen, _ := newTestTerminal(t)
			screen.InjectKey(tt.key, 0, tcell.ModNone)
			assert.False(t, term.Poll(func(uint8, bool) {}))
		})
	}
}

func TestRender(t *testing.T) {
	term, screen, _ := newTestTerminal(t)

	d := display.New()
	d.DrawSprite(0, 0, []byte{0x80, 0x80}) // both halves of cell 0,0
	d.DrawSprite(1, 0, []byte{0x80})       // top half of cell 1,0
	d.DrawSprite(2, 1, []byte{0x80})       // bottom half of cell 2,0

	assert.NoError(t, term.Render(d))

	cells, width, _ := screen.GetContents()
	runeAt := func(x, y int) rune {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			return 0
		}
		return cell.Runes[0]
	}

	assert.Equal(t, tcell.RuneBlock, runeAt(0, 0))
	assert.Equal(t, '▀', runeAt(1, 0))
	assert.Equal(t, '▄', runeAt(2, 0))
	assert.Equal(t, ' ', runeAt(3, 0))
	assert.Equal(t, ' ', runeAt(0, 1))
}

func TestBell(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	bell := NewBell(log.NewTestLogger(t), term)

	bell.SetTone(true)
	assert.True(t, bell.on)
	bell.SetTone(false)
	assert.False(t, bell.on)
	assert.NoError(t, bell.Close())
}
