// Package window implements a desktop frontend that shows the framebuffer
// in a GLFW window rendered with OpenGL and reads the keypad from the
// keyboard.
//
// GLFW and OpenGL must be used from the main OS thread, all calls are
// therefore routed through mainthread. The program has to be started by
// mainthread.Run.
package window

import (
	"time"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/keymap"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Title is the window title.
const Title = "chip8emu"

type keyEvent struct {
	code    uint8
	pressed bool
}

// Window is the GLFW frontend.
type Window struct {
	logger   *log.Logger
	window   *glfw.Window
	renderer *renderer

	color   [3]float32
	pixels  []byte
	present presenter
	events  []keyEvent // filled by the key callback during event polling
}

// New opens a window sized to the framebuffer multiplied by the scale.
func New(logger *log.Logger, opts options.Program) (*Window, error) {
	color, err := ParseColor(opts.Color)
	if err != nil {
		return nil, err
	}
	scale := max(opts.Scale, 1)

	w := &Window{
		logger: logger,
		color:  color,
		pixels:  make([]byte, display.Width*display.Height),
		present: newPresenter(RefreshRate, time.Now),
	}

	err = mainthread.CallErr(func() error {
		return w.init(display.Width*scale, display.Height*scale)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// init initializes GLFW and OpenGL.
func (w *Window) init(width, height int) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var err error
	w.window, err = glfw.CreateWindow(width, height, Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	w.window.MakeContextCurrent()
	w.window.SetKeyCallback(w.keyCallback)
	glfw.SwapInterval(0)

	w.renderer, err = newRenderer()
	if err != nil {
		w.dispose()
		return err
	}

	w.logger.Debug("Window opened",
		log.Int("width", width),
		log.Int("height", height),
	)
	return nil
}

// Poll processes pending window events, forwards keypad transitions to
// the handler and returns false once the window should close.
func (w *Window) Poll(handler func(code uint8, pressed bool)) bool {
	var open bool
	mainthread.Call(func() {
		glfw.PollEvents()
		open = !w.window.ShouldClose()
	})

	for _, ev := range w.events {
		handler(ev.code, ev.pressed)
	}
	w.events = w.events[:0]

	if open {
		w.flush()
	}
	return open
}

// Render copies the framebuffer and presents it, unless a frame was
// already presented within the current refresh interval. A deferred frame
// is presented by a later Poll.
func (w *Window) Render(d *display.Display) error {
	if w.window == nil {
		return errors.New("window is closed")
	}
	fillPixels(d, w.pixels)
	w.present.request()
	w.flush()
	return nil
}

// flush presents the last copied framebuffer if it is due.
func (w *Window) flush() {
	if !w.present.due() {
		return
	}
	mainthread.Call(func() {
		width, height := w.window.GetFramebufferSize()
		w.renderer.draw(w.pixels, w.color, width, height)
		w.window.SwapBuffers()
	})
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() error {
	mainthread.Call(w.dispose)
	return nil
}

// dispose ensures openGL/GLFW resources are cleaned up.
func (w *Window) dispose() {
	if w.renderer != nil {
		w.renderer.dispose()
		w.renderer = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}

	if key == glfw.KeyEscape {
		if action == glfw.Press {
			w.window.SetShouldClose(true)
		}
		return
	}

	// printable keys use their upper case ASCII value as key code
	code, ok := keymap.Lookup(rune(key))
	if !ok {
		return
	}
	w.events = append(w.events, keyEvent{code: code, pressed: action == glfw.Press})
}
