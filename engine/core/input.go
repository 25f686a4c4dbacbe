package core

// Input tracks the current key/mouse state fed from window events.
// Edge queries (pressed/released) are relative to the previous EndFrame.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
	prevX, prevY   float64
	buttons        [mouseButtonCount]bool
	prevButtons    [mouseButtonCount]bool
	scrollX        float64
	scrollY        float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= 0 && e.Button < mouseButtonCount {
			in.buttons[e.Button] = e.Down
		}
	case EventScroll:
		in.scrollX += e.Xoff
		in.scrollY += e.Yoff
	}
}

// EndFrame latches button state and clears per-frame deltas.
func (in *Input) EndFrame() {
	in.prevButtons = in.buttons
	in.prevX, in.prevY = in.mouseX, in.mouseY
	in.scrollX, in.scrollY = 0, 0
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// MouseDelta is the cursor movement since the last EndFrame.
func (in *Input) MouseDelta() (float64, float64) {
	return in.mouseX - in.prevX, in.mouseY - in.prevY
}

func (in *Input) Scroll() (float64, float64) { return in.scrollX, in.scrollY }

func (in *Input) IsMouseDown(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && in.buttons[b]
}

func (in *Input) MousePressed(b MouseButton) bool {
	return in.IsMouseDown(b) && !in.prevButtons[b]
}

func (in *Input) MouseReleased(b MouseButton) bool {
	return b >= 0 && b < mouseButtonCount && !in.buttons[b] && in.prevButtons[b]
}
