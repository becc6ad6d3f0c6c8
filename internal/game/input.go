package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/race"
)

// keyBindings maps each driving action to the keys that hold it.
var keyBindings = map[race.Action][]glfw.Key{
	race.ActionSteerLeft:  {glfw.KeyLeft, glfw.KeyA},
	race.ActionSteerRight: {glfw.KeyRight, glfw.KeyD},
	race.ActionThrust:     {glfw.KeyUp, glfw.KeyW, glfw.KeyLeftControl},
	race.ActionReverse:    {glfw.KeyDown, glfw.KeyS, glfw.KeyLeftAlt},
	race.ActionRescue:     {glfw.KeySpace},
}

// Keyboard reads race actions straight from the window's key state. Only
// player 0 is bound.
type Keyboard struct {
	window   *glfw.Window
	prevKeys map[glfw.Key]bool
}

func NewKeyboard(window *glfw.Window) *Keyboard {
	return &Keyboard{
		window:   window,
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (k *Keyboard) IsActionHeld(player int, a race.Action) bool {
	if player != 0 {
		return false
	}
	for _, key := range keyBindings[a] {
		if k.window.GetKey(key) == glfw.Press {
			return true
		}
	}
	return false
}

// JustPressed reports a key going down since the last call for that key.
func (k *Keyboard) JustPressed(key glfw.Key) bool {
	down := k.window.GetKey(key) == glfw.Press
	jp := down && !k.prevKeys[key]
	k.prevKeys[key] = down
	return jp
}
