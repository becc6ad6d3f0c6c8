package race

// Action is a driving control the simulation asks about once per tick.
type Action uint8

const (
	ActionSteerLeft Action = iota
	ActionSteerRight
	ActionThrust
	ActionReverse
	ActionRescue
)

// Input answers whether a player is holding an action this tick.
type Input interface {
	IsActionHeld(player int, a Action) bool
}

// NoInput holds nothing.
type NoInput struct{}

func (NoInput) IsActionHeld(int, Action) bool { return false }

// InputFunc adapts a function to Input.
type InputFunc func(player int, a Action) bool

func (f InputFunc) IsActionHeld(player int, a Action) bool { return f(player, a) }

func readControls(in Input, player int) Controls {
	return Controls{
		Left:    in.IsActionHeld(player, ActionSteerLeft),
		Right:   in.IsActionHeld(player, ActionSteerRight),
		Thrust:  in.IsActionHeld(player, ActionThrust),
		Reverse: in.IsActionHeld(player, ActionReverse),
	}
}
