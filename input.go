package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/session"
)

// Input polls the devices once per frame and folds them into the session's
// input bundle. Keyboard and mouse are primary; a standard gamepad works
// for movement and the three actions.
type Input struct {
	gamepads []ebiten.GamepadID
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.gamepads = ebiten.AppendGamepadIDs(i.gamepads[:0])
}

// Frame builds one tick of intent. playerPos is needed to turn the cursor
// position into an aim direction.
func (i *Input) Frame(playerPos cp.Vector) session.InputFrame {
	var frame session.InputFrame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		frame.Move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		frame.Move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		frame.Move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		frame.Move.Y++
	}

	mx, my := ebiten.CursorPosition()
	frame.Aim = cp.Vector{X: float64(mx), Y: float64(my)}.Sub(playerPos)

	frame.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	frame.Melee = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyE)
	frame.Dash = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	for _, id := range i.gamepads {
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if x*x+y*y > 0.04 {
			frame.Move = cp.Vector{X: x, Y: y}
		}
		ax := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ay := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if ax*ax+ay*ay > 0.04 {
			frame.Aim = cp.Vector{X: ax, Y: ay}
		}
		frame.Fire = frame.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		frame.Melee = frame.Melee || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		frame.Dash = frame.Dash || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	return frame
}

// PausePressed is edge-triggered.
func (i *Input) PausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range i.gamepads {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}
