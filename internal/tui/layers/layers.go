// Package layers places modal boxes over the board
package layers

import "charm.land/lipgloss/v2"

// Centered creates a layer positioned at the center of the screen, or nil
// if content is empty. Content larger than the screen is pinned to the
// top-left corner.
func Centered(content string, screenWidth, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y)
}

// Overlay draws each modal centered over base, later modals on top
func Overlay(base string, screenWidth, screenHeight int, modals ...string) string {
	stack := []*lipgloss.Layer{lipgloss.NewLayer(base)}
	for _, modal := range modals {
		if layer := Centered(modal, screenWidth, screenHeight); layer != nil {
			stack = append(stack, layer)
		}
	}
	if len(stack) == 1 {
		return base
	}
	return lipgloss.NewCanvas(stack...).Render()
}
