package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"cascade/internal/controller"
)

// The binding table is an ordered slice so commands dispatch in a fixed
// order when several bound keys land in the same tick.
func TestKeyBindingsOrderAndCoverage(t *testing.T) {
	want := []struct {
		source ebiten.Key
		key    controller.Key
	}{
		{ebiten.KeyQ, controller.KeyQ},
		{ebiten.KeyA, controller.KeyA},
		{ebiten.KeyS, controller.KeyS},
		{ebiten.KeyD, controller.KeyD},
		{ebiten.KeyK, controller.KeyK},
		{ebiten.KeyW, controller.KeyW},
		{ebiten.KeyDigit0, controller.Key0},
		{ebiten.KeyDigit1, controller.Key1},
	}

	if len(keyBindings) != len(want) {
		t.Fatalf("binding table has %d entries, want %d", len(keyBindings), len(want))
	}
	for i, w := range want {
		if keyBindings[i].source != w.source || keyBindings[i].key != w.key {
			t.Errorf("binding %d = {%v, %v}, want {%v, %v}",
				i, keyBindings[i].source, keyBindings[i].key, w.source, w.key)
		}
	}

	seen := make(map[controller.Key]bool, len(keyBindings))
	for _, b := range keyBindings {
		if seen[b.key] {
			t.Errorf("controller key %v bound twice", b.key)
		}
		seen[b.key] = true
	}
}
