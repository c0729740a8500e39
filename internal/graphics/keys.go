package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

type namedKey struct {
	key  int32
	name string
}

// keyNames maps raylib keys to the names bindings use (KeyboardEvent.code style).
var keyNames = func() []namedKey {
	keys := []namedKey{
		{rl.KeyLeft, "ArrowLeft"},
		{rl.KeyRight, "ArrowRight"},
		{rl.KeyUp, "ArrowUp"},
		{rl.KeyDown, "ArrowDown"},
		{rl.KeyKpAdd, "NumpadAdd"},
		{rl.KeyKpSubtract, "NumpadSubtract"},
		{rl.KeySpace, "Space"},
		{rl.KeyEqual, "Equal"},
		{rl.KeyMinus, "Minus"},
	}
	for i := int32(0); i < 26; i++ {
		keys = append(keys, namedKey{rl.KeyA + i, "Key" + string(rune('A'+i))})
	}
	for i := int32(0); i < 10; i++ {
		keys = append(keys, namedKey{rl.KeyZero + i, "Digit" + string(rune('0'+i))})
	}
	return keys
}()

// PollKeys calls handle with the name of every key pressed this frame, including OS key
// repeats while a key is held.
func PollKeys(handle func(name string) bool) {
	for _, k := range keyNames {
		if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
			handle(k.name)
		}
	}
}
