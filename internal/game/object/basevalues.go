package object

import "github.com/cory-johannsen/gamedata/internal/game/dice"

// maxSight is the maximum line-of-sight distance, in grids.
const maxSight = 20

// spellBaseValues are the named selectors available to effect and curse
// expressions.
var spellBaseValues = map[string]dice.BaseValueFunc{
	"PLAYER_LEVEL":  func(env dice.Env) int { return env.Level() },
	"DUNGEON_LEVEL": func(env dice.Env) int { return env.Level() },
	"MAX_SIGHT":     func(dice.Env) int { return maxSight },
}

// powerBaseValues are the named selectors available to power
// calculation expressions.
var powerBaseValues = map[string]dice.BaseValueFunc{
	"OBJECT_POWER": func(env dice.Env) int { return env.Power() },
	"PLAYER_LEVEL": func(env dice.Env) int { return env.Level() },
}

func spellBaseValue(name string) (dice.BaseValueFunc, bool) {
	fn, ok := spellBaseValues[name]
	return fn, ok
}

func powerBaseValue(name string) (dice.BaseValueFunc, bool) {
	fn, ok := powerBaseValues[name]
	return fn, ok
}
