// Package scripting exposes balance formulas written in Lua. Every formula
// falls back to the built-in Go implementation when its Lua function is
// missing or fails.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/udisondev/soulbound/internal/game/player"
	"github.com/udisondev/soulbound/internal/model"
	"github.com/udisondev/soulbound/internal/spawn"
)

// Lua entry points.
const (
	fnNextLevelXP = "next_level_xp"
	fnScaleEnemy  = "scale_enemy"
)

// Engine wraps a single gopher-lua VM. It implements
// player.LevelingStrategy and spawn.StatScaler.
type Engine struct {
	mu  sync.Mutex // guards vm
	vm  *lua.LState
	log *zap.Logger

	leveling player.LevelingStrategy
	scaler   spawn.StatScaler
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory yields an engine running only built-in formulas.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:       vm,
		log:      log,
		leveling: player.LinearLeveling{},
		scaler:   spawn.LinearScaler{},
	}

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load balance scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			e.log.Info("no balance scripts, using built-in formulas", zap.String("dir", dir))
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// NextLevelXP calls Lua next_level_xp(level). Non-positive results and
// errors fall back to 100*level.
func (e *Engine) NextLevelXP(level int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	ret, ok := e.call(fnNextLevelXP, lua.LNumber(level))
	if !ok {
		return e.leveling.NextLevelXP(level)
	}
	xp := int(lua.LVAsNumber(ret))
	if xp <= 0 {
		e.log.Warn("lua next_level_xp returned non-positive value", zap.Int("level", level), zap.Int("xp", xp))
		return e.leveling.NextLevelXP(level)
	}
	return xp
}

// Scale calls Lua scale_enemy(ctx) where ctx carries the definition's base
// stats, min/max level and the average player level. The returned table
// may omit fields; omitted ones keep the built-in linear result. The XP
// reward never drops below the base.
func (e *Engine) Scale(def model.EnemyDefinition, avgLevel float64) model.EnemyStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	fallback := e.scaler.Scale(def, avgLevel)

	ctx := e.vm.NewTable()
	ctx.RawSetString("type", lua.LString(def.Type))
	ctx.RawSetString("min_level", lua.LNumber(def.MinLevel))
	ctx.RawSetString("max_level", lua.LNumber(def.MaxLevel))
	ctx.RawSetString("avg_level", lua.LNumber(avgLevel))
	base := e.vm.NewTable()
	base.RawSetString("max_hp", lua.LNumber(def.BaseStats.MaxHP))
	base.RawSetString("attack", lua.LNumber(def.BaseStats.Attack))
	base.RawSetString("defense", lua.LNumber(def.BaseStats.Defense))
	base.RawSetString("move_speed", lua.LNumber(def.BaseStats.MoveSpeed))
	base.RawSetString("xp_reward", lua.LNumber(def.BaseStats.XPReward))
	ctx.RawSetString("base", base)

	ret, ok := e.call(fnScaleEnemy, ctx)
	if !ok {
		return fallback
	}
	rt, isTable := ret.(*lua.LTable)
	if !isTable {
		e.log.Error("lua scale_enemy returned non-table", zap.String("type", ret.Type().String()))
		return fallback
	}

	stats := model.EnemyStats{
		MaxHP:     lIntOr(rt, "max_hp", fallback.MaxHP),
		Attack:    lIntOr(rt, "attack", fallback.Attack),
		Defense:   lIntOr(rt, "defense", fallback.Defense),
		MoveSpeed: lFloatOr(rt, "move_speed", fallback.MoveSpeed),
		XPReward:  lIntOr(rt, "xp_reward", fallback.XPReward),
	}
	stats.MaxHP = max(1, stats.MaxHP)
	stats.XPReward = max(def.BaseStats.XPReward, stats.XPReward)
	return stats
}

// call invokes a global Lua function with one return value.
// Returns false if the function is missing or raised an error.
func (e *Engine) call(name string, args ...lua.LValue) (lua.LValue, bool) {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return lua.LNil, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return lua.LNil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, true
}

// lIntOr reads an integer field from a Lua table, or def when absent.
func lIntOr(t *lua.LTable, key string, def int) int {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return def
	}
	return int(lua.LVAsNumber(v))
}

func lFloatOr(t *lua.LTable, key string, def float64) float64 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return def
	}
	return float64(lua.LVAsNumber(v))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
