package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
)

// patternContext is what one pattern invocation may observe and request.
// Scripts append shot requests and may ask for one reposition; they never
// touch the world directly.
type patternContext struct {
	Pos       cp.Vector
	PlayerPos cp.Vector
	Queue     *component.ShotQueue
	MoveTo    *cp.Vector
}

const patternDispatch = "\nfire(__engine)\n"

type patternRuntime struct {
	compiled *tengo.Compiled
}

// ScriptEngine compiles and caches the boss attack pattern scripts. A
// script defines `fire := func(engine) { ... }`; the dispatch line appended
// at compile time invokes it.
type ScriptEngine struct {
	cache map[string]*patternRuntime
}

func NewScriptEngine() *ScriptEngine {
	return &ScriptEngine{cache: map[string]*patternRuntime{}}
}

func (e *ScriptEngine) Fire(name string, ctx *patternContext) error {
	rt, err := e.runtime(name)
	if err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", buildPatternEngine(ctx)); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("system: run pattern %s: %w", name, err)
	}
	return nil
}

func (e *ScriptEngine) runtime(name string) (*patternRuntime, error) {
	if rt, ok := e.cache[name]; ok {
		return rt, nil
	}

	src, err := prefabs.LoadScript(name + ".tengo")
	if err != nil {
		return nil, fmt.Errorf("system: load pattern %s: %w", name, err)
	}

	script := tengo.NewScript(append(src, []byte(patternDispatch)...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile pattern %s: %w", name, err)
	}

	rt := &patternRuntime{compiled: compiled}
	e.cache[name] = rt
	return rt, nil
}

func buildPatternEngine(ctx *patternContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.Pos), nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.PlayerPos), nil
	}}

	values["aim"] = &tengo.UserFunction{Name: "aim", Value: func(args ...tengo.Object) (tengo.Object, error) {
		to := ctx.PlayerPos.Sub(ctx.Pos)
		if to.LengthSq() == 0 {
			return vectorObject(cp.Vector{X: 1}), nil
		}
		return vectorObject(to.Normalize()), nil
	}}

	values["shoot"] = &tengo.UserFunction{Name: "shoot", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		dir := cp.Vector{X: floatArg(args[0]), Y: floatArg(args[1])}
		if dir.LengthSq() == 0 {
			return tengo.FalseValue, nil
		}
		dir = dir.Normalize()
		ctx.Queue.Shots = append(ctx.Queue.Shots, component.Shot{
			DirX:   dir.X,
			DirY:   dir.Y,
			Speed:  floatArg(args[2]),
			Damage: int(floatArg(args[3])),
			Radius: floatArg(args[4]),
		})
		return tengo.TrueValue, nil
	}}

	values["move_to"] = &tengo.UserFunction{Name: "move_to", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		pos := cp.Vector{X: floatArg(args[0]), Y: floatArg(args[1])}
		ctx.MoveTo = &pos
		// Later aim() calls should originate from the new position.
		ctx.Pos = pos
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
	}}
}

func floatArg(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	}
	return 0
}
