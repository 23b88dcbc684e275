// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

// Package script runs Lua scripts against a debugger session. Scripts can
// step and run the simulation, configure breaks and inspect the history and
// memory. Only the base, table, string and math libraries are available.
//
// Functions available to scripts:
//
//	step([n])              allow n cycles (default 1) and wait for them
//	run([batch])           run until a break, halt or the end of the batch
//	continue()             clear a latched break
//	break_cycle(value)     set or clear ("none") the cycle break
//	break_pc(value)        set or clear ("none") the program counter break
//	reset_highlights()     clear the recently written set
//	latest()               table describing the most recent snapshot
//	cycle()                the most recent cycle number (-1 if none)
//	should_pause()         true if a break is latched or the machine halted
//	state()                session state as a string
//	read(addr)             memory value and annotation at address
//	write(addr, value)     write to memory at the latest cycle
//	annotate(addr, text)   set the annotation for an address
//	log(text)              add an entry to the log
//
// step() and run() return false if the simulation has ended.
package script

import (
	"context"
	"errors"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/logger"
)

// Script binds a Lua state to a session.
type Script struct {
	sess     *debugger.Session
	perm     logger.Permission
	runBatch int
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(sess *debugger.Session, perm logger.Permission, runBatch int) *Script {
	if runBatch <= 0 {
		runBatch = debugger.DefaultBatch
	}
	return &Script{
		sess:     sess,
		perm:     perm,
		runBatch: runBatch,
	}
}

// Run the Lua source. The script is stopped if the context is done.
func (scr *Script) Run(ctx context.Context, source string) error {
	L := newState()
	defer L.Close()

	L.SetContext(ctx)
	scr.register(L, ctx)

	if err := L.DoString(source); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return curated.Errorf("script: %v", err)
	}
	return nil
}

// RunFile runs the Lua script in the named file.
func (scr *Script) RunFile(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return curated.Errorf("script: %v", err)
	}
	logger.Logf(scr.perm, "script", "running %s", path)
	return scr.Run(ctx, string(b))
}

func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

// ended returns true if the error was caused by the end of the simulation.
func ended(err error) bool {
	return errors.Is(err, clockgate.ErrClosed)
}
