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

package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/spam1/spamdbg/logger"
	"github.com/spam1/spamdbg/snapshot"
)

func (scr *Script) register(L *lua.LState, ctx context.Context) {
	fns := map[string]lua.LGFunction{
		"step": func(L *lua.LState) int {
			n := L.OptInt(1, 1)
			if err := scr.sess.Step(n); err != nil {
				if ended(err) {
					L.Push(lua.LFalse)
					return 1
				}
				L.RaiseError("%v", err)
			}
			if err := scr.sess.WaitIdle(ctx); err != nil {
				if ended(err) {
					L.Push(lua.LFalse)
					return 1
				}
				L.RaiseError("%v", err)
			}
			L.Push(lua.LTrue)
			return 1
		},

		"run": func(L *lua.LState) int {
			batch := L.OptInt(1, scr.runBatch)
			if err := scr.sess.Run(ctx, batch); err != nil {
				if ended(err) {
					L.Push(lua.LFalse)
					return 1
				}
				L.RaiseError("%v", err)
			}
			L.Push(lua.LTrue)
			return 1
		},

		"continue": func(L *lua.LState) int {
			scr.sess.Continue()
			return 0
		},

		"break_cycle": func(L *lua.LState) int {
			if err := scr.sess.ConfigureBreakOnCycle(L.CheckString(1)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},

		"break_pc": func(L *lua.LState) int {
			if err := scr.sess.ConfigureBreakOnProgramCounter(L.CheckString(1)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},

		"reset_highlights": func(L *lua.LState) int {
			scr.sess.ResetHighlights()
			return 0
		},

		"latest": func(L *lua.LState) int {
			L.Push(snapshotTable(L, scr.sess.History().Latest()))
			return 1
		},

		"cycle": func(L *lua.LState) int {
			L.Push(lua.LNumber(scr.sess.History().Len() - 1))
			return 1
		},

		"should_pause": func(L *lua.LState) int {
			L.Push(lua.LBool(scr.sess.ShouldPause()))
			return 1
		},

		"state": func(L *lua.LState) int {
			L.Push(lua.LString(scr.sess.State().String()))
			return 1
		},

		"read": func(L *lua.LState) int {
			c, err := scr.sess.Memory().Read(L.CheckInt(1))
			if err != nil {
				L.RaiseError("%v", err)
			}
			L.Push(lua.LNumber(c.Value))
			L.Push(lua.LString(c.Annotation))
			return 2
		},

		"write": func(L *lua.LState) int {
			v := L.CheckInt(2)
			if v < 0 || v > 0xff {
				L.ArgError(2, "value must be between 0 and 255")
			}
			if err := scr.sess.WriteMemory(L.CheckInt(1), uint8(v)); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},

		"annotate": func(L *lua.LState) int {
			if err := scr.sess.Annotate(L.CheckInt(1), L.OptString(2, "")); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},

		"log": func(L *lua.LState) int {
			logger.Log(scr.perm, "script", L.CheckString(1))
			return 0
		},
	}

	for name, fn := range fns {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// snapshotTable converts a snapshot to a Lua table.
func snapshotTable(L *lua.LState, s snapshot.Snapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("cycle", lua.LNumber(s.Cycle))
	t.RawSetString("pc", lua.LNumber(s.PC))
	t.RawSetString("alu", lua.LNumber(s.ALU))
	t.RawSetString("a", lua.LNumber(s.OperandA))
	t.RawSetString("b", lua.LNumber(s.OperandB))
	t.RawSetString("exec", lua.LBool(s.Executed))
	t.RawSetString("op", lua.LString(s.Operation))
	t.RawSetString("flags", lua.LString(s.FlagsOut.String()))
	t.RawSetString("halted", lua.LBool(s.Registers.Halted()))

	regs := L.NewTable()
	regs.RawSetString("a", lua.LNumber(s.Registers.RegA))
	regs.RawSetString("b", lua.LNumber(s.Registers.RegB))
	regs.RawSetString("c", lua.LNumber(s.Registers.RegC))
	regs.RawSetString("d", lua.LNumber(s.Registers.RegD))
	regs.RawSetString("mar", lua.LNumber(s.Registers.MAR()))
	regs.RawSetString("halt", lua.LNumber(s.Registers.Halt))
	t.RawSetString("regs", regs)

	writes := L.NewTable()
	for _, w := range s.Writes {
		e := L.NewTable()
		e.RawSetString("addr", lua.LNumber(w.Address))
		e.RawSetString("value", lua.LNumber(w.Value))
		writes.Append(e)
	}
	t.RawSetString("writes", writes)

	return t
}
