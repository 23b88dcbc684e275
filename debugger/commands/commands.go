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

// Package commands defines the keywords of the debugger console along with
// their help text and a tab completion helper.
package commands

// debugger keywords
const (
	KeywordHelp     = "HELP"
	KeywordQuit     = "QUIT"
	KeywordStep     = "STEP"
	KeywordRun      = "RUN"
	KeywordContinue = "CONTINUE"
	KeywordBreak    = "BREAK"
	KeywordReset    = "RESET"
	KeywordMem      = "MEM"
	KeywordSet      = "SET"
	KeywordHist     = "HIST"
	KeywordLatest   = "LATEST"
	KeywordRecent   = "RECENT"
	KeywordAnnotate = "ANNOTATE"
	KeywordProgram  = "PROGRAM"
	KeywordState    = "STATE"
	KeywordTimeline = "TIMELINE"
	KeywordDump     = "DUMP"
	KeywordLog      = "LOG"
)

// arguments to the BREAK keyword
const (
	ArgCycle = "CYCLE"
	ArgPC    = "PC"
	ArgNone  = "NONE"
)

// DebuggerCommands is the list of top-level commands in the order they are
// listed by the HELP command.
var DebuggerCommands = []string{
	KeywordStep,
	KeywordRun,
	KeywordContinue,
	KeywordBreak,
	KeywordReset,
	KeywordMem,
	KeywordSet,
	KeywordHist,
	KeywordLatest,
	KeywordRecent,
	KeywordAnnotate,
	KeywordProgram,
	KeywordState,
	KeywordTimeline,
	KeywordDump,
	KeywordLog,
	KeywordHelp,
	KeywordQuit,
}

type completionArg int

const (
	compArgDebuggerCommand completionArg = iota
	compArgBreak
	compArgFile
)

// completionsOpts defines how tab completion should work for the arguments of
// a top-level command. commands not in the map complete nothing after the
// first word.
var completionsOpts = map[string]completionArg{
	KeywordHelp:  compArgDebuggerCommand,
	KeywordBreak: compArgBreak,
	KeywordDump:  compArgFile,
}
