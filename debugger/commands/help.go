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

package commands

// Help contains the help text for the debugger's top level commands.
var Help = map[string]string{
	KeywordHelp:     "Lists commands and provides help for individual debugger commands",
	KeywordQuit:     "Exits the debugger. The simulator is released",
	KeywordStep:     "Allow the simulator to complete n cycles (default 1)",
	KeywordRun:      "Run until a break, a halt or the end of the batch (default from preferences)",
	KeywordContinue: "Clear a latched break so that RUN can proceed",
	KeywordBreak:    "Set or clear a break on CYCLE or PC. Values are decimal or 0x hex. NONE clears",
	KeywordReset:    "Clear the recently written memory highlights",
	KeywordMem:      "Display count memory cells from address (default 16)",
	KeywordSet:      "Write a value to a memory address at the latest cycle",
	KeywordHist:     "Display the snapshot for the specified cycle",
	KeywordLatest:   "Display the most recent snapshot",
	KeywordRecent:   "List the addresses written since the last RESET",
	KeywordAnnotate: "Attach a note to a memory address. An empty note removes it",
	KeywordProgram:  "List the loaded program",
	KeywordState:    "Display the session state and break configuration",
	KeywordTimeline: "Summarise the execution history",
	KeywordDump:     "Write a graph of the latest snapshot to a file in DOT format",
	KeywordLog:      "Display the most recent log entries (default 10)",
}

// Usage contains the argument summary for each top level command.
var Usage = map[string]string{
	KeywordHelp:     "HELP [command]",
	KeywordQuit:     "QUIT",
	KeywordStep:     "STEP [n]",
	KeywordRun:      "RUN [batch]",
	KeywordContinue: "CONTINUE",
	KeywordBreak:    "BREAK CYCLE|PC <value|NONE>",
	KeywordReset:    "RESET",
	KeywordMem:      "MEM <address> [count]",
	KeywordSet:      "SET <address> <value>",
	KeywordHist:     "HIST <cycle>",
	KeywordLatest:   "LATEST",
	KeywordRecent:   "RECENT",
	KeywordAnnotate: "ANNOTATE <address> [text]",
	KeywordProgram:  "PROGRAM",
	KeywordState:    "STATE",
	KeywordTimeline: "TIMELINE",
	KeywordDump:     "DUMP <file>",
	KeywordLog:      "LOG [n]",
}
