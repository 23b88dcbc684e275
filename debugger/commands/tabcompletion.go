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

import (
	"path/filepath"
	"strings"
	"time"
)

// time window in which repeated tab presses cycle through the options
const cycleDuration = 500 * time.Millisecond

// TabCompletion keeps track of the most recent tab completion attempt.
type TabCompletion struct {
	options    []string
	lastOption int

	// lastGuess is the last string generated and returned by the GuessWord
	// function. we use it to help decide whether to start a new completion
	// session
	lastGuess string

	lastCompletionTime time.Time
}

// NewTabCompletion is the preferred method of initialisation for TabCompletion.
func NewTabCompletion() *TabCompletion {
	return &TabCompletion{
		options: make([]string, 0, len(DebuggerCommands)),
	}
}

// Complete implements the colorterm.TabCompleter interface.
func (tc *TabCompletion) Complete(input string) string {
	return tc.GuessWord(input)
}

// GuessWord transforms the input such that the last word in the input is
// expanded to meet the closest match in the list of allowed strings.
func (tc *TabCompletion) GuessWord(input string) string {
	p := strings.Split(input, " ")
	if len(p) == 0 {
		return input
	}

	// if input string is the same as the string last returned by this
	// function AND it is within the cycle duration then return the next option
	if input == tc.lastGuess && time.Since(tc.lastCompletionTime) < cycleDuration {
		if len(tc.options) <= 1 {
			return input
		}

		// the last guess ends with a space so there is an empty word at the
		// end of the list. remove it and the previous guess
		p = p[:len(p)-2]
		p = append(p, "")
		tc.lastOption++
		if tc.lastOption >= len(tc.options) {
			tc.lastOption = 0
		}
	} else {
		tc.options = tc.options[:0]
		tc.lastOption = 0

		trigger := p[len(p)-1]

		if len(p) == 1 {
			tc.options = matching(DebuggerCommands, strings.ToUpper(trigger))
		} else if opt, ok := completionsOpts[strings.ToUpper(p[0])]; ok {
			switch opt {
			case compArgDebuggerCommand:
				if len(p) == 2 {
					tc.options = matching(DebuggerCommands, strings.ToUpper(trigger))
				}
			case compArgBreak:
				if len(p) == 2 {
					tc.options = matching([]string{ArgCycle, ArgPC}, strings.ToUpper(trigger))
				} else if len(p) == 3 {
					tc.options = matching([]string{ArgNone}, strings.ToUpper(trigger))
				}
			case compArgFile:
				if len(p) == 2 {
					m, err := filepath.Glob(trigger + "*")
					if err == nil {
						tc.options = append(tc.options, m...)
					}
				}
			}
		}

		// no completion options - return input unchanged
		if len(tc.options) == 0 {
			return input
		}
	}

	p[len(p)-1] = tc.options[tc.lastOption]
	tc.lastGuess = strings.Join(p, " ") + " "
	tc.lastCompletionTime = time.Now()

	return tc.lastGuess
}

func matching(list []string, trigger string) []string {
	var m []string
	for _, s := range list {
		if strings.HasPrefix(s, trigger) {
			m = append(m, s)
		}
	}
	return m
}
