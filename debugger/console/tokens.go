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

package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spam1/spamdbg/curated"
)

// tokens is the user input divided into words.
type tokens struct {
	tokens []string
	curr   int
}

func (tk tokens) remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

func (tk tokens) remaining() int {
	return len(tk.tokens) - tk.curr
}

func (tk *tokens) get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// getInt returns the next token as an integer. Decimal, 0x and $ hex
// notation are accepted. If there are no more tokens the default value is
// returned.
func (tk *tokens) getInt(name string, def int) (int, error) {
	s, ok := tk.get()
	if !ok {
		return def, nil
	}
	return parseInt(name, s)
}

// demandInt is like getInt but the token must be present.
func (tk *tokens) demandInt(name string) (int, error) {
	s, ok := tk.get()
	if !ok {
		return 0, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("%s required", name))
	}
	return parseInt(name, s)
}

func parseInt(name string, s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("%s %q", name, s))
	}
	return int(n), nil
}

func tokeniseInput(input string) *tokens {
	tk := &tokens{
		tokens: strings.Fields(input),
	}

	// normalise hex notation
	for i := range tk.tokens {
		if tk.tokens[i][0] == '$' {
			tk.tokens[i] = fmt.Sprintf("0x%s", tk.tokens[i][1:])
		}
	}

	return tk
}
