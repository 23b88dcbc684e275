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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spam1/spamdbg/curated"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all the preference types
type hooks struct {
	crit sync.Mutex
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed. If the callback returns an error the value is not
// changed.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.pre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.post = f
}

// update runs the store function between the pre and post hooks
func (h *hooks) update(v Value, store func()) error {
	h.crit.Lock()
	pre, post := h.pre, h.post
	h.crit.Unlock()

	if pre != nil {
		if err := pre(v); err != nil {
			return err
		}
	}

	store()

	if post != nil {
		if err := post(v); err != nil {
			return err
		}
	}

	return nil
}

func conversionError(v Value, typ string) error {
	return curated.Errorf("prefs: %v", curated.Errorf(curated.InvalidArgument,
		fmt.Sprintf("cannot convert %T to prefs.%s", v, typ)))
}

// Bool implements a boolean type in the prefs system. The zero value is false.
type Bool struct {
	hooks
	value atomic.Bool
	def   bool
}

// NewBool creates a Bool with a default value. The default is restored by
// Reset().
func NewBool(def bool) *Bool {
	p := &Bool{def: def}
	p.value.Store(def)
	return p
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.value.Load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return conversionError(v, "Bool")
	}
	return p.update(nv, func() { p.value.Store(nv) })
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.value.Load()
}

// Load returns the value as a bool.
func (p *Bool) Load() bool {
	return p.value.Load()
}

// Reset restores the default value.
func (p *Bool) Reset() error {
	return p.Set(p.def)
}

// Int implements an integer type in the prefs system. The zero value is zero.
type Int struct {
	hooks
	value atomic.Int64
	def   int
}

// NewInt creates an Int with a default value. The default is restored by
// Reset().
func NewInt(def int) *Int {
	p := &Int{def: def}
	p.value.Store(int64(def))
	return p
}

func (p *Int) String() string {
	return strconv.FormatInt(p.value.Load(), 10)
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int:
		nv = v
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case uint64:
		nv = int(v)
	case string:
		var err error
		nv, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return conversionError(v, "Int")
		}
	default:
		return conversionError(v, "Int")
	}
	return p.update(nv, func() { p.value.Store(int64(nv)) })
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return int(p.value.Load())
}

// Load returns the value as an int.
func (p *Int) Load() int {
	return int(p.value.Load())
}

// Reset restores the default value.
func (p *Int) Reset() error {
	return p.Set(p.def)
}

// String implements a string type in the prefs system. The zero value is the
// empty string.
type String struct {
	hooks
	value  atomic.Pointer[string]
	def    string
	maxLen atomic.Int32
}

// NewString creates a String with a default value. The default is restored by
// Reset().
func NewString(def string) *String {
	p := &String{def: def}
	p.value.Store(&def)
	return p
}

func (p *String) String() string {
	s := p.value.Load()
	if s == nil {
		return ""
	}
	return *s
}

// SetMaxLen sets the maximum length for a string when it is set. To set no
// limit use a value less than or equal to zero. The existing string is not
// cropped.
func (p *String) SetMaxLen(max int) {
	p.maxLen.Store(int32(max))
}

// Set new value to String type. Values of any type are converted to a string.
func (p *String) Set(v Value) error {
	nv := fmt.Sprint(v)
	if max := int(p.maxLen.Load()); max > 0 && len(nv) > max {
		nv = nv[:max]
	}
	return p.update(nv, func() { p.value.Store(&nv) })
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset restores the default value.
func (p *String) Reset() error {
	return p.Set(p.def)
}
