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

package debugger

import (
	"github.com/spam1/spamdbg/bus"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/logger"
)

// Option customises a Session created with NewSession().
type Option func(*config) error

type config struct {
	annotationsFile string
	busDepth        int
	perm            logger.Permission
}

func defaultConfig() config {
	return config{
		busDepth: bus.DefaultDepth,
		perm:     logger.Allow,
	}
}

// WithAnnotationsFile sets the file annotations are loaded from and saved to.
// Without this option annotations are kept in memory only.
func WithAnnotationsFile(path string) Option {
	return func(c *config) error {
		c.annotationsFile = path
		return nil
	}
}

// WithBusDepth sets the queue depth for each bus subscription.
func WithBusDepth(depth int) Option {
	return func(c *config) error {
		if depth <= 0 {
			return curated.Errorf(curated.InvalidArgument, "bus depth must be positive")
		}
		c.busDepth = depth
		return nil
	}
}

// WithLogPermission sets the permission used for log entries made by the
// session.
func WithLogPermission(perm logger.Permission) Option {
	return func(c *config) error {
		if perm == nil {
			perm = logger.Deny
		}
		c.perm = perm
		return nil
	}
}
