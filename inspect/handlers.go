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

package inspect

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/memory"
	"github.com/spam1/spamdbg/program"
)

// State is the response to GET /state.
type State struct {
	Session     string `json:"session"`
	State       string `json:"state"`
	Permits     int    `json:"permits"`
	Cycles      int    `json:"cycles"`
	ShouldPause bool   `json:"shouldPause"`
	Breakpoints string `json:"breakpoints"`
	BreakReason string `json:"breakReason,omitempty"`
}

func (srv *Server) state() State {
	return State{
		Session:     srv.sess.ID().String(),
		State:       srv.sess.State().String(),
		Permits:     srv.sess.Permits(),
		Cycles:      srv.sess.History().Len(),
		ShouldPause: srv.sess.ShouldPause(),
		Breakpoints: srv.sess.Breakpoints(),
		BreakReason: srv.sess.BreakReason(),
	}
}

func (srv *Server) handleState(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, srv.sess.History().Timeline())
}

func (srv *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, srv.sess.History().Latest())
}

func (srv *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	cycle, err := intParam("cycle", chi.URLParam(r, "cycle"))
	if err != nil {
		srv.writeError(w, err)
		return
	}
	s, err := srv.sess.History().Get(cycle)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, s)
}

// maximum number of snapshots returned by a single range request
const maxRange = 10000

func (srv *Server) handleHistoryRange(w http.ResponseWriter, r *http.Request) {
	from, err := queryInt(r, "from", 0)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	to, err := queryInt(r, "to", srv.sess.History().Len())
	if err != nil {
		srv.writeError(w, err)
		return
	}
	if to-from > maxRange {
		to = from + maxRange
	}
	l, err := srv.sess.History().Range(from, to)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, l)
}

func (srv *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, srv.sess.Recent().Addresses())
}

func (srv *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	l := srv.sess.Program().All()
	if l == nil {
		l = []program.Instruction{}
	}
	srv.writeJSON(w, http.StatusOK, l)
}

// handleWait holds the request until the cycle is in the history. The
// snapshot for the cycle is returned. If the cycle is not reached before the
// timeout the response is 204 No Content.
func (srv *Server) handleWait(w http.ResponseWriter, r *http.Request) {
	cycle, err := queryInt(r, "cycle", srv.sess.History().Len())
	if err != nil {
		srv.writeError(w, err)
		return
	}
	timeout, err := queryInt(r, "timeout", int(maxWait/time.Second))
	if err != nil {
		srv.writeError(w, err)
		return
	}
	if timeout <= 0 || time.Duration(timeout)*time.Second > maxWait {
		timeout = int(maxWait / time.Second)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout)*time.Second)
	defer cancel()

	h := srv.sess.History()
	for {
		// the channel must be taken before the length is checked
		ch := h.Changed()
		if s, err := h.Get(cycle); err == nil {
			srv.writeJSON(w, http.StatusOK, s)
			return
		}

		select {
		case <-ch:
		case <-ctx.Done():
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
}

func (srv *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 1)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	if err := srv.sess.Step(n); err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, srv.state())
}

// handleRun returns when the run has finished.
func (srv *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	batch, err := queryInt(r, "batch", srv.runBatch)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	if err := srv.sess.Run(r.Context(), batch); err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	srv.sess.Continue()
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) handleResetHighlights(w http.ResponseWriter, r *http.Request) {
	srv.sess.ResetHighlights()
	w.WriteHeader(http.StatusNoContent)
}

type breakRequest struct {
	Value string `json:"value"`
}

func (srv *Server) handleBreak(configure func(string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req breakRequest
		if err := decodeBody(r, &req); err != nil {
			srv.writeError(w, err)
			return
		}
		if err := configure(req.Value); err != nil {
			srv.writeError(w, err)
			return
		}
		srv.writeJSON(w, http.StatusOK, srv.state())
	}
}

func (srv *Server) address(r *http.Request) (int, error) {
	return intParam("address", chi.URLParam(r, "addr"))
}

func (srv *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	addr, err := srv.address(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	if r.URL.Query().Has("count") {
		count, err := queryInt(r, "count", 1)
		if err != nil {
			srv.writeError(w, err)
			return
		}
		cells, err := srv.sess.Memory().ReadRange(addr, count)
		if err != nil {
			srv.writeError(w, err)
			return
		}
		if cells == nil {
			cells = []memory.Cell{}
		}
		srv.writeJSON(w, http.StatusOK, cells)
		return
	}

	c, err := srv.sess.Memory().Read(addr)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	srv.writeJSON(w, http.StatusOK, c)
}

type writeRequest struct {
	Value *int `json:"value"`
}

func (srv *Server) handleWriteMemory(w http.ResponseWriter, r *http.Request) {
	addr, err := srv.address(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	var req writeRequest
	if err := decodeBody(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}
	if req.Value == nil || *req.Value < 0 || *req.Value > 0xff {
		srv.writeError(w, curated.Errorf(curated.InvalidArgument, "value must be between 0 and 255"))
		return
	}
	if err := srv.sess.WriteMemory(addr, uint8(*req.Value)); err != nil {
		srv.writeError(w, err)
		return
	}
	c, _ := srv.sess.Memory().Read(addr)
	srv.writeJSON(w, http.StatusOK, c)
}

type annotationRequest struct {
	Text string `json:"text"`
}

func (srv *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	addr, err := srv.address(r)
	if err != nil {
		srv.writeError(w, err)
		return
	}
	var req annotationRequest
	if err := decodeBody(r, &req); err != nil {
		srv.writeError(w, err)
		return
	}
	if err := srv.sess.Annotate(addr, req.Text); err != nil {
		srv.writeError(w, err)
		return
	}
	c, _ := srv.sess.Memory().Read(addr)
	srv.writeJSON(w, http.StatusOK, c)
}
