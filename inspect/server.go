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
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spam1/spamdbg/clockgate"
	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/debugger"
	"github.com/spam1/spamdbg/logger"
)

// SessionHeader is the name of the header carrying the session ID.
const SessionHeader = "X-Session-ID"

// longest time a /wait request is held open
const maxWait = 60 * time.Second

// Server is the HTTP interface to a debugger session.
type Server struct {
	sess     *debugger.Session
	perm     logger.Permission
	router   *chi.Mux
	runBatch int
}

// NewServer is the preferred method of initialisation for the Server type.
func NewServer(sess *debugger.Session, perm logger.Permission, runBatch int) *Server {
	if runBatch <= 0 {
		runBatch = debugger.DefaultBatch
	}

	srv := &Server{
		sess:     sess,
		perm:     perm,
		router:   chi.NewRouter(),
		runBatch: runBatch,
	}

	srv.router.Use(middleware.Recoverer)
	srv.router.Use(srv.sessionHeader)
	srv.router.Use(srv.logRequests)

	srv.router.Get("/state", srv.handleState)
	srv.router.Get("/timeline", srv.handleTimeline)
	srv.router.Get("/recent", srv.handleRecent)
	srv.router.Get("/program", srv.handleProgram)
	srv.router.Get("/wait", srv.handleWait)

	srv.router.Route("/history", func(r chi.Router) {
		r.Get("/", srv.handleHistoryRange)
		r.Get("/latest", srv.handleLatest)
		r.Get("/{cycle}", srv.handleHistory)
	})

	srv.router.Post("/step", srv.handleStep)
	srv.router.Post("/run", srv.handleRun)
	srv.router.Post("/continue", srv.handleContinue)
	srv.router.Post("/highlights/reset", srv.handleResetHighlights)

	srv.router.Put("/break/cycle", srv.handleBreak(sess.ConfigureBreakOnCycle))
	srv.router.Put("/break/pc", srv.handleBreak(sess.ConfigureBreakOnProgramCounter))

	srv.router.Route("/memory/{addr}", func(r chi.Router) {
		r.Get("/", srv.handleMemory)
		r.Put("/", srv.handleWriteMemory)
		r.Put("/annotation", srv.handleAnnotate)
	})

	return srv
}

// ServeHTTP implements the http.Handler interface.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// ListenAndServe serves HTTP on the address until the context is done.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(sctx)
	})
	defer stop()

	logger.Logf(srv.perm, "inspect", "listening on %s", addr)

	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return curated.Errorf("inspect: %v", err)
	}
	return nil
}

func (srv *Server) sessionHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionHeader, srv.sess.ID().String())
		next.ServeHTTP(w, r)
	})
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Logf(srv.perm, "inspect", "%s %s %d", r.Method, r.URL.Path, ww.Status())
	})
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log(srv.perm, "inspect", err)
	}
}

// writeError chooses the status code from the curated error pattern.
func (srv *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case curated.Has(err, curated.InvalidArgument):
		status = http.StatusBadRequest
	case curated.Has(err, curated.NotFound):
		status = http.StatusNotFound
	case errors.Is(err, clockgate.ErrClosed):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	srv.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// intParam parses a decimal or 0x hexadecimal value.
func intParam(name string, s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(curated.InvalidArgument, fmt.Sprintf("%s %q", name, s))
	}
	return int(n), nil
}

// queryInt returns the named query value or the default value if it is
// absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return intParam(name, s)
}

// decodeBody decodes a JSON request body.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return curated.Errorf(curated.InvalidArgument, fmt.Sprintf("request body: %v", err))
	}
	return nil
}
