// Package server implements the TCP accept loop and per-connection
// command dispatch described in spec.md §4.5/§5, grounded on the
// lineage repo's main.go accept loop and handleOneConnection, rewritten
// around a single store.Store guarded by one sync.Mutex instead of the
// lineage's per-database sync.RWMutex plus AOF/pubsub/transaction
// bookkeeping — none of which spec.md's command set needs.
package server

import (
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/akashmaji946/resp-kv/internal/logging"
	"github.com/akashmaji946/resp-kv/internal/store"
)

// Server owns the listener and the shared store. Connections are
// serialized against the store by mu: a connection holds mu while it
// parses and executes one command, giving a total order of commands
// across all connections (spec.md §5). The reply is encoded and written
// after mu is released.
type Server struct {
	addr  string
	store *store.Store
	log   logging.Logger
	mu    sync.Mutex
	wg    sync.WaitGroup
}

// New builds a Server that will bind addr and dispatch commands against s.
func New(addr string, s *store.Store, log logging.Logger) *Server {
	return &Server{addr: addr, store: s, log: log}
}

// ListenAndServe binds the TCP listener and runs the accept loop until
// accept fails, a closed listener included. A bind failure is returned to the caller, who treats it
// as fatal per spec.md §6.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "server: listen on %s", s.addr)
	}
	return s.serve(ln)
}

func (s *Server) serve(ln net.Listener) error {
	s.log.Infof("listening on %s", ln.Addr())
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			// A closed listener surfaces here too. Any accept error
			// ends the accept loop: it is logged, and nil is returned
			// to the caller.
			s.log.Infof("accept loop ending: %v", err)
			return nil
		}

		connID := uuid.NewString()
		connLog := s.log.With("conn", connID, "remote", conn.RemoteAddr().String())

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn, connLog)
		}()
	}
}
