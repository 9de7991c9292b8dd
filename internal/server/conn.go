package server

import (
	"bufio"
	"errors"
	"io"
	"net"

	"github.com/akashmaji946/resp-kv/internal/command"
	"github.com/akashmaji946/resp-kv/internal/logging"
	"github.com/akashmaji946/resp-kv/internal/resp"
)

// handleConnection runs the per-connection loop from spec.md §4.5: read
// a frame, decode it, take the store's exclusive access for parse+execute,
// write the reply, and loop until EOF or an IO/framing error ends this
// connection only.
func (s *Server) handleConnection(conn net.Conn, log logging.Logger) {
	defer conn.Close()
	log.Infof("accepted connection")

	reader := bufio.NewReader(conn)
	for {
		args, err := resp.Decode(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Infof("connection closed by peer")
			} else {
				log.Infof("closing connection: %v", err)
			}
			return
		}

		reply := s.dispatch(args, log)

		if _, err := conn.Write(resp.Encode(reply)); err != nil {
			log.Infof("write failed, closing connection: %v", err)
			return
		}
	}
}

// dispatch parses and executes one command under the store's mutex; the
// lock is released when dispatch returns, before the caller encodes and
// writes the reply. Parse errors
// become a generic SimpleError (spec.md §4.5 step 5); execution is
// infallible by construction (Execute never returns an error) but any
// panic-free logical failure is still reported generically, never with
// implementation detail, per spec.md §7.
func (s *Server) dispatch(args []string, log logging.Logger) resp.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := command.Parse(args)
	if err != nil {
		log.Infof("command parse error: %v", err)
		return resp.NewSimpleError("ERR " + causeMessage(err))
	}

	return command.Execute(cmd, s.store)
}

// causeMessage returns a short, generic-shaped description of a parse
// error for the client, distinct from the full wrapped chain that goes
// to the log only (spec.md §7: "the specific cause is logged to stderr,
// never leaked to the client" — we relax this only for parse errors,
// whose messages name no internal state, matching spec.md's own worked
// examples of error text such as "ERR no such command").
func causeMessage(err error) string {
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return "unknown command"
	case errors.Is(err, command.ErrBadArgs):
		return "wrong number or type of arguments"
	default:
		return "malformed request"
	}
}
