package command

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/akashmaji946/resp-kv/internal/resp"
	"github.com/akashmaji946/resp-kv/internal/store"
)

// Execute runs a parsed Command against s and produces the reply Value,
// per the shapes spec.md §4.4 enumerates for each command.
func Execute(c Command, s *store.Store) resp.Value {
	switch c.Kind {
	case Ping:
		return resp.NewSimpleString("PONG")

	case Echo:
		return resp.NewBulkString(c.EchoName)

	case Get:
		if v, ok := s.DB.Get(c.Key); ok {
			return resp.NewBulkString(v)
		}
		return resp.NullBulkString()

	case Set:
		s.DB.Set(c.Key, c.Value, expiryInstant(c))
		return resp.NewSimpleString("OK")

	case ConfigCmd:
		return executeConfig(c, s)

	case Keys:
		return resp.StringArray(s.DB.Keys(c.Pattern))

	case Info:
		return executeInfo(c, s)

	default:
		return resp.NewSimpleError("Something went wrong")
	}
}

// expiryInstant converts a SET command's expiry unit/count into the
// absolute timestamp store.DB.Set expects, per spec.md §4.4: "convert an
// optional duration into an absolute timestamp (now + duration) before
// storing". A zero time.Time means no expiry.
func expiryInstant(c Command) time.Time {
	switch c.ExpiryUnit {
	case PX:
		return time.Now().Add(time.Duration(c.ExpiryN) * time.Millisecond)
	case EX:
		return time.Now().Add(time.Duration(c.ExpiryN) * time.Second)
	default:
		return time.Time{}
	}
}

func executeConfig(c Command, s *store.Store) resp.Value {
	var key, val string
	switch c.ConfigName {
	case ConfigDir:
		key, val = "dir", s.Config.Dir()
	case ConfigDbFileName:
		key, val = "dbfilename", s.Config.DbFileName()
	}

	if c.ConfigOp == ConfigSet {
		// CONFIG SET is accepted syntactically but is a deliberate
		// no-op, per spec.md §3/§4.4.
		return resp.NullBulkString()
	}
	return resp.NewArray(resp.NewBulkString(key), resp.NewBulkString(val))
}

func executeInfo(c Command, s *store.Store) resp.Value {
	switch c.InfoKind {
	case InfoReplication:
		return resp.NewBulkString(roleLine(s))

	case InfoServer:
		return resp.NewBulkString(serverSection(s))

	case InfoMemory:
		return resp.NewBulkString(memorySection())

	default: // InfoAll: preserves the "always role:master" quirk, spec.md §9.
		return resp.NewBulkString("role:master")
	}
}

func roleLine(s *store.Store) string {
	if s.Config.IsMaster() {
		return "role:master"
	}
	return "role:slave"
}

// serverSection renders the additive INFO server payload (SPEC_FULL.md
// §4.6): process id, bind port, and uptime, a trimmed rendition of the
// lineage repo's own info.go "Server" category.
func serverSection(s *store.Store) string {
	return fmt.Sprintf(
		"process_id:%d\r\ntcp_port:%d\r\nuptime_in_seconds:%d",
		os.Getpid(), s.Config.Port(), int64(s.Config.Uptime().Seconds()),
	)
}

// memorySection renders the additive INFO memory payload (SPEC_FULL.md
// §4.6), sourced from the lineage repo's own gopsutil dependency. When
// the host memory can't be read, the field is reported as unavailable
// rather than failing the command.
func memorySection() string {
	total := "unavailable"
	if vm, err := mem.VirtualMemory(); err == nil {
		total = strconv.FormatUint(vm.Total, 10)
	}
	return "total_system_memory:" + total
}
