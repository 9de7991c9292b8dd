// Command resp-kv is the entry glue described in spec.md §6: it wires the
// CLI flags, the optional RDB snapshot load, and the connection
// dispatcher together. Grounded on the lineage repo's main.go startup
// sequence and signal handling, with flag parsing replaced by
// github.com/spf13/cobra (backed by github.com/spf13/pflag) in place of
// the lineage's hand-rolled redis.conf file reader — the idiomatic Go
// analogue of original_source/src/main.rs's clap-derived Args struct.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/resp-kv/internal/logging"
	"github.com/akashmaji946/resp-kv/internal/rdb"
	"github.com/akashmaji946/resp-kv/internal/server"
	"github.com/akashmaji946/resp-kv/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir, dbFileName, replicaOf string
	var port int

	cmd := &cobra.Command{
		Use:   "resp-kv",
		Short: "A single-node, in-memory, RESP2-compatible key-value server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dir, dbFileName, replicaOf, port)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", "", "directory containing the RDB snapshot to load at startup")
	flags.StringVar(&dbFileName, "dbfilename", "", "RDB snapshot file name")
	flags.IntVar(&port, "port", 6379, "TCP port to bind")
	flags.StringVar(&replicaOf, "replicaof", "", "address of the master this server replicates from; empty means master role")

	return cmd
}

func run(dir, dbFileName, replicaOf string, port int) error {
	log := logging.New()
	defer log.Sync()

	cfg := store.NewConfig(dir, dbFileName, replicaOf, port)
	s := store.New(cfg)

	loadSnapshot(s, log)

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	srv := server.New(addr, s, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("shutdown signal received")
		// ListenAndServe's underlying listener is closed by process
		// exit; there is no interactive shutdown path required by
		// spec.md §6, so a received signal simply ends the process.
		os.Exit(0)
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Errorf("fatal: %v", err)
		return err
	}
	return nil
}

// loadSnapshot loads the configured RDB snapshot into s, if one is
// configured. Per spec.md §4.3/§7, any failure (missing directory, bad
// file, parse error) is logged and swallowed: the server always starts,
// falling back to an empty DB.
func loadSnapshot(s *store.Store, log logging.Logger) {
	if s.Config.Dir() == "" || s.Config.DbFileName() == "" {
		return
	}

	path := filepath.Join(s.Config.Dir(), s.Config.DbFileName())
	snapshot, err := rdb.Load(path)
	if err != nil {
		log.Warnf("rdb: failed to load %s, starting with an empty database: %v", path, err)
		return
	}

	for key, v := range snapshot.Data {
		// snapshot-loaded keys never expire: the loader parses no
		// per-key expiry (the spec.md §9 gap), so none is attached.
		s.DB.Set(key, v.Value, time.Time{})
	}
	log.Infof("rdb: loaded %d keys from %s", len(snapshot.Data), path)
}
