// Package command parses an argument vector into the typed Command ADT
// from spec.md §3 and executes it against a store.Store, grounded on
// original_source/src/command.rs and src/command/{config,info,keys,set}.rs,
// translated from Rust's one-file-per-command module split into a single
// Go package the way the lineage repo's handler_*.go files are organized
// by command family rather than by file-per-command.
package command

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Sentinel errors for the command-layer taxonomy in spec.md §7.
var (
	// ErrBadArgs is returned when a command's argument grammar isn't met:
	// a missing argument, or one that doesn't parse (e.g. a non-numeric
	// expiry count).
	ErrBadArgs = errors.New("command: bad arguments")

	// ErrUnknownCommand is returned for any command name outside the
	// enumerated set.
	ErrUnknownCommand = errors.New("command: unknown command")
)

// Kind discriminates the Command ADT's variants.
type Kind int

const (
	Ping Kind = iota
	Echo
	Get
	Set
	ConfigCmd
	Keys
	Info
)

// ExpiryUnit distinguishes SET's PX (milliseconds) from EX (seconds).
type ExpiryUnit int

const (
	NoExpiry ExpiryUnit = iota
	PX
	EX
)

// ConfigOp discriminates CONFIG GET from CONFIG SET.
type ConfigOp int

const (
	ConfigGet ConfigOp = iota
	ConfigSet
)

// ConfigName discriminates the two recognized CONFIG names.
type ConfigName int

const (
	ConfigDir ConfigName = iota
	ConfigDbFileName
)

// InfoKind discriminates the recognized INFO sections. Server and Memory
// are additive (SPEC_FULL.md §4.6); Replication and All are exactly the
// two spec.md §3/§4.4 name.
type InfoKind int

const (
	InfoAll InfoKind = iota
	InfoReplication
	InfoServer
	InfoMemory
)

// Command is the typed request ADT from spec.md §3. Exactly one set of
// fields is meaningful, selected by Kind.
type Command struct {
	Kind Kind

	// Echo
	EchoName string

	// Get, Set
	Key string

	// Set
	Value      string
	ExpiryUnit ExpiryUnit
	ExpiryN    int64 // meaningful only when ExpiryUnit != NoExpiry

	// ConfigCmd
	ConfigOp   ConfigOp
	ConfigName ConfigName

	// Keys
	Pattern string

	// Info
	InfoKind InfoKind
}

// Parse dispatches on the first argument (case-insensitive) and applies
// each command's own argument grammar, per spec.md §4.4.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, errors.Wrap(ErrBadArgs, "command: empty argument vector")
	}

	name := strings.ToUpper(args[0])
	rest := args[1:]

	switch name {
	case "PING":
		return Command{Kind: Ping}, nil

	case "ECHO":
		return parseEcho(rest)

	case "GET":
		return parseGet(rest)

	case "SET":
		return parseSet(rest)

	case "CONFIG":
		return parseConfig(rest)

	case "KEYS":
		return parseKeys(rest)

	case "INFO":
		return parseInfo(rest)

	default:
		return Command{}, errors.Wrapf(ErrUnknownCommand, "command: %q", args[0])
	}
}

func parseEcho(args []string) (Command, error) {
	if len(args) < 1 {
		return Command{}, errors.Wrap(ErrBadArgs, "ECHO requires a 'name' argument")
	}
	return Command{Kind: Echo, EchoName: args[0]}, nil
}

func parseGet(args []string) (Command, error) {
	if len(args) < 1 {
		return Command{}, errors.Wrap(ErrBadArgs, "GET requires a 'key' argument")
	}
	return Command{Kind: Get, Key: args[0]}, nil
}

func parseSet(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, errors.Wrap(ErrBadArgs, "SET requires 'key' and 'value' arguments")
	}

	cmd := Command{Kind: Set, Key: args[0], Value: args[1]}
	if len(args) < 4 {
		return cmd, nil
	}

	switch args[2] {
	case "PX":
		cmd.ExpiryUnit = PX
	case "EX":
		cmd.ExpiryUnit = EX
	default:
		// an unrecognized unit token is simply ignored, matching
		// original_source/src/command.rs: only "PX"/"EX" are matched,
		// anything else falls through to no expiry.
		return cmd, nil
	}

	n, err := cast.ToInt64E(args[3])
	if err != nil {
		return Command{}, errors.Wrap(ErrBadArgs, "SET expiry count must be an integer")
	}
	cmd.ExpiryN = n
	return cmd, nil
}

func parseConfig(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, errors.Wrap(ErrBadArgs, "CONFIG requires 'op' and 'name' arguments")
	}

	cmd := Command{Kind: ConfigCmd}
	switch args[0] {
	case "GET":
		cmd.ConfigOp = ConfigGet
	case "SET":
		cmd.ConfigOp = ConfigSet
	default:
		return Command{}, errors.Wrapf(ErrBadArgs, "CONFIG: invalid op %q", args[0])
	}

	switch args[1] {
	case "dir":
		cmd.ConfigName = ConfigDir
	case "dbfilename":
		cmd.ConfigName = ConfigDbFileName
	default:
		return Command{}, errors.Wrapf(ErrBadArgs, "CONFIG: invalid name %q", args[1])
	}

	return cmd, nil
}

func parseKeys(args []string) (Command, error) {
	if len(args) < 1 {
		return Command{}, errors.Wrap(ErrBadArgs, "KEYS requires a 'pattern' argument")
	}
	return Command{Kind: Keys, Pattern: args[0]}, nil
}

func parseInfo(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Kind: Info, InfoKind: InfoAll}, nil
	}

	switch strings.ToLower(args[0]) {
	case "replication":
		return Command{Kind: Info, InfoKind: InfoReplication}, nil
	case "server":
		return Command{Kind: Info, InfoKind: InfoServer}, nil
	case "memory":
		return Command{Kind: Info, InfoKind: InfoMemory}, nil
	default:
		// an unrecognized section falls back to "all", matching INFO's
		// permissive single-optional-argument grammar (SPEC_FULL.md §4.6).
		return Command{Kind: Info, InfoKind: InfoAll}, nil
	}
}

