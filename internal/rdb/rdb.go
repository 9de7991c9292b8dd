// Package rdb parses the binary on-disk snapshot format used to seed the
// store at startup, grounded on original_source/src/rdb_parser.rs — the
// lineage repo's own rdb.go instead gob-encodes a Go map and never reads
// the real byte-level format, so this package is new code rather than a
// port, written in the lineage's error-handling and logging idiom.
package rdb

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Sentinel errors for the RDB-specific taxonomy in spec.md §7.
var (
	// ErrUnexpectedByte is returned when a top-level section marker is
	// not one of 0xFA, 0xFE, or 0xFF.
	ErrUnexpectedByte = errors.New("rdb: unexpected byte in snapshot")

	// ErrUnknownSpecialEncoding is returned when a length byte claims
	// special-integer encoding (top bits 11) with an unrecognized width.
	ErrUnknownSpecialEncoding = errors.New("rdb: unknown special integer encoding")
)

// Value is one key's parsed snapshot entry. Per spec.md §9, no per-key
// expiry is parsed: each entry is read as a value-type byte, a key and a
// value, so snapshot-loaded keys never expire, and entries that carry an
// expiry marker are not recognized.
type Value struct {
	Value string
}

// RDB is the transient parse result described in spec.md §3: a header
// string, an auxiliary metadata map, and the key/value data loaded from
// the (single, recognized) database section. It exists only to be
// consumed once at startup and then discarded.
type RDB struct {
	Header   string
	Metadata map[string]string
	Data     map[string]Value
}

// Load opens path, parses it as an RDB snapshot, and returns the result.
// Any IO or parse failure is returned to the caller; per spec.md §4.3,
// the caller (not this function) is responsible for swallowing it into
// an empty DB so that a missing or corrupt snapshot never blocks
// startup.
func Load(path string) (*RDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rdb: open %s", path)
	}
	defer f.Close()

	return parse(bufio.NewReader(f))
}

func parse(r *bufio.Reader) (*RDB, error) {
	header := make([]byte, 9)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "rdb: read header")
	}

	out := &RDB{
		Header:   string(header),
		Metadata: make(map[string]string),
		Data:     make(map[string]Value),
	}

	for {
		marker, err := r.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "rdb: read section marker")
		}

		switch marker {
		case 0xFA:
			key, err := readString(r)
			if err != nil {
				return nil, errors.Wrap(err, "rdb: read metadata key")
			}
			val, err := readString(r)
			if err != nil {
				return nil, errors.Wrap(err, "rdb: read metadata value")
			}
			out.Metadata[key] = val

		case 0xFE:
			if err := parseDatabaseSection(r, out); err != nil {
				return nil, err
			}

		case 0xFF:
			return out, nil

		default:
			return nil, errors.Wrapf(ErrUnexpectedByte, "rdb: byte 0x%02X", marker)
		}
	}
}

// parseDatabaseSection handles one 0xFE database-selector section: a db
// index byte (ignored — a single database is recognized), a hash-size
// marker byte (ignored — real snapshots length-encode this, a known
// production gap flagged in spec.md §9), then total/expire key counts as
// plain bytes, followed by that many string-typed key/value pairs.
func parseDatabaseSection(r *bufio.Reader, out *RDB) error {
	if _, err := r.ReadByte(); err != nil { // db index, ignored
		return errors.Wrap(err, "rdb: read db index")
	}
	if _, err := r.ReadByte(); err != nil { // hash-size marker, ignored
		return errors.Wrap(err, "rdb: read hash-size marker")
	}

	totalKeys, err := r.ReadByte()
	if err != nil {
		return errors.Wrap(err, "rdb: read total key count")
	}
	if _, err := r.ReadByte(); err != nil { // expire key count, ignored
		return errors.Wrap(err, "rdb: read expire key count")
	}

	for i := 0; i < int(totalKeys); i++ {
		if _, err := r.ReadByte(); err != nil { // value-type indicator, ignored
			return errors.Wrap(err, "rdb: read value type")
		}
		key, err := readString(r)
		if err != nil {
			return errors.Wrap(err, "rdb: read key")
		}
		val, err := readString(r)
		if err != nil {
			return errors.Wrap(err, "rdb: read value")
		}
		out.Data[key] = Value{Value: val}
	}
	return nil
}
