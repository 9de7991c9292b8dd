package rdb

import (
	"bufio"
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"
)

// readLengthOrInt reads one RDB length/integer-encoded value per
// spec.md §4.3: the top two bits of the lead byte select among a 6-bit
// length, a 14-bit length, a 32-bit big-endian length, or a special
// integer encoding. It returns (length, true, nil) for a length, or
// (value, false, nil) for a special integer.
func readLengthOrInt(r *bufio.Reader) (value int64, isLength bool, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, false, errors.Wrap(err, "rdb: read length byte")
	}

	switch first >> 6 {
	case 0b00:
		return int64(first & 0x3F), true, nil

	case 0b01:
		second, err := r.ReadByte()
		if err != nil {
			return 0, false, errors.Wrap(err, "rdb: read 14-bit length continuation")
		}
		length := (int64(first&0x3F) << 8) | int64(second)
		return length, true, nil

	case 0b10:
		buf := make([]byte, 4)
		if _, err := readFull(r, buf); err != nil {
			return 0, false, errors.Wrap(err, "rdb: read 32-bit length")
		}
		return int64(binary.BigEndian.Uint32(buf)), true, nil

	default: // 0b11: special integer encoding
		switch first & 0x3F {
		case 0:
			b, err := r.ReadByte()
			if err != nil {
				return 0, false, errors.Wrap(err, "rdb: read int8")
			}
			return int64(int8(b)), false, nil

		case 1:
			buf := make([]byte, 2)
			if _, err := readFull(r, buf); err != nil {
				return 0, false, errors.Wrap(err, "rdb: read int16")
			}
			return int64(int16(binary.LittleEndian.Uint16(buf))), false, nil

		case 2:
			buf := make([]byte, 4)
			if _, err := readFull(r, buf); err != nil {
				return 0, false, errors.Wrap(err, "rdb: read int32")
			}
			return int64(int32(binary.LittleEndian.Uint32(buf))), false, nil

		default:
			return 0, false, ErrUnknownSpecialEncoding
		}
	}
}

// readString reads a length- or integer-encoded string per spec.md
// §4.3: length-encoded payloads are read verbatim as UTF-8; integer
// encodings are converted to their decimal string form.
func readString(r *bufio.Reader) (string, error) {
	value, isLength, err := readLengthOrInt(r)
	if err != nil {
		return "", err
	}
	if !isLength {
		return strconv.FormatInt(value, 10), nil
	}

	buf := make([]byte, value)
	if _, err := readFull(r, buf); err != nil {
		return "", errors.Wrap(err, "rdb: read string payload")
	}
	return string(buf), nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
