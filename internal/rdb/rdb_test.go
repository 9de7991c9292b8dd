package rdb_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/resp-kv/internal/rdb"
)

// buildSnapshot hand-constructs a minimal RDB byte string encoding the
// given key/value pairs in one database section, mirroring spec.md §8's
// "RDB round-trip on the read side" property test.
func buildSnapshot(t *testing.T, pairs map[string]string) []byte {
	t.Helper()
	var b strings.Builder
	b.WriteString("REDIS0011")

	b.WriteByte(0xFE) // database selector
	b.WriteByte(0x00) // db index
	b.WriteByte(0x00) // hash-size marker
	b.WriteByte(byte(len(pairs)))
	b.WriteByte(0x00) // expire key count

	for k, v := range pairs {
		b.WriteByte(0x00) // value-type indicator: string
		writeLengthString(&b, k)
		writeLengthString(&b, v)
	}

	b.WriteByte(0xFF)
	return []byte(b.String())
}

func writeLengthString(b *strings.Builder, s string) {
	// 6-bit length encoding: top bits 00.
	b.WriteByte(byte(len(s)) & 0x3F)
	b.WriteString(s)
}

func writeToTempFile(t *testing.T, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.rdb")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	pairs := map[string]string{"foo": "1", "bar": "22", "cat": "333"}
	path := writeToTempFile(t, buildSnapshot(t, pairs))

	got, err := rdb.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "REDIS0011", got.Header)
	assert.Len(t, got.Data, len(pairs))
	for k, v := range pairs {
		assert.Equal(t, v, got.Data[k].Value)
	}
}

func TestLoadWithMetadata(t *testing.T) {
	var b strings.Builder
	b.WriteString("REDIS0011")
	b.WriteByte(0xFA)
	writeLengthString(&b, "redis-ver")
	writeLengthString(&b, "7.0")
	b.WriteByte(0xFF)

	path := writeToTempFile(t, []byte(b.String()))
	got, err := rdb.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7.0", got.Metadata["redis-ver"])
}

func TestLoadUnexpectedByteFails(t *testing.T) {
	var b strings.Builder
	b.WriteString("REDIS0011")
	b.WriteByte(0xAB) // not a recognized marker

	path := writeToTempFile(t, []byte(b.String()))
	_, err := rdb.Load(path)
	assert.ErrorIs(t, err, rdb.ErrUnexpectedByte)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := rdb.Load(filepath.Join(t.TempDir(), "does-not-exist.rdb"))
	assert.Error(t, err)
}

func TestLengthEncodingSixBit(t *testing.T) {
	s, err := rdbReadString(t, append([]byte{0x05}, "hello"...))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestLengthEncodingFourteenBit(t *testing.T) {
	// top bits 01: low 6 bits of first byte + all of second byte.
	payload := strings.Repeat("x", 300)
	first := byte(0x40) | byte((len(payload)>>8)&0x3F)
	second := byte(len(payload) & 0xFF)
	s, err := rdbReadString(t, append([]byte{first, second}, payload...))
	require.NoError(t, err)
	assert.Equal(t, payload, s)
}

func TestLengthEncodingThirtyTwoBit(t *testing.T) {
	payload := "abc"
	header := []byte{0x80, 0x00, 0x00, 0x00, 0x03} // top bits 10, then big-endian u32 length=3
	s, err := rdbReadString(t, append(header, payload...))
	require.NoError(t, err)
	assert.Equal(t, payload, s)
}

func TestLengthEncodingInt8(t *testing.T) {
	s, err := rdbReadString(t, []byte{0xC0, 0x7B}) // 123
	require.NoError(t, err)
	assert.Equal(t, "123", s)
}

func TestLengthEncodingUnknownSpecialFails(t *testing.T) {
	_, err := rdbReadString(t, []byte{0xFF})
	assert.ErrorIs(t, err, rdb.ErrUnknownSpecialEncoding)
}

// rdbReadString exercises the package's unexported string-reading path
// indirectly via a single-key snapshot, since length.go's helpers are
// unexported: it wraps the given bytes as the value half of a minimal
// one-key database section and asks Load to decode it.
func rdbReadString(t *testing.T, valueEncoding []byte) (string, error) {
	t.Helper()
	var b strings.Builder
	b.WriteString("REDIS0011")
	b.WriteByte(0xFE)
	b.WriteByte(0x00)
	b.WriteByte(0x00)
	b.WriteByte(0x01) // one key
	b.WriteByte(0x00)
	b.WriteByte(0x00) // value type
	// key: single-char length-encoded "k"
	b.WriteByte(0x01)
	b.WriteByte('k')
	// value: the caller-supplied length/int encoding under test
	b.Write(valueEncoding)
	b.WriteByte(0xFF)

	got, err := rdb.Load(writeToTempFile(t, []byte(b.String())))
	if err != nil {
		return "", err
	}
	return got.Data["k"].Value, nil
}
