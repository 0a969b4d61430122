// Package codec serializes Go structs into fixed-size page buffers and back.
// petrodb mandates no particular on-disk endianness (SPEC_FULL.md §6): the
// only requirement is that whatever the buffer pool writes is what it reads,
// so msgpack — the teacher's own choice — is kept unchanged.
package codec

import (
	"github.com/vmihailenco/msgpack"

	"github.com/relnova/petrodb/storage/disk"
)

// Marshal produces the raw, unpadded msgpack encoding of obj.
func Marshal[T any](obj T) ([]byte, error) {
	return msgpack.Marshal(obj)
}

// Unmarshal decodes raw msgpack bytes into T.
func Unmarshal[T any](data []byte) (T, error) {
	var res T
	err := msgpack.Unmarshal(data, &res)
	return res, err
}

// ToBytes marshals obj into a zero-padded buffer of disk.PAGE_SIZE bytes.
func ToBytes[T any](obj T) ([]byte, error) {
	buf := make([]byte, disk.PAGE_SIZE)

	data, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, err
	}
	if len(data) > disk.PAGE_SIZE {
		panic("encoded page exceeds PAGE_SIZE")
	}
	copy(buf, data)

	return buf, nil
}

// FromBytes unmarshals a page buffer produced by ToBytes back into T.
func FromBytes[T any](data []byte) (T, error) {
	var res T
	if err := msgpack.Unmarshal(data, &res); err != nil {
		return res, err
	}
	return res, nil
}
