// internal/classfile/classfile.go
package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic is the leading u4 of every class file
const Magic = 0xCAFEBABE

// AccInterface marks interfaces and annotation types in access_flags
const AccInterface = 0x0200

var (
	// ErrBadMagic is returned when data does not start with 0xCAFEBABE
	ErrBadMagic = errors.New("not a class file")

	// ErrTruncated is returned when the header ends before the access flags
	ErrTruncated = errors.New("truncated class file")
)

// Header holds the class file fields preceding the field table
type Header struct {
	MinorVersion uint16
	MajorVersion uint16
	PoolCount    uint16
	AccessFlags  uint16
}

// IsInterface reports whether the flags declare an interface (annotations included)
func (h Header) IsInterface() bool {
	return h.AccessFlags&AccInterface != 0
}

// ParseHeader reads the version, skips the constant pool and returns the class access flags
func ParseHeader(data []byte) (Header, error) {
	var h Header
	p := parser{data: data}

	magic, err := p.u4()
	if err != nil {
		return h, err
	}
	if magic != Magic {
		return h, ErrBadMagic
	}

	if h.MinorVersion, err = p.u2(); err != nil {
		return h, err
	}
	if h.MajorVersion, err = p.u2(); err != nil {
		return h, err
	}
	if h.PoolCount, err = p.u2(); err != nil {
		return h, err
	}

	// Pool indices run from 1 to count-1; long and double take two slots
	for i := 1; i < int(h.PoolCount); i++ {
		tag, err := p.u1()
		if err != nil {
			return h, err
		}

		switch tag {
		case 1: // Utf8
			n, err := p.u2()
			if err != nil {
				return h, err
			}
			err = p.skip(int(n))
			if err != nil {
				return h, err
			}
		case 7, 8, 16, 19, 20: // Class, String, MethodType, Module, Package
			err = p.skip(2)
		case 15: // MethodHandle
			err = p.skip(3)
		case 3, 4, 9, 10, 11, 12, 17, 18: // Integer, Float, refs, NameAndType, Dynamic, InvokeDynamic
			err = p.skip(4)
		case 5, 6: // Long, Double
			err = p.skip(8)
			i++
		default:
			return h, fmt.Errorf("constant pool entry %d: unknown tag %d", i, tag)
		}
		if err != nil {
			return h, err
		}
	}

	if h.AccessFlags, err = p.u2(); err != nil {
		return h, err
	}
	return h, nil
}

// IsInterface reports whether data is a class file declaring an interface.
// Unparseable data is reported as not an interface.
func IsInterface(data []byte) bool {
	h, err := ParseHeader(data)
	return err == nil && h.IsInterface()
}

type parser struct {
	data []byte
	off  int
}

func (p *parser) skip(n int) error {
	if n < 0 || p.off+n > len(p.data) {
		return ErrTruncated
	}
	p.off += n
	return nil
}

func (p *parser) u1() (uint8, error) {
	if p.off+1 > len(p.data) {
		return 0, ErrTruncated
	}
	v := p.data[p.off]
	p.off++
	return v, nil
}

func (p *parser) u2() (uint16, error) {
	if p.off+2 > len(p.data) {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint16(p.data[p.off:])
	p.off += 2
	return v, nil
}

func (p *parser) u4() (uint32, error) {
	if p.off+4 > len(p.data) {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint32(p.data[p.off:])
	p.off += 4
	return v, nil
}
