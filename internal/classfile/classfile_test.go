// internal/classfile/classfile_test.go
package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildClass assembles a minimal class file header with a constant pool
// exercising every entry width, followed by the given access flags.
func buildClass(flags uint16) []byte {
	var buf bytes.Buffer
	w := func(v any) { binary.Write(&buf, binary.BigEndian, v) }

	w(uint32(Magic))
	w(uint16(0))  // minor
	w(uint16(52)) // major (Java 8)

	// Pool: 1 Utf8, 2 Class, 3 Long (takes 3 and 4), 5 MethodHandle, 6 NameAndType
	w(uint16(7))
	w(uint8(1))
	w(uint16(3))
	buf.WriteString("Foo")
	w(uint8(7))
	w(uint16(1))
	w(uint8(5))
	w(uint64(42))
	w(uint8(15))
	w(uint8(1))
	w(uint16(2))
	w(uint8(12))
	w(uint16(1))
	w(uint16(1))

	w(flags)
	w(uint16(2)) // this_class
	return buf.Bytes()
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name      string
		flags     uint16
		wantIface bool
	}{
		{"public class", 0x0021, false},
		{"abstract class", 0x0421, false},
		{"interface", AccInterface | 0x0400 | 0x0001, true},
		{"annotation", 0x2000 | AccInterface | 0x0400, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := buildClass(tc.flags)
			h, err := ParseHeader(data)
			if err != nil {
				t.Fatalf("ParseHeader failed: %v", err)
			}
			if h.MajorVersion != 52 {
				t.Errorf("MajorVersion = %d, want 52", h.MajorVersion)
			}
			if h.AccessFlags != tc.flags {
				t.Errorf("AccessFlags = %#x, want %#x", h.AccessFlags, tc.flags)
			}
			if IsInterface(data) != tc.wantIface {
				t.Errorf("IsInterface() = %v, want %v", IsInterface(data), tc.wantIface)
			}
		})
	}
}

func TestParseHeaderErrors(t *testing.T) {
	valid := buildClass(AccInterface)

	if _, err := ParseHeader([]byte("PK\x03\x04not a class")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Expected ErrBadMagic, got %v", err)
	}

	for _, cut := range []int{0, 3, 9, 14, len(valid) - 3} {
		if _, err := ParseHeader(valid[:cut]); !errors.Is(err, ErrTruncated) {
			t.Errorf("cut at %d: expected ErrTruncated, got %v", cut, err)
		}
		if IsInterface(valid[:cut]) {
			t.Errorf("cut at %d: truncated data must not be an interface", cut)
		}
	}

	bad := append([]byte(nil), valid[:10]...)
	bad = append(bad, 99) // unknown pool tag
	if _, err := ParseHeader(bad); err == nil {
		t.Error("Expected error for unknown constant pool tag")
	}
}
