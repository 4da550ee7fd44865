package cuuid

import (
	"bytes"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	uuid, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if uuid.Version() != VersionRandom {
		t.Errorf("Version() = %v, want %v", uuid.Version(), VersionRandom)
	}
	if uuid.Variant() != VariantRFC4122 {
		t.Errorf("Variant() = %v, want %v", uuid.Variant(), VariantRFC4122)
	}
}

func TestNewV4(t *testing.T) {
	uuid, err := NewV4()
	if err != nil {
		t.Fatalf("NewV4() error = %v", err)
	}
	if uuid.Version() != VersionRandom {
		t.Errorf("Version() = %v, want %v", uuid.Version(), VersionRandom)
	}
}

func TestNew_VersionInvariantAndUniqueness(t *testing.T) {
	const n = 10000

	seen := make(map[UUID]struct{}, n)
	for i := 0; i < n; i++ {
		uuid, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if uuid.Version() != 4 {
			t.Fatalf("Version() = %d, want 4", uuid.Version())
		}
		if uuid.Variant() != VariantRFC4122 {
			t.Fatalf("Variant() = %v, want %v", uuid.Variant(), VariantRFC4122)
		}

		if _, dup := seen[uuid]; dup {
			t.Fatalf("duplicate UUID generated: %v", uuid)
		}
		seen[uuid] = struct{}{}
	}
}

func TestGenerator_DeterministicReader(t *testing.T) {
	// All-zero entropy leaves only the forced version/variant bits
	gen := NewGeneratorWithReader(bytes.NewReader(make([]byte, 16)))

	uuid, err := gen.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := UUID{6: 0x40, 8: 0x80}
	if uuid != want {
		t.Errorf("New() = %v, want %v", uuid, want)
	}
	if got := uuid.String(); got != "00000000-0000-4000-8000-000000000000" {
		t.Errorf("String() = %v", got)
	}
	if uuid.Version() != 4 {
		t.Errorf("Version() = %d, want 4", uuid.Version())
	}
}

func TestGenerator_AllOnesEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xFF}, 16)
	gen := NewGeneratorWithReader(bytes.NewReader(entropy))

	uuid, err := gen.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Only the masked bits may differ from the entropy
	if uuid[6] != 0x4F {
		t.Errorf("byte 6 = %#02x, want 0x4f", uuid[6])
	}
	if uuid[8] != 0xBF {
		t.Errorf("byte 8 = %#02x, want 0xbf", uuid[8])
	}
	for _, i := range []int{0, 1, 2, 3, 4, 5, 7, 9, 10, 11, 12, 13, 14, 15} {
		if uuid[i] != 0xFF {
			t.Errorf("byte %d = %#02x, want 0xff", i, uuid[i])
		}
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestGenerator_EntropyFailure(t *testing.T) {
	wantErr := errors.New("entropy exhausted")
	gen := NewGeneratorWithReader(failingReader{err: wantErr})

	uuid, err := gen.New()
	if !errors.Is(err, wantErr) {
		t.Errorf("New() error = %v, want %v", err, wantErr)
	}
	if !uuid.IsNil() {
		t.Errorf("New() returned non-nil UUID on error: %v", uuid)
	}
}

func TestMust(t *testing.T) {
	uuid := Must(New())
	if uuid.IsNil() {
		t.Error("Must(New()) returned nil UUID")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(Nil, errors.New("boom"))
}
