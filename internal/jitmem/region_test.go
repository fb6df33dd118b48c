package jitmem

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestNewFillsTrapBytes(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer r.Close()

	if got, want := r.Capacity(), os.Getpagesize(); got != want {
		t.Fatalf("Capacity() = %d, want %d", got, want)
	}
	if got, want := r.PageSize(), os.Getpagesize(); got != want {
		t.Fatalf("PageSize() = %d, want %d", got, want)
	}
	for _, i := range []int{0, 1, r.Capacity() / 2, r.Capacity() - 1} {
		b, ok := r.At(i)
		if !ok {
			t.Fatalf("At(%d) reported out of range", i)
		}
		if b != 0xCC {
			t.Fatalf("At(%d) = %#x, want the trap byte 0xcc", i, b)
		}
	}
}

func TestNewRejectsNonPositivePages(t *testing.T) {
	for _, pages := range []int{0, -1} {
		if _, err := New(pages); err == nil {
			t.Errorf("New(%d) succeeded, want error", pages)
		}
	}
}

func TestFromCodePageMath(t *testing.T) {
	pageSize := os.Getpagesize()
	tests := []struct {
		name  string
		size  int
		pages int
	}{
		{"one_byte", 1, 1},
		{"exact_page", pageSize, 1},
		{"page_plus_one", pageSize + 1, 2},
		{"two_pages", 2 * pageSize, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := FromCode(make([]byte, tc.size))
			if err != nil {
				t.Fatalf("FromCode returned error: %v", err)
			}
			defer r.Close()

			if got := r.Pages(); got != tc.pages {
				t.Fatalf("Pages() = %d, want %d", got, tc.pages)
			}
		})
	}
}

func TestFromCodeRejectsEmpty(t *testing.T) {
	if _, err := FromCode(nil); err == nil {
		t.Fatal("FromCode(nil) succeeded, want error")
	}
}

func TestLoadCopiesAtOffsetZero(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer r.Close()

	code := []byte{0x55, 0x48, 0x89, 0xE5, 0x5D, 0xC3}
	if err := r.Load(code); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	for i, want := range code {
		got, ok := r.At(i)
		if !ok || got != want {
			t.Fatalf("At(%d) = %#x, %v, want %#x", i, got, ok, want)
		}
	}
	if b, _ := r.At(len(code)); b != 0xCC {
		t.Fatalf("byte after code = %#x, want the trap byte 0xcc", b)
	}
}

func TestLoadTooLargeLeavesRegionUntouched(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer r.Close()

	big := make([]byte, r.Capacity()+1)
	for i := range big {
		big[i] = 0x90
	}
	if err := r.Load(big); !errors.Is(err, ErrCodeTooLarge) {
		t.Fatalf("Load error = %v, want code too large", err)
	}
	if b, _ := r.At(0); b != 0xCC {
		t.Fatalf("At(0) after failed load = %#x, want the trap byte 0xcc", b)
	}
}

func TestCheckedAccessorBounds(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer r.Close()

	if !r.Set(0, 0x90) {
		t.Fatal("Set(0) reported out of range")
	}
	if b, ok := r.At(0); !ok || b != 0x90 {
		t.Fatalf("At(0) = %#x, %v, want 0x90, true", b, ok)
	}

	if r.Set(r.Capacity(), 0x90) {
		t.Error("Set(capacity) succeeded, want out of range")
	}
	if _, ok := r.At(r.Capacity()); ok {
		t.Error("At(capacity) succeeded, want out of range")
	}
	if _, ok := r.At(-1); ok {
		t.Error("At(-1) succeeded, want out of range")
	}
}

func TestUncheckedAccessors(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer r.Close()

	r.SetUnchecked(5, 0x90)
	if got := r.AtUnchecked(5); got != 0x90 {
		t.Fatalf("AtUnchecked(5) = %#x, want 0x90", got)
	}
	if b, _ := r.At(5); b != 0x90 {
		t.Fatalf("At(5) = %#x, want the unchecked write to land", b)
	}
}

func TestCloseReleasesOnce(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := r.Close(); !errors.Is(err, ErrReleased) {
		t.Fatalf("second Close error = %v, want already released", err)
	}
}

func TestAccessAfterClosePanics(t *testing.T) {
	r, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("At on a released region did not panic")
		}
	}()
	r.At(0)
}

func TestDumpFormat(t *testing.T) {
	r, err := FromCode([]byte{0x55, 0x48, 0x89, 0xE5, 0xB0, 0x04, 0x5D, 0xC3})
	if err != nil {
		t.Fatalf("FromCode returned error: %v", err)
	}
	defer r.Close()

	var buf strings.Builder
	if err := r.Dump(&buf); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "\n>>>>> JIT memory - page 0 @ 0x") {
		t.Fatalf("Dump output does not start with a page header:\n%s", out)
	}
	if !strings.Contains(out, "55 48 89 e5 b0 04 5d c3 cc ") {
		t.Fatalf("Dump output missing the loaded code bytes:\n%s", out)
	}

	// 16 bytes per line after the header, truncated well short of a page.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 3 {
		t.Fatalf("Dump output too short:\n%s", out)
	}
	if got := strings.Fields(lines[2]); len(got) != 16 {
		t.Fatalf("hex line holds %d bytes, want 16:\n%s", len(got), lines[2])
	}
}
