package gcr

import "testing"

func TestFindSyncLocatesRunAndAdvancesPastIt(t *testing.T) {
	buf := []byte{0x52, 0x52, 0xff, 0xff, 0xff, 0x08, 0x00}
	pos, ok := FindSync(buf, 0, len(buf))
	if !ok {
		t.Fatalf("FindSync() ok = false, want true")
	}
	if pos != 5 {
		t.Errorf("FindSync() pos = %d, want 5 (first byte past the 0xff run)", pos)
	}
	if buf[pos] != 0x08 {
		t.Errorf("FindSync() left pos pointing at %#x, want the byte right after the run", buf[pos])
	}
}

func TestFindSyncNoRunBeforeEnd(t *testing.T) {
	buf := []byte{0x52, 0x52, 0x08, 0x00}
	pos, ok := FindSync(buf, 0, len(buf))
	if ok {
		t.Fatalf("FindSync() ok = true, want false (no 0xff run present)")
	}
	if pos != len(buf) {
		t.Errorf("FindSync() pos = %d, want %d", pos, len(buf))
	}
}

func TestFindSyncRunEndingAtBufferEnd(t *testing.T) {
	buf := []byte{0x52, 0xff, 0xff}
	pos, ok := FindSync(buf, 0, len(buf))
	if ok {
		t.Errorf("FindSync() ok = true, want false: the run runs to end with no trailing byte to report")
	}
	if pos != len(buf) {
		t.Errorf("FindSync() pos = %d, want %d", pos, len(buf))
	}
}

func TestFindSyncRespectsStartingPos(t *testing.T) {
	buf := []byte{0xff, 0xff, 0x01, 0xff, 0xff, 0xff, 0x02}
	pos, ok := FindSync(buf, 2, len(buf))
	if !ok {
		t.Fatalf("FindSync() ok = false, want true")
	}
	if pos != 6 {
		t.Errorf("FindSync() pos = %d, want 6, skipping the run before the starting pos", pos)
	}
}
