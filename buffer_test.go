package patchrt

import "testing"

func TestBufferPoolGetIsZeroed(t *testing.T) {
	pool := NewBufferPool(8)
	b := pool.Get()
	if len(b) != 8 {
		t.Fatalf("Get() returned length %d, want 8", len(b))
	}
	for i, v := range b {
		if v != 0 {
			t.Fatalf("Get() buffer not zeroed at index %d: %v", i, v)
		}
	}
}

func TestBufferPoolReusesAfterPut(t *testing.T) {
	pool := NewBufferPool(4)
	b := pool.Get()
	for i := range b {
		b[i] = float32(i + 1)
	}
	pool.Put(b)
	reused := pool.Get()
	for i, v := range reused {
		if v != 0 {
			t.Fatalf("recycled buffer not zeroed at index %d: %v", i, v)
		}
	}
}

func TestBufferPoolRejectsWrongSize(t *testing.T) {
	pool := NewBufferPool(4)
	wrong := make(Buffer, 8)
	pool.Put(wrong) // must not panic, and must not be handed back out
	got := pool.Get()
	if len(got) != 4 {
		t.Fatalf("Get() returned length %d after rejecting a mismatched Put, want 4", len(got))
	}
}
