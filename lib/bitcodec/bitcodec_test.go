package bitcodec

import "testing"

func TestUERoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 2, 3, 7, 8, 255, 256, 65535}
	for _, v := range cases {
		w := NewWriter(nil)
		if err := w.WriteUE("value", v, 0, 1<<31-1); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		w.Flush()

		r := NewReader(nil, w.Bytes())
		got, err := r.UE("value", 0, 1<<31-1)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d, got %d", v, got)
		}
	}
}

func TestSERoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 100, -100}
	for _, v := range cases {
		w := NewWriter(nil)
		if err := w.WriteSE("value", v, -1000, 1000); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		w.Flush()

		r := NewReader(nil, w.Bytes())
		got, err := r.SE("value", -1000, 1000)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d, got %d", v, got)
		}
	}
}

func TestURangeViolation(t *testing.T) {
	w := NewWriter(nil)
	if err := w.WriteU(4, "value", 9, 0, 8); err == nil {
		t.Fatal("expected range violation on write")
	}

	w2 := NewWriter(nil)
	if err := w2.WriteU(4, "value", 9, 0, 15); err != nil {
		t.Fatalf("write: %v", err)
	}
	w2.Flush()
	r := NewReader(nil, w2.Bytes())
	if _, err := r.U(4, "value", 0, 8); err == nil {
		t.Fatal("expected range violation on read")
	}
}

func TestLERoundTrip(t *testing.T) {
	w := NewWriter(nil)
	if err := w.WriteLE(2, "size", 0xabcd); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Flush()
	r := NewReader(nil, w.Bytes())
	got, err := r.LE(2, "size")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 0xabcd {
		t.Fatalf("got %#x", got)
	}
}

func TestSSignMagnitudeRoundTrip(t *testing.T) {
	cases := []int32{0, 5, -5, 63, -63}
	for _, v := range cases {
		w := NewWriter(nil)
		if err := w.WriteS(6, "delta", v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		w.Flush()
		r := NewReader(nil, w.Bytes())
		got, err := r.S(6, "delta")
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d, got %d", v, got)
		}
	}
}

func TestUETruncated(t *testing.T) {
	r := NewReader(nil, []byte{0x08}) // 0000 1000: four leading zeros, needs 4 suffix bits but only 3 remain
	if _, err := r.UE("value", 0, 1<<31-1); err == nil {
		t.Fatal("expected truncated error")
	}
}
