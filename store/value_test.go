package store_test

import (
	"testing"

	"github.com/hybridx-exchange/graph-node/store"
)

func TestBytesFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "0xdeadbeef", want: "0xdeadbeef"},
		{in: "deadbeef", want: "0xdeadbeef"},
		{in: "0xDEADBEEF", want: "0xdeadbeef"},
		{in: "0x", want: "0x"},
		{in: "0xabc", wantErr: true},
		{in: "0xgg", wantErr: true},
		{in: "hello", wantErr: true},
	}
	for _, test := range tests {
		b, err := store.BytesFromString(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("BytesFromString(%q): expected error", test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("BytesFromString(%q): %v", test.in, err)
			continue
		}
		if b.String() != test.want {
			t.Errorf("BytesFromString(%q) = %s, want %s", test.in, b, test.want)
		}
	}
}

func TestEntityKeyString(t *testing.T) {
	key := store.EntityKey{EntityType: "Band", EntityID: "b1"}
	if got := key.String(); got != "Band[b1]" {
		t.Errorf("EntityKey.String() = %q", got)
	}
}
