package mangolookup

import (
	"testing"

	"github.com/mihaimaganu17/mango"
)

func TestLookup(t *testing.T) {
	op, ok := Op("mov")
	if !ok || op != mango.MOV {
		t.Fatalf("failed to find mov: %v %v", op, ok)
	}
	op, ok = Op("MOV")
	if !ok || op != mango.MOV {
		t.Fatalf("failed to find MOV: %v %v", op, ok)
	}
	if _, ok = Op("vfmadd132pd"); ok {
		t.Fatal("found a mnemonic outside the covered subset")
	}
	if _, ok = Op("an-absurdly-long-mnemonic-name"); ok {
		t.Fatal("found an over-length mnemonic")
	}
}
