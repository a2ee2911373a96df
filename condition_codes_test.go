package mango

import "testing"

func TestJccOp(t *testing.T) {
	cases := []struct {
		cc ConditionCode
		op Op
	}{
		{CCOverflow, JO}, {CCNoOverflow, JNO},
		{CCUnsignedLT, JB}, {CCUnsignedGTE, JNB},
		{CCEq, JZ}, {CCNeq, JNZ},
		{CCUnsignedLTE, JBE}, {CCUnsignedGT, JNBE},
		{CCSign, JS}, {CCNoSign, JNS},
		{CCParity, JP}, {CCNoParity, JNP},
		{CCSignedLT, JL}, {CCSignedGTE, JNL},
		{CCSignedLTE, JLE}, {CCSignedGT, JNLE},
	}
	for _, c := range cases {
		if got := JccOp(c.cc); got != c.op {
			t.Fatalf("JccOp(%d) = %v; want %v", c.cc, got, c.op)
		}
	}
}

func TestInvcc(t *testing.T) {
	for cc := ConditionCode(0); cc < 16; cc++ {
		inv := Invcc(cc)
		if inv == cc {
			t.Fatalf("Invcc(%d) is the identity", cc)
		}
		if Invcc(inv) != cc {
			t.Fatalf("Invcc is not an involution at %d", cc)
		}
	}
	if Invcc(CCEq) != CCNeq || Invcc(CCSignedLT) != CCSignedGTE {
		t.Fatal("Invcc pairs")
	}
}
