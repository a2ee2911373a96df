package mango

import "testing"

func TestArgWidths(t *testing.T) {
	cases := []struct {
		arg  Arg
		want uint8
	}{
		{Imm8(0), 1}, {Imm16(0), 2}, {Imm32(0), 4}, {Imm64(0), 8},
		{Rel8(0), 1}, {Rel16(0), 2}, {Rel32(0), 4},
		{AL, 1}, {AX, 2}, {EAX, 4}, {RAX, 8},
		{Mem{Width: 4}, 4},
		{Mem{}, 0}, // address-only
	}
	for _, c := range cases {
		if got := ArgWidth(c.arg); got != c.want {
			t.Fatalf("ArgWidth(%T) = %d; want %d", c.arg, got, c.want)
		}
	}
}

func TestArgKinds(t *testing.T) {
	if !isImm(Imm8(0)) || isImm(Rel8(0)) || isImm(RAX) {
		t.Fatal("isImm misclassifies")
	}
	if !isDisp(Rel32(0)) || isDisp(Imm32(0)) {
		t.Fatal("isDisp misclassifies")
	}
	if !isReg(RAX) || isReg(Mem{}) {
		t.Fatal("isReg misclassifies")
	}
}

func TestImmInt64(t *testing.T) {
	if Imm8(-1).Int64() != -1 || Imm32(-1).Int64() != -1 {
		t.Fatal("Int64 must sign-extend")
	}
	if Rel8(-1).Int32() != -1 || Rel16(-200).Int32() != -200 {
		t.Fatal("Int32 must sign-extend")
	}
}
