package value

import "testing"

func TestZeroValueIsNone(t *testing.T) {
	var v Value
	if !v.IsNone() {
		t.Fatalf("expected the zero Value to be None")
	}
}

func TestAsTextFailsOnWrongKind(t *testing.T) {
	if _, ok := Number(5).AsText(); ok {
		t.Fatalf("expected AsText to fail on a Number value")
	}
}

func TestListCopiesInputSlice(t *testing.T) {
	items := []string{"a", "b"}
	v := List(items)
	items[0] = "mutated"

	got, _ := v.AsList()
	if got[0] != "a" {
		t.Fatalf("List mutation leaked from the caller's slice: got %q", got[0])
	}
}

func TestAsListReturnsACopy(t *testing.T) {
	v := List([]string{"a", "b"})
	got, _ := v.AsList()
	got[0] = "mutated"

	again, _ := v.AsList()
	if again[0] != "a" {
		t.Fatalf("AsList leaked its internal slice: got %q", again[0])
	}
}

func TestEqualComparesByKindAndPayload(t *testing.T) {
	if !Text("a").Equal(Text("a")) {
		t.Fatalf("expected equal Text values to compare equal")
	}
	if Text("a").Equal(Text("b")) {
		t.Fatalf("expected different Text values to compare unequal")
	}
	if Text("1").Equal(Number(1)) {
		t.Fatalf("expected different kinds to never compare equal")
	}
}

func TestHashDistinguishesKinds(t *testing.T) {
	if Text("1").Hash() == Number(1).Hash() {
		t.Fatalf("expected Text(\"1\") and Number(1) to hash differently")
	}
}
