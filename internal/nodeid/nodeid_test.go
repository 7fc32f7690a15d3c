package nodeid

import "testing"

func TestLessOrdersLexically(t *testing.T) {
	if !ID("a").Less("b") {
		t.Fatalf("expected \"a\" to be less than \"b\"")
	}
	if ID("b").Less("a") {
		t.Fatalf("expected \"b\" not to be less than \"a\"")
	}
}

func TestEmptyIsZeroValue(t *testing.T) {
	var id ID
	if id != Empty {
		t.Fatalf("expected the zero ID to equal Empty")
	}
}
