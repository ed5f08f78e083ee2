package corvo

import "testing"

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{-3, "-3"},
		{0, "0"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1000000, "1000000"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestDisplayText(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Num(7), "7"},
		{Str("hi"), "hi"},
		{None, "none"},
		{ListOf(Str("Alice"), Num(30)), "[Alice, 30]"},
		{ListOf(), "[]"},
		{ListOf(ListOf(Num(1), Num(2)), Num(3)), "[[1, 2], 3]"},
	}
	for _, tc := range cases {
		got, ok := tc.v.DisplayText()
		if !ok {
			t.Errorf("DisplayText(%v): not renderable", tc.v)
			continue
		}
		if got != tc.want {
			t.Errorf("DisplayText: want %q, got %q", tc.want, got)
		}
	}
}

func TestDisplayTextTable(t *testing.T) {
	if _, ok := TableOf([][]string{{"a"}}).DisplayText(); ok {
		t.Fatal("tables must not have a direct text rendering")
	}
	if _, ok := ListOf(TableOf(nil)).DisplayText(); ok {
		t.Fatal("a list containing a table must not render")
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Num(2), Num(2)) || Equal(Num(2), Num(3)) {
		t.Fatal("number equality")
	}
	if !Equal(Str("a"), Str("a")) || Equal(Str("a"), Str("b")) {
		t.Fatal("string equality")
	}
	if Equal(Num(2), Str("2")) {
		t.Fatal("mixed kinds are never equal")
	}
	if !Equal(ListOf(Num(1), Str("x")), ListOf(Num(1), Str("x"))) {
		t.Fatal("element-wise list equality")
	}
	if Equal(ListOf(Num(1)), ListOf(Num(1), Num(2))) {
		t.Fatal("lists of different length")
	}
	if !Equal(None, None) {
		t.Fatal("none equals none")
	}
	tbl := TableOf([][]string{{"a"}})
	if Equal(tbl, tbl) {
		t.Fatal("tables are outside the equality relation")
	}
}

func TestTableCols(t *testing.T) {
	if got := TableOf(nil).AsTable().Cols(); got != 0 {
		t.Fatalf("empty table cols: got %d", got)
	}
	if got := TableOf([][]string{{"a", "b", "c"}}).AsTable().Cols(); got != 3 {
		t.Fatalf("cols: got %d", got)
	}
}
