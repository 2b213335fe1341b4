package core

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in  any
		def float64
		out float64
	}{
		{4500.0, 0, 4500},
		{2, 1, 2},
		{int64(7), 1, 7},
		{float32(1.5), 0, 1.5},
		{"3", 1, 3},
		{" 2.50 ", 0, 2.5},
		{"12,5", 0, 12.5},
		{"3500,50", 0, 3500.5},
		{"-2,5", 0, -2.5},
		{"4,500", 0, 0},
		{"1,234,567", 9, 9},
		{"1.234,5", 9, 9},
		{"7,", 9, 9},
		{"7,x", 9, 9},
		{json.Number("42"), 0, 42},
		{nil, 1, 1},
		{"", 1, 1},
		{"abc", 0, 0},
		{"1.2.3", 7, 7},
		{"NaN", 3, 3},
		{"Inf", 3, 3},
		{math.NaN(), 9, 9},
		{math.Inf(1), 9, 9},
		{true, 5, 5},
		{[]int{1}, 5, 5},
		{-4.0, 0, -4},
	}
	for i, tc := range cases {
		got := Number(tc.in, tc.def)
		if got != tc.out {
			t.Fatalf("case %d: Number(%#v, %v) = %v, want %v", i, tc.in, tc.def, got, tc.out)
		}
	}
}

func TestNumberMalformedReturnsDefault(t *testing.T) {
	for _, def := range []float64{0, 1, 42.5} {
		for _, in := range []any{"abc", nil, ""} {
			if got := Number(in, def); got != def {
				t.Fatalf("Number(%#v, %v) = %v, want default", in, def, got)
			}
		}
	}
}

func TestQuantity(t *testing.T) {
	cases := []struct {
		in  any
		out float64
	}{
		{"3", 3},
		{nil, 1},
		{"x", 1},
		{0.0, 0},
		{-2.0, 1},
		{"-1", 1},
		{1.5, 1.5},
	}
	for _, tc := range cases {
		if got := Quantity(tc.in); got != tc.out {
			t.Fatalf("Quantity(%#v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestPriceAndBudgetDefaults(t *testing.T) {
	if got := Price(nil); got != 0 {
		t.Fatalf("Price(nil) = %v, want 0", got)
	}
	if got := Price("3200"); got != 3200 {
		t.Fatalf("Price(\"3200\") = %v, want 3200", got)
	}
	if got := Budget(nil); got != 0 {
		t.Fatalf("Budget(nil) = %v, want 0", got)
	}
	if got := Budget("200000"); got != 200000 {
		t.Fatalf("Budget(\"200000\") = %v", got)
	}
}

func TestFlag(t *testing.T) {
	cases := []struct {
		in  any
		out bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"1", true},
		{"no", false},
		{nil, false},
		{1.0, true},
		{0.0, false},
	}
	for _, tc := range cases {
		if got := Flag(tc.in); got != tc.out {
			t.Fatalf("Flag(%#v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}
