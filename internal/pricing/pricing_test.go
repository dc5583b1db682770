package pricing

import "testing"

func TestQuote_ReferenceCart(t *testing.T) {
	got := Quote([]Line{
		{UnitPrice: FromFloat(10), Quantity: 2},
		{UnitPrice: FromFloat(5), Quantity: 1},
	})
	want := Breakdown{Subtotal: 2500, Tax: 250, Shipping: 599, Total: 3349}
	if got != want {
		t.Fatalf("Quote = %+v, want %+v", got, want)
	}
	if got.Total.String() != "$33.49" {
		t.Fatalf("Total.String() = %q, want $33.49", got.Total.String())
	}
}

func TestQuote_EmptyCartIsZero(t *testing.T) {
	if got := Quote(nil); got != (Breakdown{}) {
		t.Fatalf("Quote(nil) = %+v, want zero", got)
	}
}

func TestQuote_TaxRoundsToNearestCent(t *testing.T) {
	got := Quote([]Line{{UnitPrice: 1999, Quantity: 1}})
	if got.Tax != 200 {
		t.Fatalf("Tax = %d, want 200", got.Tax)
	}
	if got.Total != 1999+200+599 {
		t.Fatalf("Total = %d, want %d", got.Total, 1999+200+599)
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"12.50", 1250, false},
		{" $7 ", 700, false},
		{"0.999", 100, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMoney(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) returned nil error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	if got := Money(5).String(); got != "$0.05" {
		t.Fatalf("String = %q, want $0.05", got)
	}
	if got := Money(-125).String(); got != "-$1.25" {
		t.Fatalf("String = %q, want -$1.25", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := Money(1250).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(raw) != "12.5" {
		t.Fatalf("MarshalJSON = %s, want 12.5", raw)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte(`"19.99"`)); err != nil {
		t.Fatalf("UnmarshalJSON string: %v", err)
	}
	if m != 1999 {
		t.Fatalf("UnmarshalJSON string = %d, want 1999", m)
	}
	if err := m.UnmarshalJSON([]byte(`24.5`)); err != nil || m != 2450 {
		t.Fatalf("UnmarshalJSON number = %d, %v, want 2450", m, err)
	}
	if err := m.UnmarshalJSON([]byte(`-3`)); err == nil {
		t.Fatalf("UnmarshalJSON negative returned nil error")
	}
}

func TestFromFloat_UsesShortestDecimal(t *testing.T) {
	cases := []struct {
		in   float64
		want Money
	}{
		{19.99, 1999},
		{1.005, 101},
		{0.285, 29},
		{49, 4900},
	}
	for _, tc := range cases {
		if got := FromFloat(tc.in); got != tc.want {
			t.Fatalf("FromFloat(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
