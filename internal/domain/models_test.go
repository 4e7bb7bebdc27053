package domain

import "testing"

func TestSplitMapping(t *testing.T) {
	m := ModelMapping{Mapping: "Jeep|WK|Grand Cherokee"}
	mk, code, md, ok := m.SplitMapping()
	if !ok {
		t.Fatalf("expected ok for well-formed payload")
	}
	if mk != "Jeep" || code != "WK" || md != "Grand Cherokee" {
		t.Fatalf("unexpected segments: %q %q %q", mk, code, md)
	}
}

func TestSplitMapping_TrimsSegments(t *testing.T) {
	m := ModelMapping{Mapping: " Jeep | JK | Wrangler "}
	mk, code, md, ok := m.SplitMapping()
	if !ok || mk != "Jeep" || code != "JK" || md != "Wrangler" {
		t.Fatalf("expected trimmed segments, got %q %q %q ok=%v", mk, code, md, ok)
	}
}

func TestSplitMapping_Malformed(t *testing.T) {
	for _, payload := range []string{"", "Jeep", "Jeep|WK", "Jeep|WK|Grand Cherokee|extra"} {
		m := ModelMapping{Mapping: payload}
		mk, code, md, ok := m.SplitMapping()
		if ok {
			t.Errorf("SplitMapping(%q): expected !ok", payload)
		}
		if mk != "" || code != "" || md != "" {
			t.Errorf("SplitMapping(%q): expected empty segments, got %q %q %q", payload, mk, code, md)
		}
	}
}

func TestVehiclePosition_String(t *testing.T) {
	p := VehiclePosition{FrontRear: PosFront, LeftRight: PosLeft, UpperLower: PosUpper, InnerOuter: PosNA}
	if got := p.String(); got != "front/left/upper/na" {
		t.Fatalf("String() = %q", got)
	}
}

func TestVehiclePosition_AllNA(t *testing.T) {
	if !NAPosition().AllNA() {
		t.Fatalf("NAPosition must be all-na")
	}
	p := NAPosition()
	p.LeftRight = PosRight
	if p.AllNA() {
		t.Fatalf("position with a set axis must not be all-na")
	}
}

func TestFitment_Position(t *testing.T) {
	f := Fitment{FrontRear: PosRear, LeftRight: PosNA, UpperLower: PosLower, InnerOuter: PosNA}
	want := VehiclePosition{FrontRear: PosRear, LeftRight: PosNA, UpperLower: PosLower, InnerOuter: PosNA}
	if f.Position() != want {
		t.Fatalf("Position() = %v; want %v", f.Position(), want)
	}
}

func TestFitment_PositionIDList(t *testing.T) {
	f := Fitment{PositionIDs: "22,30,7"}
	ids := f.PositionIDList()
	if len(ids) != 3 || ids[0] != "22" || ids[1] != "30" || ids[2] != "7" {
		t.Fatalf("PositionIDList() = %v", ids)
	}

	if got := (Fitment{}).PositionIDList(); got != nil {
		t.Fatalf("empty PositionIDs must yield nil, got %v", got)
	}
}

func TestParsedApplication_Empty(t *testing.T) {
	if !(ParsedApplication{}).Empty() {
		t.Fatalf("zero value must be empty")
	}
	y := 2005
	cases := []ParsedApplication{
		{YearStart: &y},
		{Make: "Jeep"},
		{Model: "Wrangler"},
		{PositionTokens: []string{"front"}},
	}
	for i, p := range cases {
		if p.Empty() {
			t.Errorf("case %d: expected non-empty", i)
		}
	}
}
