package netting

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name         string
		required     float64
		onHand       float64
		wantShortage float64
		wantStatus   string
	}{
		{"fully stocked", 100, 500, 0, StatusOK},
		{"exact match", 100, 100, 0, StatusOK},
		{"partially available", 100, 60, 40, StatusLow},
		{"nothing on hand", 100, 0, 100, StatusShortage},
		{"negative inventory", 10, -5, 15, StatusShortage},
		{"zero requirement", 0, 0, 0, StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shortage, status := Classify(tc.required, tc.onHand)
			if shortage != tc.wantShortage {
				t.Errorf("shortage = %v, want %v", shortage, tc.wantShortage)
			}
			if status != tc.wantStatus {
				t.Errorf("status = %q, want %q", status, tc.wantStatus)
			}
		})
	}
}

func TestNetReplacesStoredStatus(t *testing.T) {
	// A stale stored label must not survive netting.
	lines := Net([]Line{
		{IPN: "CAP-001-0001", QtyRequired: 100, QtyOnHand: 60, Status: StatusOK},
	})
	if lines[0].Status != StatusLow {
		t.Errorf("status = %q, want %q", lines[0].Status, StatusLow)
	}
	if lines[0].Shortage != 40 {
		t.Errorf("shortage = %v, want 40", lines[0].Shortage)
	}
}

func TestSummarize(t *testing.T) {
	lines := Net([]Line{
		{IPN: "CAP-001-0001", QtyRequired: 10, QtyOnHand: 500},
		{IPN: "RES-001-0001", QtyRequired: 100, QtyOnHand: 60},
		{IPN: "IC-001-0001", QtyRequired: 5, QtyOnHand: 0},
		{IPN: "PCB-001-0001", QtyRequired: 5, QtyOnHand: 5},
	})
	s := Summarize(lines)
	if s.TotalLines != 4 || s.OKCount != 2 || s.LowCount != 1 || s.ShortageCount != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if !s.HasShortage {
		t.Error("expected HasShortage with short lines present")
	}

	short := ShortLines(lines)
	if len(short) != 2 {
		t.Fatalf("expected 2 short lines (low + shortage), got %d", len(short))
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	s := Summarize(nil)
	if s.TotalLines != 0 || s.OKCount != 0 || s.LowCount != 0 || s.ShortageCount != 0 {
		t.Errorf("expected zero counts, got %+v", s)
	}
	if s.HasShortage {
		t.Error("empty set must not report a shortage")
	}
}

func TestSummarizeAllStocked(t *testing.T) {
	lines := Net([]Line{
		{IPN: "CAP-001-0001", QtyRequired: 10, QtyOnHand: 10},
		{IPN: "RES-001-0001", QtyRequired: 10, QtyOnHand: 20},
	})
	s := Summarize(lines)
	if s.HasShortage {
		t.Error("fully stocked set must not report a shortage")
	}
	if len(ShortLines(lines)) != 0 {
		t.Error("fully stocked set must yield no short lines")
	}
}
