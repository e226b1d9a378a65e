package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	d, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
}

func TestParseDimenLegacyNumber(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	d, ispcnt, err := ParseDimen("120")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ispcnt || d != 120*PX {
		t.Errorf("expected plain number to be 120px, is %s", d)
	}
	if _, _, err = ParseDimen("12qq"); err == nil {
		t.Errorf("expected unit 'qq' to be rejected")
	}
}

func TestCeilPx(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	if c := (10 * PX).CeilPx(); c != 10*PX {
		t.Errorf("expected whole pixel to stay unchanged, is %s", c)
	}
	if c := (10*PX + 1).CeilPx(); c != 11*PX {
		t.Errorf("expected 10px+1sp to round up to 11px, is %s", c)
	}
	if c := FromPx(2.5).CeilPx(); c != 3*PX {
		t.Errorf("expected 2.5px to round up to 3px, is %s", c)
	}
}

func TestRectContains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssbox.core")
	defer teardown()
	//
	r := RectWH(10*PX, 10*PX, 20*PX, 5*PX)
	if !r.Contains(Point{10 * PX, 10 * PX}) {
		t.Errorf("expected top-left corner to be inside")
	}
	if r.Contains(Point{30 * PX, 12 * PX}) {
		t.Errorf("expected right edge to be outside")
	}
	u := r.Union(RectWH(0, 0, 1*PX, 1*PX))
	if u.Width() != 30*PX || u.Height() != 15*PX {
		t.Errorf("expected union to be 30x15px, is %sx%s", u.Width(), u.Height())
	}
}
