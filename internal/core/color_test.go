package core

import "testing"

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor("orange"); !ok || c != ColorOrange {
		t.Errorf("ParseColor(orange) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("unknown colors should not parse")
	}
}
