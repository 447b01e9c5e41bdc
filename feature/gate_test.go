package feature

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/signal-host/errors"
)

func TestGate_CheckDisabled(t *testing.T) {
	g := NewGate()

	err := g.Check(errors.PhaseBind, Signal)
	if err == nil {
		t.Fatal("expected FeatureDisabled error")
	}
	if !stderrors.Is(err, errors.FeatureDisabled(errors.PhaseBind, Signal)) {
		t.Fatalf("wrong error: %v", err)
	}
}

func TestGate_CheckEnabled(t *testing.T) {
	g := NewGate(Signal)

	if err := g.Check(errors.PhasePoll, Signal); err != nil {
		t.Fatalf("enabled feature should pass: %v", err)
	}
}

func TestGate_EnableDisable(t *testing.T) {
	var g Gate

	if g.Enabled(Signal) {
		t.Fatal("zero gate should have everything disabled")
	}

	g.Enable(Signal)
	if !g.Enabled(Signal) {
		t.Fatal("Enable did not take")
	}

	g.Disable(Signal)
	if g.Enabled(Signal) {
		t.Fatal("Disable did not take")
	}
}

func TestParse(t *testing.T) {
	g, err := Parse([]byte(`unstable = ["signal", "other"]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !g.Enabled(Signal) || !g.Enabled("other") {
		t.Fatal("parsed features not enabled")
	}
	if g.Enabled("third") {
		t.Fatal("unlisted feature should be disabled")
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("this is not valid toml [[["))
	if err == nil {
		t.Fatal("expected decode error")
	}
}
