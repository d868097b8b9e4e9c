package envset

import (
	"testing"
)

func TestFromEnvironSkipsMalformedEntries(t *testing.T) {
	env := fromEnviron([]string{"PATH=/bin", "NOVAL", "=empty", "EMPTY="}, false)

	if value, ok := env.Lookup("PATH"); !ok || value != "/bin" {
		t.Fatalf("expected PATH=/bin, got %q (%v)", value, ok)
	}
	if env.Has("NOVAL") {
		t.Fatalf("expected NOVAL to be skipped")
	}
	if value, ok := env.Lookup("EMPTY"); !ok || value != "" {
		t.Fatalf("expected EMPTY to be present and empty, got %q (%v)", value, ok)
	}
}

func TestFromEnvironLastDuplicateWins(t *testing.T) {
	env := fromEnviron([]string{"KEY=one", "KEY=two"}, false)
	if got := env.Get("KEY"); got != "two" {
		t.Fatalf("expected KEY=two, got %q", got)
	}
	if len(env.Environ()) != 1 {
		t.Fatalf("expected a single entry, got %#v", env.Environ())
	}
}

func TestSetUpdatesExisting(t *testing.T) {
	env := fromEnviron([]string{"KEY=old"}, false)
	env.Set("KEY", "new")
	if got := env.Get("KEY"); got != "new" {
		t.Fatalf("expected KEY=new, got %q", got)
	}
}

func TestUnsetRemovesKey(t *testing.T) {
	env := fromEnviron([]string{"A=1", "B=2"}, false)
	env.Unset("A")
	env.Unset("")
	if env.Has("A") {
		t.Fatalf("expected A to be removed")
	}
	if env.Get("B") != "2" {
		t.Fatalf("expected B to remain")
	}
}

func TestFoldMatchesCaseInsensitively(t *testing.T) {
	env := fromEnviron([]string{"Path=C:\\Windows"}, true)
	if got := env.Get("PATH"); got != "C:\\Windows" {
		t.Fatalf("expected folded lookup, got %q", got)
	}
	env.Set("PATH", "C:\\chimera")
	if len(env.Environ()) != 1 {
		t.Fatalf("expected folded set to replace, got %#v", env.Environ())
	}
}

func TestPreserve(t *testing.T) {
	env := fromEnviron([]string{"TCL_LIBRARY=/usr/lib/tcl"}, false)

	if !env.Preserve("TCL_LIBRARY", "CHIMERA_TCL_LIBRARY") {
		t.Fatalf("expected preserve to report true")
	}
	if got := env.Get("CHIMERA_TCL_LIBRARY"); got != "/usr/lib/tcl" {
		t.Fatalf("expected preserved value, got %q", got)
	}
	if env.Preserve("TK_LIBRARY", "CHIMERA_TK_LIBRARY") {
		t.Fatalf("expected preserve of missing key to report false")
	}
	if env.Has("CHIMERA_TK_LIBRARY") {
		t.Fatalf("expected no alias for missing key")
	}
}

func TestFillMissingDoesNotOverride(t *testing.T) {
	env := fromEnviron([]string{"TOKEN=real"}, false)
	env.FillMissing(map[string]string{"TOKEN": "other", "NEW": "value", "BLANK": ""})

	if got := env.Get("TOKEN"); got != "real" {
		t.Fatalf("expected TOKEN to remain, got %q", got)
	}
	if got := env.Get("NEW"); got != "value" {
		t.Fatalf("expected NEW=value, got %q", got)
	}
	if env.Has("BLANK") {
		t.Fatalf("expected empty additions to be skipped")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	env := fromEnviron([]string{"A=1"}, false)
	clone := env.Clone()
	clone.Set("A", "2")
	if env.Get("A") != "1" {
		t.Fatalf("expected original to be unchanged")
	}
}

func TestDelta(t *testing.T) {
	before := fromEnviron([]string{"A=1", "B=2", "C=3"}, false)
	after := before.Clone()
	after.Set("A", "10")
	after.Unset("B")
	after.Set("D", "4")

	changed, removed := before.Delta(after)
	if len(changed) != 2 || changed["A"] != "10" || changed["D"] != "4" {
		t.Fatalf("unexpected changed set: %#v", changed)
	}
	if len(removed) != 1 || removed[0] != "B" {
		t.Fatalf("unexpected removed set: %#v", removed)
	}
}
