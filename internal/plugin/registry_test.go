package plugin

import (
	"context"
	"reflect"
	"testing"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
)

func noopPlugin(name string) *Plugin {
	return &Plugin{
		Meta: domain.PluginMetadata{Name: name, Category: "test", RiskLevel: domain.RiskLow},
		Runner: RunnerFunc(func(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
			return nil, nil
		}),
	}
}

func TestRegisterRejectsInvalidPlugins(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	if err := r.Register(nil); err == nil {
		t.Error("nil plugin should be rejected")
	}
	if err := r.Register(&Plugin{Meta: domain.PluginMetadata{Name: "x"}}); err == nil {
		t.Error("plugin without runner should be rejected")
	}
	p := noopPlugin("")
	if err := r.Register(p); err == nil {
		t.Error("plugin without name should be rejected")
	}
	p = noopPlugin("bad-risk")
	p.Meta.RiskLevel = "EXTREME"
	if err := r.Register(p); err == nil {
		t.Error("invalid risk level should be rejected")
	}
}

func TestRegisterCollisionKeepsOrderSlot(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	first := noopPlugin("dup")
	first.Meta.Version = "1"
	second := noopPlugin("dup")
	second.Meta.Version = "2"

	if err := r.Register(noopPlugin("a")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(first); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(noopPlugin("z")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(second); err != nil {
		t.Fatal(err)
	}

	if r.Count() != 3 {
		t.Fatalf("expected 3 plugins, got %d", r.Count())
	}
	got, ok := r.Get("dup")
	if !ok || got.Meta.Version != "2" {
		t.Fatalf("later registration should win, got %+v", got)
	}
	if names := pluginNames(r.List()); !reflect.DeepEqual(names, []string{"a", "dup", "z"}) {
		t.Fatalf("original order slot lost: %v", names)
	}
}

func TestActivePluginsRequestedOrderSkipsUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	for _, n := range []string{"a", "b", "c"} {
		if err := r.Register(noopPlugin(n)); err != nil {
			t.Fatal(err)
		}
	}

	active := r.ActivePlugins([]string{"a", "missing", "b"})
	if names := pluginNames(active); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", names)
	}
}

func TestActivePluginsDisabledWinsOverRequestAndEnabled(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{
		Enabled:  []string{"a", "b"},
		Disabled: []string{"b"},
	})
	for _, n := range []string{"a", "b", "c"} {
		if err := r.Register(noopPlugin(n)); err != nil {
			t.Fatal(err)
		}
	}

	if names := pluginNames(r.ActivePlugins(nil)); !reflect.DeepEqual(names, []string{"a"}) {
		t.Fatalf("default set: expected [a], got %v", names)
	}
	if names := pluginNames(r.ActivePlugins([]string{"b", "c"})); !reflect.DeepEqual(names, []string{"c"}) {
		t.Fatalf("requested set: expected [c], got %v", names)
	}
}

func TestActivePluginsEmptyEnabledMeansAll(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	for _, n := range []string{"a", "b"} {
		if err := r.Register(noopPlugin(n)); err != nil {
			t.Fatal(err)
		}
	}
	if names := pluginNames(r.ActivePlugins(nil)); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("expected all plugins, got %v", names)
	}
}

func TestFilters(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	p := noopPlugin("inj")
	p.Meta.Category = "Injection"
	p.Meta.RiskLevel = domain.RiskHigh
	if err := r.Register(p); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(noopPlugin("other")); err != nil {
		t.Fatal(err)
	}

	if got := r.FilterByCategory("injection"); len(got) != 1 || got[0].Meta.Name != "inj" {
		t.Fatalf("FilterByCategory: %v", pluginNames(got))
	}
	if got := r.FilterByRiskLevel("high"); len(got) != 1 || got[0].Meta.Name != "inj" {
		t.Fatalf("FilterByRiskLevel: %v", pluginNames(got))
	}
}

func TestReloadRestoresBuiltins(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Settings{})
	r.SetBuiltins(func(reg *Registry) {
		_ = reg.Register(noopPlugin("builtin"))
	})
	if err := r.Register(noopPlugin("transient")); err != nil {
		t.Fatal(err)
	}

	r.Reload()

	if _, ok := r.Get("builtin"); !ok {
		t.Fatal("builtin should survive reload")
	}
	if _, ok := r.Get("transient"); ok {
		t.Fatal("non-builtin registration should be gone after reload")
	}
}

func pluginNames(ps []*Plugin) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Meta.Name
	}
	return out
}
