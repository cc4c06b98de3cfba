package args

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	base := New()
	base.Set(OptBindAddr, StringValue("0.0.0.0:9000"))
	base.Set(OptProxyDomain, ListValue("a.com"))
	base.Positional = []string{"base"}

	override := New()
	override.Set(OptProxyDomain, ListValue("b.com"))
	override.Set(OptPort, NumberValue(9999))

	merged := Merge(base, override)

	if got, _ := merged.Str(OptBindAddr); got != "0.0.0.0:9000" {
		t.Errorf("bind-addr = %q", got)
	}
	if got := merged.Strings(OptProxyDomain); !reflect.DeepEqual(got, []string{"b.com"}) {
		t.Errorf("override list should replace base list, got %v", got)
	}
	if got, _ := merged.Number(OptPort); got != 9999 {
		t.Errorf("port = %d", got)
	}
	if !reflect.DeepEqual(merged.Positional, []string{"base"}) {
		t.Errorf("positional = %v", merged.Positional)
	}

	if base.Has(OptPort) {
		t.Error("Merge must not modify base")
	}
	if got := base.Strings(OptProxyDomain); !reflect.DeepEqual(got, []string{"a.com"}) {
		t.Errorf("Merge must not modify base lists, got %v", got)
	}
}

func TestWithWithout(t *testing.T) {
	a := New()
	a.Set(OptVerbose, BoolValue(true))

	b := a.With(OptLog, EnumValue("debug"))
	c := b.Without(OptVerbose)

	if a.Has(OptLog) {
		t.Error("With must not modify the receiver")
	}
	if !b.Has(OptVerbose) {
		t.Error("Without must not modify the receiver")
	}
	if c.Has(OptVerbose) || !c.Has(OptLog) {
		t.Errorf("unexpected keys %v", c.Keys())
	}
}

func TestClone_ListsAreIndependent(t *testing.T) {
	a := New()
	a.Set(OptProxyDomain, ListValue("a", "b"))

	c := a.Clone()
	v, _ := c.Get(OptProxyDomain)
	v.List[0] = "changed"

	if got := a.Strings(OptProxyDomain); got[0] != "a" {
		t.Errorf("clone shares list storage: %v", got)
	}
}

func TestArgv(t *testing.T) {
	a := New()
	a.Set(OptVerbose, BoolValue(true))
	a.Set(OptNewWindow, BoolValue(false))
	a.Set(OptCert, BareOptionalValue())
	a.Set(OptLink, OptionalValue("name"))
	a.Set(OptPort, NumberValue(80))
	a.Set(OptProxyDomain, ListValue("x", "y"))
	a.Positional = []string{"f"}

	want := []string{
		"--cert",
		"--link=name",
		"--port=80",
		"--proxy-domain=x",
		"--proxy-domain=y",
		"--verbose",
		"--",
		"f",
	}
	if got := a.Argv(); !reflect.DeepEqual(got, want) {
		t.Errorf("Argv() = %v, want %v", got, want)
	}
}

func TestArgv_OptionalStringStatesDiffer(t *testing.T) {
	bare := New().With(OptLink, BareOptionalValue())
	empty := New().With(OptLink, OptionalValue(""))
	absent := New()

	if reflect.DeepEqual(bare.Argv(), empty.Argv()) {
		t.Error("bare and empty optional strings should serialize differently")
	}
	if len(absent.Argv()) != 0 {
		t.Errorf("absent record should serialize to nothing, got %v", absent.Argv())
	}
}

func TestLogFields(t *testing.T) {
	a := New()
	a.Set(OptPassword, StringValue("secret"))
	a.Set(OptCert, BareOptionalValue())
	a.Positional = []string{"dir"}

	fields := a.LogFields()
	if fields[OptPassword] != "secret" {
		t.Errorf("password field = %v", fields[OptPassword])
	}
	if fields[OptCert] != true {
		t.Errorf("bare optional should log as true, got %v", fields[OptCert])
	}
	if !reflect.DeepEqual(fields["_"], []string{"dir"}) {
		t.Errorf("positional field = %v", fields["_"])
	}
}
