package pyast

import (
	"reflect"
	"testing"
)

func TestRaises(t *testing.T) {
	src := `def handler(user):
    if user is None:
        raise Unauthorized()
    try:
        load(user)
    except KeyError:
        raise errors.NotFound("missing") from None
    except Exception:
        raise
    raise Invalid
`
	f := parseSource(t, src)
	sites := Raises(findFunction(t, f, "handler"))

	wantClasses := []string{"Unauthorized", "errors.NotFound", "Invalid"}
	if len(sites) != len(wantClasses) {
		t.Fatalf("Raises returned %d sites, want %d: %v", len(sites), len(wantClasses), sites)
	}
	for i, site := range sites {
		if site.Class != wantClasses[i] {
			t.Errorf("site %d class = %q, want %q", i, site.Class, wantClasses[i])
		}
	}

	if sites[0].Line != 3 {
		t.Errorf("first raise line = %d, want 3", sites[0].Line)
	}
	if sites[0].Column != 8 {
		t.Errorf("first raise column = %d, want 8", sites[0].Column)
	}
}

func TestRaises_BareReRaiseOnly(t *testing.T) {
	src := `def passthrough():
    try:
        risky()
    except Exception:
        raise
`
	f := parseSource(t, src)
	if sites := Raises(findFunction(t, f, "passthrough")); len(sites) != 0 {
		t.Errorf("bare re-raise produced %d sites, want 0", len(sites))
	}
}

func TestRaises_IncludesNestedFunctions(t *testing.T) {
	src := `def outer():
    def inner():
        raise Inner()
    inner()
`
	f := parseSource(t, src)
	sites := Raises(findFunction(t, f, "outer"))
	if len(sites) != 1 || sites[0].Class != "Inner" {
		t.Errorf("Raises = %v, want one Inner site", sites)
	}
}

func TestCallNames(t *testing.T) {
	src := `def handler(user):
    check(user)
    db.session.commit()
    raise Invalid(render_message(user))
`
	f := parseSource(t, src)
	got := CallNames(findFunction(t, f, "handler"))

	// Method calls resolve to the attribute name only; calls inside a
	// raise operand are still call expressions.
	want := []string{"check", "commit", "Invalid", "render_message"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CallNames = %v, want %v", got, want)
	}
}

func TestRenderName(t *testing.T) {
	src := `def decl():
    raise pkg.sub.Error()
`
	f := parseSource(t, src)
	sites := Raises(findFunction(t, f, "decl"))
	if len(sites) != 1 {
		t.Fatalf("Raises returned %d sites, want 1", len(sites))
	}
	if sites[0].Class != "pkg.sub.Error" {
		t.Errorf("dotted class = %q, want pkg.sub.Error", sites[0].Class)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"/users"`, "/users"},
		{`'/users'`, "/users"},
		{`"""/doc"""`, "/doc"},
		{`r"/raw"`, "/raw"},
		{`f"/fmt"`, "/fmt"},
	}
	for _, tt := range tests {
		if got := unquote(tt.in); got != tt.want {
			t.Errorf("unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
