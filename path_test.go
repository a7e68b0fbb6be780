package formwork

import (
	"encoding/json"
	"testing"
)

func TestPath_String_JSONPointer(t *testing.T) {
	var p Path
	if got := p.String(); got != "/" {
		t.Fatalf("root path: got %q want %q", got, "/")
	}
	p = p.Field("items").Index(2).Field("price")
	if got := p.String(); got != "/items/2/price" {
		t.Fatalf("got %q want %q", got, "/items/2/price")
	}
}

func TestPath_Persistence(t *testing.T) {
	base := Path{}.Field("user")
	a := base.Field("email")
	b := base.Field("name")
	if got := a.String(); got != "/user/email" {
		t.Fatalf("a: got %q", got)
	}
	if got := b.String(); got != "/user/name" {
		t.Fatalf("b mutated by sibling append: got %q", got)
	}
	if got := base.String(); got != "/user" {
		t.Fatalf("base mutated: got %q", got)
	}
}

func TestPath_String_EscapesPointerCharacters(t *testing.T) {
	p := Path{}.Field("a/b").Field("c~d")
	if got := p.String(); got != "/a~1b/c~0d" {
		t.Fatalf("got %q", got)
	}
	// Distinct keys must render as distinct pointers.
	a := Path{}.Field("x/y").String()
	b := Path{}.Field("x").Field("y").String()
	if a == b {
		t.Fatalf("pointer collision: %q", a)
	}
}

func TestPath_MarshalJSON_Empty(t *testing.T) {
	for _, p := range []Path{nil, {}} {
		raw, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if got := string(raw); got != `[]` {
			t.Fatalf("empty path must marshal as [], got %s", got)
		}
	}
}

func TestPath_MarshalJSON_MixedSteps(t *testing.T) {
	p := Path{}.Field("items").Index(0).Field("id")
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(raw); got != `["items",0,"id"]` {
		t.Fatalf("got %s", got)
	}
}

func TestPath_Equal(t *testing.T) {
	a := Path{}.Field("a").Index(1)
	b := Path{}.Field("a").Index(1)
	c := Path{}.Field("a").Index(2)
	if !a.Equal(b) {
		t.Fatalf("expected equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected not equal")
	}
	if a.Equal(a[:1]) {
		t.Fatalf("prefix must not compare equal")
	}
}
