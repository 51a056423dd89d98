package cache

import (
	"strings"
	"testing"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		want   string
		isList bool
	}{
		{"list", ListKey("clientes"), "clientes", true},
		{"item int64", ItemKey("clientes", int64(42)), "clientes::42", false},
		{"item int", ItemKey("clientes", 7), "clientes::7", false},
		{"item string", ItemKey("clientes", "abc"), "clientes::abc", false},
		{"normalized resource", ListKey("Dashboard Stats"), "dashboard_stats", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tt.key.IsList() != tt.isList {
				t.Errorf("IsList() = %v, want %v", tt.key.IsList(), tt.isList)
			}
		})
	}
}

func TestSameResource(t *testing.T) {
	match := SameResource("Clientes")

	if !match(ListKey("clientes")) || !match(ItemKey("clientes", 1)) {
		t.Error("expected list and item keys of the resource to match")
	}
	if match(ListKey("dashboard-stats")) {
		t.Error("expected other resources not to match")
	}
}

func TestNormalizeResource(t *testing.T) {
	tests := map[string]string{
		"clientes":          "clientes",
		"DashboardStats":    "dashboard_stats",
		"dashboard-stats":   "dashboard_stats",
		" dashboard stats ": "dashboard_stats",
		"HTTPServer":        "http_server",
		"v2Api":             "v2_api",
		"a::b":              "a_b",
		"--x--":             "x",
		"":                  "",
	}

	for in, want := range tests {
		if got := normalizeResource(in); got != want {
			t.Errorf("normalizeResource(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultKeySerializer(t *testing.T) {
	s := NewDefaultKeySerializer()

	if got := s.SerializeKey(ListKey("clientes"), 0); got != "clientes#0" {
		t.Errorf("got %q", got)
	}
	if got := s.SerializeKey(ItemKey("clientes", 5), 3); got != "clientes::5#3" {
		t.Errorf("got %q", got)
	}
	if s.SerializeKey(ListKey("clientes"), 1) == s.SerializeKey(ListKey("clientes"), 2) {
		t.Error("generations must produce distinct storage keys")
	}
}

func TestDefaultKeySerializer_ResourcePrefixes(t *testing.T) {
	s := NewDefaultKeySerializer()

	prefixes := s.ResourcePrefixes("Clientes")
	if len(prefixes) != 2 || prefixes[0] != "clientes#" || prefixes[1] != "clientes::" {
		t.Fatalf("unexpected prefixes %v", prefixes)
	}

	covered := func(storageKey string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(storageKey, p) {
				return true
			}
		}
		return false
	}
	for _, key := range []Key{ListKey("clientes"), ItemKey("clientes", 9)} {
		if sk := s.SerializeKey(key, 4); !covered(sk) {
			t.Errorf("expected %q to be covered", sk)
		}
	}
	if covered(s.SerializeKey(ListKey("clientes_archivados"), 0)) {
		t.Error("prefixes must not cover a resource sharing the name prefix")
	}

	if s.ResourcePrefixes("  ") != nil {
		t.Error("expected no prefixes for a blank resource")
	}
}
