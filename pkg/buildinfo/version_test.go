package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v1.2.3"

	if s := String(); !strings.Contains(s, "version: v1.2.3") {
		t.Errorf("String() = %q", s)
	}
	if s := Template(); !strings.HasPrefix(s, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", s)
	}
	if s := CacheScope(); s != "v1.2.3:" {
		t.Errorf("CacheScope() = %q", s)
	}
}
