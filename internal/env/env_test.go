package env

import "testing"

func TestGetSet(t *testing.T) {
	s := New()

	if got := s.Get("root"); got != "" {
		t.Errorf("Get(root) on empty store = %q, want empty", got)
	}

	s.Set("root", "hd1")
	if got := s.Get("root"); got != "hd1" {
		t.Errorf("Get(root) = %q, want hd1", got)
	}

	s.Set("root", "hd2")
	if got := s.Get("root"); got != "hd2" {
		t.Errorf("Get(root) after overwrite = %q, want hd2", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := New()
	s.Set("root", "hd0")
	s.Set("prefix", "(hd0)/boot/grub")

	all := s.All()
	if len(all) != 2 || all["root"] != "hd0" {
		t.Errorf("All = %v", all)
	}

	all["root"] = "tampered"
	if got := s.Get("root"); got != "hd0" {
		t.Errorf("store mutated through All copy: %q", got)
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different instances")
	}
}
