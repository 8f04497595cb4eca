package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New()
	if got := c.Get("sda"); got != nil {
		t.Errorf("Get on empty cache = %v", got)
	}

	c.Set("sda", "ext4", time.Minute)
	if got := c.Get("sda"); got != "ext4" {
		t.Errorf("Get = %v, want ext4", got)
	}
}

func TestExpiry(t *testing.T) {
	c := New()
	c.Set("sda", "ext4", 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if got := c.Get("sda"); got != nil {
		t.Errorf("Get after expiry = %v, want nil", got)
	}
}

func TestGlobalIsShared(t *testing.T) {
	if Global() != Global() {
		t.Error("Global returned different instances")
	}
}
