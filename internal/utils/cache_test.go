package utils

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string](10, time.Minute)

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("不存在的 key 不应命中")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	// 负 TTL：写入即过期
	c := NewTTLCache[int](10, -time.Second)

	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Error("过期数据不应命中")
	}
	if c.Len() != 0 {
		t.Errorf("过期读取后应被移除, Len = %d", c.Len())
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string](10, time.Minute)

	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("删除后不应命中")
	}
}
