package redis

import (
	"testing"

	"github.com/crestviewems/supplyline-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2"})
	if err != nil {
		t.Fatalf("optionsFromConfig returned error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("db from url not honored: %d", opts.DB)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.SessionKey("abc"); got != "sl:session:abc" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := c.ChangeChannel("requests"); got != "sl:changes:requests" {
		t.Fatalf("unexpected change channel %s", got)
	}
}
