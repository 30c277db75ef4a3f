package ids

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	for _, prefix := range []Prefix{PrefixOrder, PrefixRepair, PrefixSellRequest, PrefixPayment} {
		token := New(prefix)
		if !strings.HasPrefix(token, string(prefix)+"-") {
			t.Errorf("token %q missing prefix %q", token, prefix)
		}
	}
}

func TestNewTokensDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		token := New(PrefixOrder)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q after %d mints", token, i)
		}
		seen[token] = struct{}{}
	}
}
