package nets

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/modes"
)

func TestProxyDisabledInDevelopment(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
		client HTTPClient,
	) {
		if addr != "" {
			t.Fatalf("got %v", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
		if client.Timeout == 0 {
			t.Fatal()
		}
	})
}

func TestProxyURL(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() ProxyAddr {
			return "socks://127.0.0.1:1080"
		},
	).Call(func(
		getURL GetProxyURL,
		getDialer GetProxyDialer,
	) {
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" {
			t.Fatalf("got %v", u.Scheme)
		}
		if _, err := getDialer(); err != nil {
			t.Fatal(err)
		}
	})
}
