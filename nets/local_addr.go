package nets

import (
	"net"
	"os"
	"strings"
)

// NoProxy holds host suffixes that remote scripts are fetched from directly.
type NoProxy []string

func (Module) NoProxy() (ret NoProxy) {
	for _, value := range []string{os.Getenv("NO_PROXY"), os.Getenv("no_proxy")} {
		for part := range strings.SplitSeq(value, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), ".")
			if part != "" {
				ret = append(ret, part)
			}
		}
	}
	return
}

func (n NoProxy) Match(host string) bool {
	for _, suffix := range n {
		if suffix == "*" || host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

// IsLocalAddr reports whether addr bypasses the proxy.
type IsLocalAddr func(addr string) (bool, error)

func (Module) IsLocalAddr(
	noProxy NoProxy,
) IsLocalAddr {
	return func(addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		if host == "localhost" || noProxy.Match(host) {
			return true, nil
		}

		ips := []net.IP{net.ParseIP(host)}
		if ips[0] == nil {
			ips, err = net.LookupIP(host)
			if err != nil {
				// unresolvable here, let the proxy try
				return false, nil
			}
		}
		for _, ip := range ips {
			if ip.IsLoopback() || ip.IsPrivate() {
				return true, nil
			}
		}
		return false, nil
	}
}
