package checker

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// newProxyDialer returns a SOCKS5 dialer for address, or nil when address
// is empty. address is "host:port", optionally prefixed by "socks5://" and
// "user:password@".
func newProxyDialer(address string, timeout time.Duration) (proxy.Dialer, error) {
	if address == "" {
		return nil, nil
	}
	hostPort, auth := splitProxyAddress(address)
	dialer, err := proxy.SOCKS5("tcp", hostPort, auth, &net.Dialer{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	return dialer, nil
}

// splitProxyAddress separates optional credentials from the proxy address.
func splitProxyAddress(address string) (string, *proxy.Auth) {
	address = strings.TrimPrefix(address, "socks5://")
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return address, nil
	}
	user, password, _ := strings.Cut(address[:at], ":")
	return address[at+1:], &proxy.Auth{User: user, Password: password}
}

// newHTTPClient returns the client used for profile requests.
// Redirects are followed by the default policy.
func newHTTPClient(dialer proxy.Dialer, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 4,
		TLSHandshakeTimeout: timeout,
	}
	if dialer != nil {
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
