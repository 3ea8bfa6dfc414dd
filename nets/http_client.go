package nets

import (
	"net/http"
	"time"

	"github.com/reusee/scajl/cmds"
	"github.com/reusee/scajl/vars"
)

type HTTPClient = *http.Client

// FetchTimeout bounds a single remote script request.
type FetchTimeout time.Duration

var fetchTimeoutFlag = cmds.Var[time.Duration]("-fetch-timeout", "timeout of a remote script request")

func (Module) FetchTimeout() FetchTimeout {
	return vars.FirstNonZero(
		FetchTimeout(*fetchTimeoutFlag),
		FetchTimeout(30*time.Second),
	)
}

func (Module) HTTPClient(
	dialer Dialer,
	timeout FetchTimeout,
) HTTPClient {
	return &http.Client{
		Timeout: time.Duration(timeout),
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
