package httpclient

import (
	"context"
	"errors"
	"net"
)

// Transport failures are returned as *errorwrapper.NetworkError and non-2xx
// responses as *errorwrapper.HTTPError, with the truncated body as Message.

// IsTimeout reports whether err was caused by a request or context deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
