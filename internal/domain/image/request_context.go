package image

import (
	"net/http"
	"strings"
)

// UploadsPath is the URL segment blobs are served under.
const UploadsPath = "/uploads/"

// RequestContext carries what URL building needs from the incoming request.
type RequestContext struct {
	Scheme string
	Host   string
}

// NewRequestContext derives scheme and host from r. X-Forwarded-Proto is only
// honoured when trustProxy is set.
func NewRequestContext(r *http.Request, trustProxy bool) RequestContext {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if trustProxy {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			if i := strings.IndexByte(proto, ','); i >= 0 {
				proto = proto[:i]
			}
			if proto = strings.ToLower(strings.TrimSpace(proto)); proto != "" {
				scheme = proto
			}
		}
	}
	return RequestContext{Scheme: scheme, Host: r.Host}
}

// ImageURL builds <scheme>://<host>/uploads/<filename>.
func (rc RequestContext) ImageURL(filename string) string {
	return rc.Scheme + "://" + rc.Host + UploadsPath + filename
}
