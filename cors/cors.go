package cors

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
)

const (
	// AllowOrigin is the header attached to every response
	AllowOrigin    = "Access-Control-Allow-Origin"
	allowMethods   = "Access-Control-Allow-Methods"
	allowHeaders   = "Access-Control-Allow-Headers"
	maxAge         = "Access-Control-Max-Age"
	requestHeaders = "Access-Control-Request-Headers"

	// AnyOrigin is the wildcard origin
	AnyOrigin = "*"
	// AllowedMethods is advertised in preflight responses
	AllowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

	allowHeadersExpiry  = 10 * time.Minute
	allowHeadersCleanup = 20 * time.Minute

	// request header lists longer than this, or arriving once the memo is full, are not memoised
	maxMemoKeyLength = 1024
	maxMemoEntries   = 1000
)

// Policy is a permissive cross-origin policy: any origin, any requested header
type Policy struct {
	maxAgeSeconds int
	allowHeaders  *cache.Cache
}

// New returns a policy; maxAgeSeconds <= 0 leaves Access-Control-Max-Age unset
func New(maxAgeSeconds int) *Policy {
	return &Policy{
		maxAgeSeconds: maxAgeSeconds,
		allowHeaders:  cache.New(allowHeadersExpiry, allowHeadersCleanup),
	}
}

// Handler runs the policy ahead of next. OPTIONS requests never reach next.
func (policy *Policy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(AllowOrigin, AnyOrigin)
		if r.Method == http.MethodOptions {
			policy.preflight(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (policy *Policy) preflight(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set(allowMethods, AllowedMethods)

	requested := strings.Join(r.Header.Values(requestHeaders), ",")
	if allowed := policy.allowedHeaders(requested); allowed != "" {
		header.Set(allowHeaders, allowed)
		header.Add("Vary", requestHeaders)
	}
	if policy.maxAgeSeconds > 0 {
		header.Set(maxAge, strconv.Itoa(policy.maxAgeSeconds))
	}

	log.WithFields(log.Fields{
		"path":    r.URL.Path,
		"origin":  r.Header.Get("Origin"),
		"headers": requested,
	}).Debug("preflight")
	w.WriteHeader(http.StatusNoContent)
}

// allowedHeaders reflects the requested header list, lower-cased and de-duplicated
func (policy *Policy) allowedHeaders(requested string) string {
	if strings.TrimSpace(requested) == "" {
		return ""
	}
	if allowed, found := policy.allowHeaders.Get(requested); found {
		return allowed.(string)
	}

	names := funk.Map(strings.Split(requested, ","), func(name string) string {
		return strings.ToLower(strings.TrimSpace(name))
	}).([]string)
	names = funk.FilterString(names, func(name string) bool {
		return name != ""
	})
	allowed := strings.Join(funk.UniqString(names), ",")

	if len(requested) <= maxMemoKeyLength && policy.allowHeaders.ItemCount() < maxMemoEntries {
		policy.allowHeaders.SetDefault(requested, allowed)
	}
	return allowed
}
