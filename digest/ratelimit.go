package digest

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/newsgenie"
	"golang.org/x/time/rate"
)

var _ newsgenie.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces ExtractAll so that a batch of article URLs never hits
// one publisher faster than the configured rate. Links into the same site
// (www.example.com and example.com alike) wait on one bucket while other
// publishers in the batch are fetched in parallel.
type DomainLimiter struct {
	mu         sync.Mutex
	publishers map[string]*rate.Limiter
	every      rate.Limit
}

// NewDomainLimiter allows rps article fetches per second to each publisher.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		publishers: make(map[string]*rate.Limiter),
		every:      rate.Limit(rps),
	}
}

// Wait blocks until the publisher serving host may be fetched again or ctx
// is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(publisher(host)).Wait(ctx)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.publishers[key]
	if !ok {
		b = rate.NewLimiter(d.every, 1)
		d.publishers[key] = b
	}
	return b
}

// publisher folds case, a trailing dot and a leading "www." out of host.
func publisher(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return strings.TrimPrefix(host, "www.")
}
