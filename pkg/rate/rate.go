// Package rate parses declared endpoint rates of the form "<n>req/<unit>",
// e.g. "2req/sec" or "30req/min".
package rate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Rate struct {
	Limit  int
	Window time.Duration
}

var rateRe = regexp.MustCompile(`^(\d+)req/(sec|min|hour|day)$`)

var unitSeconds = map[string]time.Duration{
	"sec":  time.Second,
	"min":  time.Minute,
	"hour": time.Hour,
	"day":  24 * time.Hour,
}

func Parse(s string) (Rate, error) {
	m := rateRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Rate{}, fmt.Errorf("invalid rate %q", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return Rate{}, fmt.Errorf("invalid rate %q", s)
	}
	return Rate{Limit: n, Window: unitSeconds[m[2]]}, nil
}

// MustParse is for statically declared rates on route registration.
func MustParse(ss ...string) []Rate {
	rates := make([]Rate, 0, len(ss))
	for _, s := range ss {
		r, err := Parse(s)
		if err != nil {
			panic(err)
		}
		rates = append(rates, r)
	}
	return rates
}
