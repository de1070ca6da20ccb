package astro

import (
	"context"
	"errors"
	"log"
)

// ErrNoProviders mirrors the weather chain's terminal error; unreachable
// while the mock provider ends the chain.
var ErrNoProviders = errors.New("no astronomy provider produced data")

// Service resolves sun/moon timing through an ordered fail-soft fallback
// chain, same shape as the weather side.
type Service struct {
	providers []Provider
}

func NewService(providers []Provider) *Service {
	return &Service{providers: providers}
}

// SunMoon walks the provider chain for the given coordinates. date may be
// empty for "today". Provider failures are logged and swallowed.
func (s *Service) SunMoon(ctx context.Context, lat, lon float64, date string) (SunMoonTimes, error) {
	for _, p := range s.providers {
		sm, err := p.SunMoon(ctx, lat, lon, date)
		if err != nil {
			log.Printf("ERROR: astronomy provider %s failed for %.4f,%.4f: %v", p.Name(), lat, lon, err)
			continue
		}
		return sm, nil
	}
	return SunMoonTimes{}, ErrNoProviders
}
