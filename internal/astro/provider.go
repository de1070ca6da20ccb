package astro

import "context"

// Provider abstracts a sun/moon timing source. Providers are tried in chain
// order, ending with the static mock.
type Provider interface {
	Name() string
	SunMoon(ctx context.Context, lat, lon float64, date string) (SunMoonTimes, error)
}
