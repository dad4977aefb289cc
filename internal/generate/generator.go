// Package generate synthesizes realistic fire/EMS entity graphs from weighted
// reference tables.
//
// Every Generator owns its own pseudo-random source and a fixed reference
// time, so two generators built with the same seed and epoch produce
// identical output. There is no package-level random state.
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

// DefaultEpoch anchors generated timestamps when no epoch is configured.
var DefaultEpoch = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// ErrInvalidOverride is returned when an explicit option names a value that
// the reference tables do not know or that breaks an entity invariant.
var ErrInvalidOverride = errors.New("invalid override")

// Generator produces entities from a private seeded source. It is not safe
// for concurrent use.
type Generator struct {
	rng   *rand.Rand
	seed  int64
	epoch time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithEpoch sets the reference time all generated timestamps are drawn
// relative to. Sub-second precision is dropped.
func WithEpoch(t time.Time) Option {
	return func(g *Generator) {
		g.epoch = t.UTC().Truncate(time.Second)
	}
}

// WithClock uses the clock's current time as the epoch.
func WithClock(c clockwork.Clock) Option {
	return func(g *Generator) {
		g.epoch = c.Now().UTC().Truncate(time.Second)
	}
}

// New returns a Generator seeded with seed.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec // test data, not crypto
		seed:  seed,
		epoch: DefaultEpoch,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewRandom returns a Generator seeded from the domain clock. Its output is
// not reproducible unless the seed is read back with Seed.
func NewRandom(opts ...Option) *Generator {
	return New(domain.Clock().Now().UnixNano(), opts...)
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// Epoch returns the generator's reference time.
func (g *Generator) Epoch() time.Time { return g.epoch }

func (g *Generator) newID() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) int64Between(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Int63n(hi-lo+1)
}

func (g *Generator) seconds(r secondsRange) time.Duration {
	return time.Duration(g.intBetween(r.Min, r.Max)) * time.Second
}

// daysAgo returns a timestamp between lo and hi days before the epoch, at
// second resolution.
func (g *Generator) daysAgo(lo, hi int) time.Time {
	days := g.intBetween(lo, hi)
	secs := g.intBetween(0, 86399)
	return g.epoch.AddDate(0, 0, -days).Add(-time.Duration(secs) * time.Second)
}

// updatedAfter returns a timestamp between created and the epoch.
func (g *Generator) updatedAfter(created time.Time) time.Time {
	span := int64(g.epoch.Sub(created) / time.Second)
	if span <= 0 {
		return created
	}
	return created.Add(time.Duration(g.int64Between(0, span)) * time.Second)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) personName() (string, string) {
	return g.pick(firstNames), g.pick(lastNames)
}

func (g *Generator) phone(areaCode int) string {
	return fmt.Sprintf("(%03d) %03d-%04d", areaCode, g.intBetween(200, 999), g.intBetween(0, 9999))
}

func (g *Generator) streetAddress() string {
	return fmt.Sprintf("%d %s", g.intBetween(100, 9999), g.pick(streets))
}

func (g *Generator) zipCode() string {
	return fmt.Sprintf("%05d", g.intBetween(10000, 99999))
}

// areaCodeFor returns the anchor city's area code, or a random one for
// locations outside the city table.
func (g *Generator) areaCodeFor(cityName string) int {
	for _, c := range cities {
		if c.Value.Name == cityName {
			return c.Value.AreaCode
		}
	}
	return g.intBetween(201, 989)
}

// Near places a new location within radiusKM of base, keeping its city and
// state and drawing a fresh street address.
func (g *Generator) Near(base domain.Location, radiusKM float64) domain.Location {
	lat, lon := Coordinates(g.rng, base.Lat, base.Lon, radiusKM)
	return domain.Location{
		Lat:     round(lat, 6),
		Lon:     round(lon, 6),
		Address: g.streetAddress(),
		City:    base.City,
		State:   base.State,
		ZipCode: g.zipCode(),
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '/':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func contains[T comparable](choices []Choice[T], v T) bool {
	for _, c := range choices {
		if c.Value == v {
			return true
		}
	}
	return false
}
