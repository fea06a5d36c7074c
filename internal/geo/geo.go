// Package geo captures a client position once and measures great-circle
// distances from it.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

const earthRadiusKm = 6371

// ErrUnsupported is recorded when the client has no location capability.
var ErrUnsupported = errors.New("Geolocation is not supported by your browser")

// PositionProvider reports the device position, as a browser would.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (types.Location, error)
}

// StaticProvider reports a position the client already resolved.
type StaticProvider types.Location

func (p StaticProvider) CurrentPosition(context.Context) (types.Location, error) {
	loc := types.Location(p)
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return types.Location{}, fmt.Errorf("position out of range: %v,%v", loc.Lat, loc.Lng)
	}
	return loc, nil
}

// DeniedProvider reports a refused permission prompt.
type DeniedProvider struct {
	Reason string
}

func (p DeniedProvider) CurrentPosition(context.Context) (types.Location, error) {
	if p.Reason == "" {
		return types.Location{}, errors.New("User denied Geolocation")
	}
	return types.Location{}, errors.New(p.Reason)
}

// Locator holds the result of a single position capture. It never retries
// and never polls; once Capture has run, the outcome is fixed.
type Locator struct {
	once   sync.Once
	done   chan struct{}
	logger *slog.Logger

	position *types.Location
	err      error
}

func NewLocator(logger *slog.Logger) *Locator {
	return &Locator{done: make(chan struct{}), logger: logger}
}

// Capture asks provider for the position. Only the first call has any
// effect. A nil provider records ErrUnsupported; a cancelled ctx records
// ctx.Err().
func (l *Locator) Capture(ctx context.Context, provider PositionProvider) {
	l.once.Do(func() {
		defer close(l.done)
		if provider == nil {
			l.err = ErrUnsupported
			return
		}

		type result struct {
			loc types.Location
			err error
		}
		ch := make(chan result, 1)
		go func() {
			loc, err := provider.CurrentPosition(ctx)
			ch <- result{loc, err}
		}()

		select {
		case <-ctx.Done():
			l.err = ctx.Err()
		case res := <-ch:
			if res.err != nil {
				l.err = res.err
				break
			}
			loc := res.loc
			l.position = &loc
		}
		if l.err != nil {
			l.logger.DebugContext(ctx, "Position capture failed", slog.Any("error", l.err))
		}
	})
}

// Done is closed once Capture has finished.
func (l *Locator) Done() <-chan struct{} {
	return l.done
}

func (l *Locator) Position() (types.Location, bool) {
	select {
	case <-l.done:
	default:
		return types.Location{}, false
	}
	if l.position == nil {
		return types.Location{}, false
	}
	return *l.position, true
}

// Err returns the recorded capture error, if any.
func (l *Locator) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// DistanceTo returns the distance in kilometers to target with one decimal,
// or false when no position has been captured.
func (l *Locator) DistanceTo(target types.Location) (string, bool) {
	pos, ok := l.Position()
	if !ok {
		return "", false
	}
	return FormatKm(Haversine(pos, target)), true
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b types.Location) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FormatKm renders a distance with exactly one decimal.
func FormatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64)
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
