package plans

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/raidplan/internal/repositories/plans TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type utcTimeProvider struct{}

func (utcTimeProvider) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// UTC returns the default clock: wall time in UTC at millisecond precision
func UTC() TimeProvider {
	return utcTimeProvider{}
}
