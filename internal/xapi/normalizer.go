package xapi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// ErrInvalidStatement is returned when a statement carries a field that is present but unusable.
var ErrInvalidStatement = errors.New("invalid xAPI statement")

const gameNameLocale = "en-US"

// Normalizer maps xAPI statements onto analytics records.
type Normalizer struct {
	clock  analytics.Clock
	newID  func() string
	mapper ContextMapper
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock sets the clock used for the default start time.
func WithClock(clock analytics.Clock) Option {
	return func(n *Normalizer) {
		n.clock = clock
	}
}

// WithIDGenerator sets the generator used for statements without an id.
func WithIDGenerator(newID func() string) Option {
	return func(n *Normalizer) {
		n.newID = newID
	}
}

// WithContextMapper replaces the grouping convention used for school, grade and subject.
func WithContextMapper(mapper ContextMapper) Option {
	return func(n *Normalizer) {
		n.mapper = mapper
	}
}

// NewNormalizer creates a Normalizer using the system clock, random UUIDs and the default GroupingMapper.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		clock:  analytics.SystemClock,
		newID:  uuid.NewString,
		mapper: NewGroupingMapper("", "", ""),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts a statement into a record. Missing optional structures leave the
// corresponding fields unset; the only error is an unparsable timestamp.
// CreatedAt and UpdatedAt are left for the store to set.
func (n *Normalizer) Normalize(statement Statement) (analytics.GameAnalytics, error) {
	startTime, err := n.startTime(statement.Timestamp)
	if err != nil {
		return analytics.GameAnalytics{}, err
	}

	id := statement.ID
	if id == "" {
		id = n.newID()
	}

	record := analytics.GameAnalytics{
		ID:        id,
		UserID:    userID(statement.Actor),
		UserName:  statement.Actor.Name,
		GameID:    statement.Object.ID,
		GameName:  gameName(statement.Object),
		StartTime: startTime,
	}

	if result := statement.Result; result != nil {
		if score := result.Score; score != nil {
			record.Score = score.Raw
			record.MaxScore = score.Max
			if score.Scaled != nil {
				record.PercentageScore = analytics.Float64(*score.Scaled * 100)
			}
		}
		if result.Completion != nil {
			record.Completed = analytics.Bool(*result.Completion)
		}
		if result.Success != nil {
			record.Passed = analytics.Bool(*result.Success)
		}
	}

	if statement.Context != nil && statement.Context.ContextActivities != nil && n.mapper != nil {
		n.mapper.MapContext(*statement.Context.ContextActivities, &record)
	}

	return record, nil
}

func (n *Normalizer) startTime(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return n.clock.Now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %w", ErrInvalidStatement, timestamp, err)
	}
	return t, nil
}

// userID prefers the account name over the mailbox.
func userID(actor Actor) string {
	if actor.Account != nil && actor.Account.Name != "" {
		return actor.Account.Name
	}
	if actor.Mbox != "" {
		return strings.Replace(actor.Mbox, "mailto:", "", 1)
	}
	return ""
}

func gameName(object Object) string {
	if object.Definition != nil {
		if name := object.Definition.Name[gameNameLocale]; name != "" {
			return name
		}
	}
	return analytics.UnknownGameName
}
