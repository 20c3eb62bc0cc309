package multidayservice

import (
	"context"
	"fmt"
)

// FakeEventRepository is a programmable Repository for tests.
type FakeEventRepository struct {
	trace []string

	GetEventFunc       func(ctx context.Context, eventID int64) (Event, []EventPlayer, error)
	GetEventRoundsFunc func(ctx context.Context, eventID int64) ([]EventRound, error)
}

func (f *FakeEventRepository) record(call string) {
	f.trace = append(f.trace, call)
}

func (f *FakeEventRepository) GetEvent(ctx context.Context, eventID int64) (Event, []EventPlayer, error) {
	f.record(fmt.Sprintf("GetEvent(%d)", eventID))
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, eventID)
	}
	return Event{}, nil, nil
}

func (f *FakeEventRepository) GetEventRounds(ctx context.Context, eventID int64) ([]EventRound, error) {
	f.record(fmt.Sprintf("GetEventRounds(%d)", eventID))
	if f.GetEventRoundsFunc != nil {
		return f.GetEventRoundsFunc(ctx, eventID)
	}
	return nil, nil
}
