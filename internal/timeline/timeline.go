// Package timeline reconstructs the chronological, street-segmented action
// sequence of a hand from the feed's flat per-seat action lists.
//
// Action records carry no ordering key beyond a timestamp and a seat index,
// and street boundaries are not attached to actions; both have to be inferred
// from the round markers.
package timeline

import (
	"sort"
	"time"

	"github.com/lox/handscribe/internal/record"
)

// SeatAction is one player action stamped with the seat it came from.
type SeatAction struct {
	Seat    int
	Account string
	Type    record.ActionType
	Amount  float64
	Time    time.Time
}

// Streets holds the reconstructed per-street action sequences in display
// order. It exists only for the duration of one hand's render.
type Streets struct {
	PreFlop []SeatAction
	Flop    []SeatAction
	Turn    []SeatAction
	River   []SeatAction
}

// Actions returns the bucket for the given street.
func (s *Streets) Actions(street record.Street) []SeatAction {
	switch street {
	case record.PreFlop:
		return s.PreFlop
	case record.Flop:
		return s.Flop
	case record.Turn:
		return s.Turn
	case record.River:
		return s.River
	default:
		return nil
	}
}

// Reconstruct merges every seat's action list into one chronological sequence
// and partitions it into street buckets using the round start times.
//
// Blind posts are dropped here: they are rendered once in the blinds block,
// never inside a street. Ties on identical timestamps order the higher seat
// index first; that rule is fixed and must not change, output determinism
// depends on it.
func Reconstruct(seats []record.Seat, rounds []record.Round) Streets {
	all := flatten(seats)

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Time.Equal(all[j].Time) {
			return all[i].Time.Before(all[j].Time)
		}
		return all[i].Seat > all[j].Seat
	})

	flopAt := streetStart(rounds, record.Flop)
	turnAt := streetStart(rounds, record.Turn)
	riverAt := streetStart(rounds, record.River)

	var streets Streets
	for _, action := range all {
		switch {
		case flopAt == nil || action.Time.Before(*flopAt):
			streets.PreFlop = append(streets.PreFlop, action)
		case turnAt == nil || action.Time.Before(*turnAt):
			streets.Flop = append(streets.Flop, action)
		case riverAt == nil || action.Time.Before(*riverAt):
			streets.Turn = append(streets.Turn, action)
		default:
			streets.River = append(streets.River, action)
		}
	}
	return streets
}

func flatten(seats []record.Seat) []SeatAction {
	var all []SeatAction
	for _, seat := range seats {
		for _, action := range seat.Actions {
			if action.Type == record.ActionPostBlind {
				continue
			}
			all = append(all, SeatAction{
				Seat:    seat.Index,
				Account: seat.Account,
				Type:    action.Type,
				Amount:  action.Amount,
				Time:    action.Time.Time,
			})
		}
	}
	return all
}

// streetStart returns when the street was dealt, or nil if the hand never
// reached it.
func streetStart(rounds []record.Round, street record.Street) *time.Time {
	for _, round := range rounds {
		if round.Round == street {
			t := round.Time.Time
			return &t
		}
	}
	return nil
}
