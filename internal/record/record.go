package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// GameRecord is one captured hand exactly as the source feed delivers it.
// The rendering engine reads it and never mutates it.
type GameRecord struct {
	Key       string  `json:"key"`
	Currency  string  `json:"currency"`
	Blinds    Blinds  `json:"blinds"`
	NumSeats  int     `json:"numSeats"`
	Name      string  `json:"name"`
	Table     string  `json:"table"`
	RakeTaken float64 `json:"rakeTaken"`
	Rounds    []Round `json:"rounds"`
	Seats     []Seat  `json:"seats"`
}

// Blinds holds the posted blind amounts for the hand.
type Blinds struct {
	Small float64 `json:"small"`
	Big   float64 `json:"big"`
}

// Round marks the start of a betting street and the community cards revealed
// with it. The feed emits one entry per street actually reached.
type Round struct {
	Round     Street    `json:"round"`
	Time      Timestamp `json:"time"`
	Community []Card    `json:"community,omitempty"`
}

// Seat is one position at the table. Index is 1-based and stable for the hand.
type Seat struct {
	Index            int        `json:"index"`
	Account          string     `json:"account"`
	Stack            float64    `json:"stack"`
	PotContributions float64    `json:"potContributions"`
	RakeTaken        float64    `json:"rakeTaken"`
	IsDealer         bool       `json:"isDealer"`
	IsSmallBlind     bool       `json:"isSmallBlind"`
	IsBigBlind       bool       `json:"isBigBlind"`
	IsFolded         bool       `json:"isFolded"`
	Mucked           bool       `json:"mucked"`
	Winnings         float64    `json:"winnings"`
	Cards            []SeatCard `json:"cards,omitempty"`
	Actions          []Action   `json:"actions"`
}

// HoleCards returns the seat's own cards, excluding any the feed flagged as
// community cards.
func (s *Seat) HoleCards() []Card {
	cards := make([]Card, 0, 2)
	for _, c := range s.Cards {
		if !c.Community {
			cards = append(cards, c.Card)
		}
	}
	return cards
}

// SeatCard is a card plus the feed's community flag.
type SeatCard struct {
	Card
	Community bool `json:"community,omitempty"`
}

// Action is a single timed player action.
type Action struct {
	Type   ActionType `json:"type"`
	Amount float64    `json:"amount"`
	Time   Timestamp  `json:"time"`
}

// Street identifies one of the four betting rounds.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

// Streets lists all streets in play order.
var Streets = []Street{PreFlop, Flop, Turn, River}

var streetNames = map[Street]string{
	PreFlop: "PREFLOP",
	Flop:    "FLOP",
	Turn:    "TURN",
	River:   "RIVER",
}

func (s Street) String() string {
	if name, ok := streetNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Street(%d)", int(s))
}

// ParseStreet converts a feed round name into a Street.
func ParseStreet(name string) (Street, error) {
	for street, n := range streetNames {
		if n == name {
			return street, nil
		}
	}
	return PreFlop, fmt.Errorf("record: unknown street %q", name)
}

// UnmarshalJSON decodes the feed's round names (PREFLOP, FLOP, TURN, RIVER).
func (s *Street) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	street, err := ParseStreet(name)
	if err != nil {
		return err
	}
	*s = street
	return nil
}

// MarshalJSON emits the feed's round name.
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ActionType is the closed set of player actions the feed emits.
type ActionType int

const (
	ActionPostBlind ActionType = iota
	ActionFold
	ActionCall
	ActionRaise
	ActionCheck
)

var actionNames = map[ActionType]string{
	ActionPostBlind: "POST_BLIND",
	ActionFold:      "FOLD",
	ActionCall:      "CALL",
	ActionRaise:     "RAISE",
	ActionCheck:     "CHECK",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", int(a))
}

// ParseActionType converts a feed action name into an ActionType.
func ParseActionType(name string) (ActionType, error) {
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return ActionPostBlind, fmt.Errorf("record: unknown action type %q", name)
}

// UnmarshalJSON decodes the feed's action names.
func (a *ActionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	action, err := ParseActionType(name)
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// MarshalJSON emits the feed's action name.
func (a ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Timestamp wraps time.Time to decode the feed's two time encodings: RFC3339
// strings and epoch milliseconds.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts either a quoted RFC3339 string or a numeric epoch in
// milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("record: empty timestamp")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("record: bad timestamp %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}
	millis, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("record: bad timestamp %s: %w", data, err)
	}
	t.Time = time.UnixMilli(int64(millis)).UTC()
	return nil
}

// MarshalJSON emits RFC3339 with sub-second precision, which the feed also
// accepts on re-import.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
