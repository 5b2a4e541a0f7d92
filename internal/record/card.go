package record

// Suit is one of the four feed suit names.
type Suit string

const (
	Diamonds Suit = "DIAMONDS"
	Hearts   Suit = "HEARTS"
	Spades   Suit = "SPADES"
	Clubs    Suit = "CLUBS"
)

// Letter maps a suit to the single-letter code used by hand-history exports.
func (s Suit) Letter() string {
	switch s {
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Card is a playing card as the feed encodes it.
type Card struct {
	Rank string `json:"rank"`
	Suit Suit   `json:"suit"`
}

// String renders the card in <rank><suit-letter> notation, e.g. "Ah".
// Feeds that spell out a ten as "10" are normalised to "T".
func (c Card) String() string {
	rank := c.Rank
	if rank == "10" {
		rank = "T"
	}
	return rank + c.Suit.Letter()
}
