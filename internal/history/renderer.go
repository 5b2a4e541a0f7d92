// Package history renders captured game records as textual hand-history
// documents in the PokerStars export grammar, the format poker-tracking tools
// import.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handscribe/internal/record"
	"github.com/lox/handscribe/internal/timeline"
)

// renderFailedText is returned for the whole batch when rendering fails in a
// way that cannot be contained to a single hand. Callers always receive
// displayable text, never an error.
const renderFailedText = "handscribe: hand history rendering failed"

// Renderer turns game records into hand-history text. It holds only
// configuration; all per-hand state lives inside a single RenderHand call, so
// one Renderer may render many hands concurrently.
type Renderer struct {
	logger  *log.Logger
	room    string
	variant string
	symbols map[string]string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRoom overrides the room label on the header line.
func WithRoom(room string) Option {
	return func(r *Renderer) { r.room = room }
}

// WithVariant overrides the game variant label.
func WithVariant(variant string) Option {
	return func(r *Renderer) { r.variant = variant }
}

// WithCurrencySymbol adds or overrides a currency display symbol.
func WithCurrencySymbol(code, symbol string) Option {
	return func(r *Renderer) { r.symbols[code] = symbol }
}

// NewRenderer creates a renderer with the default room and currency table.
func NewRenderer(logger *log.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		logger:  logger.WithPrefix("render"),
		room:    "PokerStars",
		variant: "Hold'em No Limit",
		symbols: make(map[string]string, len(defaultSymbols)),
	}
	for code, symbol := range defaultSymbols {
		r.symbols[code] = symbol
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBatch renders every hand in the batch and joins the documents with a
// blank line, in stable key order. Hands render independently and in
// parallel; a failure that escapes a hand fails the batch, which then yields
// a fixed diagnostic string instead of an error.
func (r *Renderer) RenderBatch(batch record.Batch) string {
	if len(batch) == 0 {
		return ""
	}

	keys := batch.SortedKeys()
	docs := make([]string, len(keys))

	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			doc, err := r.RenderHand(batch[key])
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error("batch render failed", "error", err)
		return renderFailedText
	}

	// Skipped hands rendered as "" are dropped so siblings stay unaffected.
	out := docs[:0]
	for _, doc := range docs {
		if doc != "" {
			out = append(out, doc)
		}
	}
	return strings.Join(out, "\n")
}

// RenderHand renders a single hand-history document. A record missing its
// rounds or seats is skipped: it renders as the empty string with a logged
// diagnostic and no error, so the rest of the batch is unaffected. A record
// with no dealer seat returns an error, because the table line cannot be
// produced without the button.
func (r *Renderer) RenderHand(g *record.GameRecord) (string, error) {
	if g == nil {
		r.logger.Warn("skipping nil game record")
		return "", nil
	}
	if len(g.Rounds) == 0 || len(g.Seats) == 0 {
		r.logger.Warn("skipping hand with missing rounds or seats",
			"key", g.Key, "rounds", len(g.Rounds), "seats", len(g.Seats))
		return "", nil
	}

	sym := r.symbol(g.Currency)

	var b strings.Builder
	b.WriteString(r.headerLine(g))

	tableLine, err := r.tableLine(g)
	if err != nil {
		return "", err
	}
	b.WriteString(tableLine)
	r.writeSeatList(&b, g, sym)

	// The blinds block seeds the running top bet; every street block zeroes
	// it again on entry, so the first raise on any street reads as a bet.
	topBet := r.writeBlinds(&b, g, sym)

	streets := timeline.Reconstruct(g.Seats, g.Rounds)
	boards := boardsByStreet(g.Rounds)
	for _, street := range record.Streets {
		topBet = r.writeStreetBlock(&b, g, street, streets.Actions(street), boards, sym, topBet)
	}

	r.writeSummary(&b, g, boards[record.River], sym)

	return b.String(), nil
}

// headerLine emits the room hand-number/stakes/variant/timestamp line. The
// hand timestamp is the first round entry, the deal event.
func (r *Renderer) headerLine(g *record.GameRecord) string {
	stamp := g.Rounds[0].Time.UTC().Format("2006/01/02 15:04:05") + " UTC"
	return fmt.Sprintf("%s Hand #%s: %s (%s/%s %s) - %s\n",
		r.room, g.Key, r.variant,
		formatAmount(g.Blinds.Small), formatAmount(g.Blinds.Big),
		g.Currency, stamp)
}

func (r *Renderer) tableLine(g *record.GameRecord) (string, error) {
	button := 0
	for _, seat := range g.Seats {
		if seat.IsDealer {
			button = seat.Index
			break
		}
	}
	if button == 0 {
		return "", fmt.Errorf("history: hand %s has no dealer seat", g.Key)
	}
	return fmt.Sprintf("Table '%s_%s/%s No Limit Hold'em - %s' %d-max Seat #%d is the button\n",
		g.Name, formatAmount(g.Blinds.Small), formatAmount(g.Blinds.Big),
		g.Table, g.NumSeats, button), nil
}

// writeSeatList prints one line per seat in index order. The stack shown is
// the pre-hand buy-in total, stack plus pot contributions plus rake, which is
// what tracker imports expect rather than the live remaining stack.
func (r *Renderer) writeSeatList(b *strings.Builder, g *record.GameRecord, sym string) {
	for _, seat := range g.Seats {
		total := seat.Stack + seat.PotContributions + seat.RakeTaken
		fmt.Fprintf(b, "Seat %d: %s (%s%s in chips)\n",
			seat.Index, seat.Account, sym, formatAmount(total))
	}
}

// writeBlinds emits the posting lines once, outside any street block, and
// returns the big blind as the initial top bet.
func (r *Renderer) writeBlinds(b *strings.Builder, g *record.GameRecord, sym string) float64 {
	for _, seat := range g.Seats {
		if seat.IsSmallBlind {
			fmt.Fprintf(b, "%s: posts small blind %s%s\n",
				seat.Account, sym, formatAmount(g.Blinds.Small))
			break
		}
	}
	for _, seat := range g.Seats {
		if seat.IsBigBlind {
			fmt.Fprintf(b, "%s: posts big blind %s%s\n",
				seat.Account, sym, formatAmount(g.Blinds.Big))
			break
		}
	}
	return g.Blinds.Big
}

// writeStreetBlock emits one street's header and actions. A street appears
// when it has actions or when its round was actually dealt, so a flop with no
// further betting still shows its cards.
func (r *Renderer) writeStreetBlock(b *strings.Builder, g *record.GameRecord, street record.Street, actions []timeline.SeatAction, boards map[record.Street][]record.Card, sym string, topBet float64) float64 {
	if len(actions) == 0 && !roundOccurred(g.Rounds, street) {
		return topBet
	}

	b.WriteString(streetHeader(street, boards[street]))

	// Streets do not inherit the previous street's bet level.
	topBet = 0
	for _, action := range actions {
		line, next := actionLine(action, topBet, sym)
		topBet = next
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return topBet
}

// actionLine formats one action and returns the updated top bet. A RAISE
// against a zero top bet is an opening bet; against a live one it is a raise
// by the difference. The input carries no flag for this, the running state is
// the only way to tell.
func actionLine(a timeline.SeatAction, topBet float64, sym string) (string, float64) {
	switch a.Type {
	case record.ActionFold:
		return fmt.Sprintf("%s: folds", a.Account), topBet
	case record.ActionCheck:
		return fmt.Sprintf("%s: checks", a.Account), topBet
	case record.ActionCall:
		return fmt.Sprintf("%s: calls %s%s", a.Account, sym, formatAmount(a.Amount)), topBet
	case record.ActionRaise:
		if topBet == 0 {
			return fmt.Sprintf("%s: bets %s%s", a.Account, sym, formatAmount(a.Amount)), a.Amount
		}
		return fmt.Sprintf("%s: raises %s%s to %s%s",
			a.Account, sym, formatAmount(a.Amount-topBet), sym, formatAmount(a.Amount)), a.Amount
	case record.ActionPostBlind:
		// Blind posts never reach the street buckets.
		return "", topBet
	default:
		return "", topBet
	}
}

func streetHeader(street record.Street, board []record.Card) string {
	switch street {
	case record.PreFlop:
		return "*** HOLE CARDS ***\n"
	case record.Flop:
		if len(board) >= 3 {
			return fmt.Sprintf("*** FLOP *** [%s]\n", formatCards(board[:3]))
		}
		return "*** FLOP ***\n"
	case record.Turn:
		if len(board) >= 4 {
			return fmt.Sprintf("*** TURN *** [%s] [%s]\n", formatCards(board[:3]), board[3])
		}
		return "*** TURN ***\n"
	case record.River:
		if len(board) >= 5 {
			return fmt.Sprintf("*** RIVER *** [%s] [%s]\n", formatCards(board[:4]), board[4])
		}
		return "*** RIVER ***\n"
	default:
		return ""
	}
}

// writeSummary emits the pot/rake line, the board, and one result line per
// seat with a non-zero outcome.
func (r *Renderer) writeSummary(b *strings.Builder, g *record.GameRecord, board []record.Card, sym string) {
	b.WriteString("*** SUMMARY ***\n")

	pot := 0.0
	for _, seat := range g.Seats {
		pot += seat.PotContributions
	}
	if g.RakeTaken > 0 {
		fmt.Fprintf(b, "Total pot %s%s | Rake %s%s\n", sym, formatAmount(pot), sym, formatAmount(g.RakeTaken))
	} else {
		fmt.Fprintf(b, "Total pot %s%s | No Rake\n", sym, formatAmount(pot))
	}

	if len(board) > 0 {
		fmt.Fprintf(b, "Board [%s]\n", formatCards(board))
	}

	for _, seat := range g.Seats {
		if seat.Winnings == 0 {
			continue
		}
		fmt.Fprintf(b, "Seat %d: %s%s%s\n",
			seat.Index, seat.Account, positionLabel(seat), resultClause(seat, sym))
	}
}

func positionLabel(seat record.Seat) string {
	switch {
	case seat.IsBigBlind:
		return " (big blind)"
	case seat.IsSmallBlind:
		return " (small blind)"
	case seat.IsDealer:
		return " (button)"
	default:
		return ""
	}
}

// resultClause renders the outcome for a seat with non-zero winnings,
// revealing hole cards only when the seat did not muck.
func resultClause(seat record.Seat, sym string) string {
	holes := seat.HoleCards()
	shown := !seat.Mucked && len(holes) > 0

	if seat.Winnings > 0 {
		if shown {
			return fmt.Sprintf(" showed [%s] and won (%s%s)",
				formatCards(holes), sym, formatAmount(seat.Winnings))
		}
		return fmt.Sprintf(" collected (%s%s)", sym, formatAmount(seat.Winnings))
	}
	if shown {
		return fmt.Sprintf(" showed [%s] and lost (%s%s)",
			formatCards(holes), sym, formatAmount(-seat.Winnings))
	}
	return fmt.Sprintf(" lost (%s%s)", sym, formatAmount(-seat.Winnings))
}

// boardsByStreet accumulates the community cards revealed up to each street.
// Feeds differ on whether a round carries just its new cards or repeats the
// whole board, so a round that covers the accumulated board replaces it.
func boardsByStreet(rounds []record.Round) map[record.Street][]record.Card {
	boards := make(map[record.Street][]record.Card, 3)
	var board []record.Card
	for _, round := range rounds {
		if round.Round == record.PreFlop || len(round.Community) == 0 {
			continue
		}
		if len(round.Community) >= len(board) {
			board = append([]record.Card(nil), round.Community...)
		} else {
			board = append(board, round.Community...)
		}
		boards[round.Round] = append([]record.Card(nil), board...)
	}
	// The river entry doubles as the full board for the summary; fall back to
	// the deepest street reached.
	if _, ok := boards[record.River]; !ok {
		if turn, ok := boards[record.Turn]; ok {
			boards[record.River] = turn
		} else if flop, ok := boards[record.Flop]; ok {
			boards[record.River] = flop
		}
	}
	return boards
}

func roundOccurred(rounds []record.Round, street record.Street) bool {
	for _, round := range rounds {
		if round.Round == street {
			return true
		}
	}
	return false
}

func formatCards(cards []record.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
