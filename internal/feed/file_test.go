package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lox/handscribe/internal/record"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")

	batch := record.Batch{
		"1001": &record.GameRecord{
			Key:      "1001",
			Currency: "USD",
			Blinds:   record.Blinds{Small: 1, Big: 2},
			Rounds: []record.Round{{
				Round: record.PreFlop,
				Time:  record.Timestamp{Time: time.Date(2021, 9, 22, 13, 53, 16, 0, time.UTC)},
			}},
			Seats: []record.Seat{{Index: 1, Account: "hero", Stack: 200}},
		},
	}

	require.NoError(t, SaveFile(path, batch))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	game := loaded["1001"]
	require.Equal(t, "USD", game.Currency)
	require.Equal(t, 2.0, game.Blinds.Big)
	require.True(t, game.Rounds[0].Time.Equal(batch["1001"].Rounds[0].Time.Time))
	require.Equal(t, "hero", game.Seats[0].Account)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := LoadFile(path)
	require.Error(t, err)
}
