package scrapestore

import (
	"context"
	"coniugo-backend/lib/scrapers/wordreference"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPushAndRecent(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()
	store := NewStore(database)

	ctx := context.Background()

	conj := wordreference.NewTable()
	conj.Set("indicativo", "presente", "io", "parlo")
	first := wordreference.Result{
		Queried:      "parlare",
		URL:          "https://example.com/conj?v=parlare",
		Auxiliary:    wordreference.AuxiliaryAvere,
		Conjugations: conj,
	}
	require.NoError(t, store.Push(ctx, first, time.Unix(1000, 0)))

	second := wordreference.Result{
		Queried: "andare",
		URL:     "https://example.com/conj?v=andare",
	}
	require.NoError(t, store.Push(ctx, second, time.Unix(2000, 0)))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "andare", entries[0].Verb)
	require.Equal(t, "parlare", entries[1].Verb)
	require.Equal(t, "avere", entries[1].Auxiliary)
	require.Equal(t, time.Unix(1000, 0), entries[1].FetchedAt)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entries[1].Payload, &decoded))
	require.Equal(t, "parlare", decoded["queried"])

	entries, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "andare", entries[0].Verb)
}
