package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptscan/internal/receipt"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult() receipt.ProcessedResult {
	total := 17.48
	return receipt.ProcessedResult{
		Data: receipt.Data{
			Establishment: "SUPERMERCADO IDEAL LTDA",
			TotalValue:    &total,
			Items: []receipt.LineItem{
				{Description: "Leite Integral", Quantity: receipt.Count(2), UnitPrice: 4.79, TotalPrice: 9.58},
				{Description: "fe jao", Quantity: receipt.Label("1k"), TotalPrice: 8.9, CorrectionApplied: true},
			},
		},
		Confidence: 0.95,
		Validations: []receipt.ValidationResult{
			{Field: receipt.FieldEstablishment, Success: true, Message: "establishment identified"},
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)

	entry, err := store.Save("receipt.txt", sampleResult())
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "receipt.txt", entry.Source)
	assert.False(t, entry.ProcessedAt.IsZero())

	loaded, err := store.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, loaded.ID)
	assert.Equal(t, entry.Result, loaded.Result)

	// Quantity survives the JSON round trip in both encodings.
	require.Len(t, loaded.Result.Data.Items, 2)
	assert.Equal(t, receipt.Count(2), loaded.Result.Data.Items[0].Quantity)
	assert.Equal(t, receipt.Label("1k"), loaded.Result.Data.Items[1].Quantity)
}

func TestGetUnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("no-such-id")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	first, err := store.Save("a.txt", sampleResult())
	require.NoError(t, err)
	second, err := store.Save("b.txt", sampleResult())
	require.NoError(t, err)

	entries, err = store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := []string{entries[0].ID, entries[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.False(t, entries[1].ProcessedAt.Before(entries[0].ProcessedAt))
}
