package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractItemsTabular(t *testing.T) {
	text := "DESC              QT  VL UNIT   VL TOTAL\n" +
		"Leite Integral     2   4,79      9,58\n" +
		"Pao Forma          1   7,90      7,90\n"

	items := extractItems(text)
	require.Len(t, items, 2)

	assert.Equal(t, "Leite Integral", items[0].Description)
	assert.Equal(t, Count(2), items[0].Quantity)
	assert.InDelta(t, 4.79, items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 9.58, items[0].TotalPrice, 1e-9)
	assert.False(t, items[0].CorrectionApplied)

	assert.Equal(t, "Pao Forma", items[1].Description)
	assert.InDelta(t, 7.90, items[1].TotalPrice, 1e-9)
}

func TestExtractItemsSplitQuantityPrice(t *testing.T) {
	t.Run("misread trailing O is repaired", func(t *testing.T) {
		items := extractItems("Dipirona sod 500mg\n02 x 6.5O\n")
		require.Len(t, items, 1)
		assert.Equal(t, "Dipirona sod 500mg", items[0].Description)
		assert.Equal(t, Count(2), items[0].Quantity)
		assert.InDelta(t, 6.5, items[0].UnitPrice, 1e-9)
		assert.InDelta(t, 13.0, items[0].TotalPrice, 1e-9)
		assert.True(t, items[0].CorrectionApplied)
	})

	t.Run("clean price needs no repair", func(t *testing.T) {
		items := extractItems("Vitamina C\n1x12,00\n")
		require.Len(t, items, 1)
		assert.InDelta(t, 12.0, items[0].TotalPrice, 1e-9)
		assert.False(t, items[0].CorrectionApplied)
	})

	t.Run("header as previous line yields nothing", func(t *testing.T) {
		items := extractItems("CUPOM FISCAL\n02 x 6.50\n")
		assert.Empty(t, items)
	})

	t.Run("blank previous line yields nothing", func(t *testing.T) {
		items := extractItems("\n02 x 6.50\n")
		assert.Empty(t, items)
	})
}

func TestExtractItemsQuantityFirst(t *testing.T) {
	items := extractItems("02 X-TUDO     18,9\n01 Cerveja    9,50\n")
	require.Len(t, items, 2)

	assert.Equal(t, "X-TUDO", items[0].Description)
	assert.Equal(t, Count(2), items[0].Quantity)
	assert.InDelta(t, 18.9, items[0].TotalPrice, 1e-9)
	assert.InDelta(t, 9.45, items[0].UnitPrice, 1e-9)

	assert.Equal(t, "Cerveja", items[1].Description)
	assert.InDelta(t, 9.5, items[1].UnitPrice, 1e-9)
}

func TestExtractItemsDegradedFragments(t *testing.T) {
	items := extractItems("fe jao pr    1k     8,9\n")
	require.Len(t, items, 1)

	assert.Equal(t, "Feijão pr", items[0].Description)
	assert.Equal(t, Label("1k"), items[0].Quantity)
	assert.InDelta(t, 8.9, items[0].TotalPrice, 1e-9)
	assert.Zero(t, items[0].UnitPrice)
	assert.True(t, items[0].CorrectionApplied)
}

func TestExtractItemsDegradedAmountWithSpaces(t *testing.T) {
	items := extractItems("ole soja    1k    1 ,80\n")
	require.Len(t, items, 1)
	assert.InDelta(t, 1.80, items[0].TotalPrice, 1e-9)
}

func TestExtractItemsSkipsHeadersAndNoise(t *testing.T) {
	text := "SUPERMERCADO IDEAL LTDA\n" +
		"CNPJ: 23.456.789/0001-10\n" +
		"CUPOM FISCAL\n" +
		"Data: 15/01/2026\n" +
		"Hora: 16:41\n" +
		"Mesa 07\n" +
		"TOTAL R$ 17,48\n" +
		"Pagamento: Débito\n" +
		"random line that matches nothing\n"

	assert.Empty(t, extractItems(text))
}

func TestItemMatcherPriorityOrder(t *testing.T) {
	var names []string
	for _, m := range itemMatchers {
		names = append(names, m.name)
	}
	assert.Equal(t, []string{"tabular", "split-quantity-price", "quantity-first", "degraded-fragments"}, names)
}

func TestExtractItemsFirstMatcherWins(t *testing.T) {
	// A tabular line also superficially fits the quantity-first shape once
	// reordered; the declared order decides.
	items := extractItems("Cafe Torrado 3 5,00 15,00\n")
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe Torrado", items[0].Description)
	assert.Equal(t, Count(3), items[0].Quantity)
	assert.InDelta(t, 5.0, items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 15.0, items[0].TotalPrice, 1e-9)
}
