package cart

import (
	"math/rand"
	"testing"

	"shopelite/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prod(id int, price int64) product.Product {
	return product.Product{ID: id, Name: "p", Price: price, InStock: true}
}

func assertDerived(t *testing.T, s State) {
	t.Helper()
	var items int
	var price int64
	for _, it := range s.Items {
		items += it.Quantity
		price += it.Product.Price * int64(it.Quantity)
	}
	assert.Equal(t, items, s.TotalItems, "totalItems drifted")
	assert.Equal(t, price, s.TotalPrice, "totalPrice drifted")
}

func TestAddItem(t *testing.T) {
	t.Run("Appends new lines in insertion order", func(t *testing.T) {
		s, err := AddItem(Empty(), prod(2, 100), 1)
		require.NoError(t, err)
		s, err = AddItem(s, prod(1, 50), 3)
		require.NoError(t, err)

		require.Len(t, s.Items, 2)
		assert.Equal(t, 2, s.Items[0].Product.ID)
		assert.Equal(t, 1, s.Items[1].Product.ID)
		assert.Equal(t, 4, s.TotalItems)
		assert.Equal(t, int64(250), s.TotalPrice)
	})

	t.Run("Merges into an existing line", func(t *testing.T) {
		p := prod(1, 10)
		s, _ := AddItem(Empty(), p, 2)
		s, _ = AddItem(s, p, 3)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 5, s.Items[0].Quantity)
		assert.Equal(t, 5, s.TotalItems)
		assert.Equal(t, int64(50), s.TotalPrice)
	})

	t.Run("No upper bound at this layer", func(t *testing.T) {
		s, err := AddItem(Empty(), prod(1, 1), MaxQuantity*5)
		require.NoError(t, err)
		assert.Equal(t, MaxQuantity*5, s.Items[0].Quantity)
	})

	t.Run("Rejects non-positive quantity", func(t *testing.T) {
		start, _ := AddItem(Empty(), prod(1, 10), 1)
		for _, q := range []int{0, -1} {
			s, err := AddItem(start, prod(1, 10), q)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
			assert.Equal(t, start, s)
		}
	})

	t.Run("Does not modify the input state", func(t *testing.T) {
		start, _ := AddItem(Empty(), prod(1, 10), 1)
		_, _ = AddItem(start, prod(1, 10), 4)
		assert.Equal(t, 1, start.Items[0].Quantity)
		assert.Equal(t, 1, start.TotalItems)
	})
}

func TestRemoveItem(t *testing.T) {
	s, _ := AddItem(Empty(), prod(1, 10), 1)
	s, _ = AddItem(s, prod(2, 20), 2)

	t.Run("Removes the matching line", func(t *testing.T) {
		got := RemoveItem(s, 1)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Product.ID)
		assert.Equal(t, 2, got.TotalItems)
		assert.Equal(t, int64(40), got.TotalPrice)
		assert.Len(t, s.Items, 2)
	})

	t.Run("Absent id is a no-op", func(t *testing.T) {
		assert.Equal(t, s, RemoveItem(s, 99))
	})

	t.Run("Removing the last line leaves an empty list", func(t *testing.T) {
		one, _ := AddItem(Empty(), prod(1, 10), 1)
		got := RemoveItem(one, 1)
		assert.Equal(t, Empty(), got)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Sets quantity verbatim", func(t *testing.T) {
		s, _ := AddItem(Empty(), prod(1, 1000), 2)
		s = UpdateQuantity(s, 1, 5)
		assert.Equal(t, 5, s.TotalItems)
		assert.Equal(t, int64(5000), s.TotalPrice)
	})

	t.Run("No clamp above the UI maximum", func(t *testing.T) {
		s, _ := AddItem(Empty(), prod(1, 1), 1)
		s = UpdateQuantity(s, 1, 1000)
		assert.Equal(t, 1000, s.Items[0].Quantity)
	})

	t.Run("Zero or negative removes", func(t *testing.T) {
		for _, q := range []int{0, -3} {
			s, _ := AddItem(Empty(), prod(1, 1), 4)
			s = UpdateQuantity(s, 1, q)
			assert.Empty(t, s.Items)
			assert.Zero(t, s.TotalItems)
			assert.Zero(t, s.TotalPrice)
		}
	})

	t.Run("Absent id is a no-op", func(t *testing.T) {
		s, _ := AddItem(Empty(), prod(1, 1), 4)
		assert.Equal(t, s, UpdateQuantity(s, 7, 2))
	})
}

func TestClear(t *testing.T) {
	s, _ := AddItem(Empty(), prod(1, 10), 3)
	s, _ = AddItem(s, prod(2, 5), 1)

	got := Clear()
	assert.Equal(t, State{Items: []CartItem{}, TotalItems: 0, TotalPrice: 0}, got)
	assert.Len(t, s.Items, 2)
}

func TestRebuild(t *testing.T) {
	corrupted := State{
		Items: []CartItem{
			{Product: prod(1, 10), Quantity: 2},
			{Product: prod(2, 5), Quantity: 0},
			{Product: prod(1, 10), Quantity: 3},
		},
		TotalItems: 999,
		TotalPrice: 1,
	}

	got := Rebuild(corrupted)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.Equal(t, 5, got.TotalItems)
	assert.Equal(t, int64(50), got.TotalPrice)
}

// Random operation sequences must never let the totals drift from the items
// or produce more than one line per product.
func TestTotalsNeverDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := []product.Product{prod(1, 1000), prod(2, 15), prod(3, 0), prod(4, 999999)}

	s := Empty()
	for i := 0; i < 5000; i++ {
		p := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(4) {
		case 0:
			next, err := AddItem(s, p, rng.Intn(12)-1)
			if err == nil {
				s = next
			}
		case 1:
			s = RemoveItem(s, p.ID)
		case 2:
			s = UpdateQuantity(s, p.ID, rng.Intn(14)-2)
		case 3:
			if rng.Intn(20) == 0 {
				s = Clear()
			}
		}

		assertDerived(t, s)
		seen := map[int]bool{}
		for _, it := range s.Items {
			assert.False(t, seen[it.Product.ID], "duplicate line for product %d", it.Product.ID)
			assert.GreaterOrEqual(t, it.Quantity, 1)
			seen[it.Product.ID] = true
		}
	}
}

func TestStateHelpers(t *testing.T) {
	s, _ := AddItem(Empty(), prod(1, 10), 3)

	assert.False(t, s.IsEmpty())
	assert.True(t, Empty().IsEmpty())
	assert.Equal(t, 3, s.Quantity(1))
	assert.Equal(t, 0, s.Quantity(2))

	c := s.Clone()
	c.Items[0].Quantity = 9
	assert.Equal(t, 3, s.Items[0].Quantity)
}
