package livecache

import (
	"fmt"
	"testing"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(id, current int64) domain.Rate {
	return domain.Rate{ID: id, Type: "gold", Current: current, High: current, Low: current}
}

func TestApplyUpdated_SequenceConvergesToLastWriter(t *testing.T) {
	var rates []domain.Rate
	for i := range 5 {
		rates = ApplyUpdated(rates, rate(1, 91700+int64(i)*100))
	}

	require.Len(t, rates, 1)
	assert.Equal(t, int64(92100), rates[0].Current)
}

func TestApplyUpdated_AbsentIDAppends(t *testing.T) {
	rates := []domain.Rate{rate(1, 91700)}

	// Simulates a missed RATE_CREATED: the update self-heals by inserting.
	rates = ApplyUpdated(rates, rate(2, 1050))

	require.Len(t, rates, 2)
	assert.Equal(t, int64(2), rates[1].ID)
}

func TestApplyCreated_DuplicateCreateKeepsFirst(t *testing.T) {
	var products []domain.Product

	products = ApplyCreated(products, domain.Product{ID: 7, Name: "Jhumka"})
	products = ApplyCreated(products, domain.Product{ID: 7, Name: "Different Jhumka"})

	require.Len(t, products, 1)
	assert.Equal(t, "Jhumka", products[0].Name)
}

func TestApplyCreated_AfterUpdateInsertedIt(t *testing.T) {
	var products []domain.Product

	// PRODUCT_UPDATED arrived first (create was missed), then the create shows up.
	products = ApplyUpdated(products, domain.Product{ID: 7, Name: "Jhumka v2"})
	products = ApplyCreated(products, domain.Product{ID: 7, Name: "Jhumka v1"})

	require.Len(t, products, 1)
	assert.Equal(t, "Jhumka v2", products[0].Name)
}

func TestApplyDeleted_Idempotent(t *testing.T) {
	products := []domain.Product{{ID: 3, Name: "Bangle"}}

	// Delete for an absent id is a no-op.
	products = ApplyDeleted(products, 99)
	require.Len(t, products, 1)

	// First delete removes, second is a no-op.
	products = ApplyDeleted(products, 3)
	assert.Empty(t, products)
	products = ApplyDeleted(products, 3)
	assert.Empty(t, products)
}

func TestApplyUpdated_PreservesOrderAndOtherRecords(t *testing.T) {
	rates := []domain.Rate{rate(1, 91700), rate(2, 1050), rate(3, 88000)}

	rates = ApplyUpdated(rates, rate(2, 1100))

	require.Len(t, rates, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{rates[0].ID, rates[1].ID, rates[2].ID})
	assert.Equal(t, int64(91700), rates[0].Current)
	assert.Equal(t, int64(1100), rates[1].Current)
	assert.Equal(t, int64(88000), rates[2].Current)
}

func TestCollection_ReplaceAndSnapshot(t *testing.T) {
	coll := NewCollection[domain.Rate]()
	coll.Replace([]domain.Rate{rate(1, 91700), rate(2, 1050)})

	snapshot := coll.Snapshot()
	require.Len(t, snapshot, 2)

	// Mutating the snapshot must not touch the cache.
	snapshot[0].Current = 0
	cached, ok := coll.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(91700), cached.Current)
}

func TestCollection_GetMissing(t *testing.T) {
	coll := NewCollection[domain.Product]()
	_, ok := coll.Get(42)
	assert.False(t, ok)
	assert.Equal(t, 0, coll.Len())
}

func TestCollection_ConcurrentPatches(t *testing.T) {
	coll := NewCollection[domain.Rate]()

	done := make(chan struct{})
	for i := range 8 {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := range 100 {
				coll.Update(rate(int64(n), int64(j)))
			}
		}(i)
	}
	for range 8 {
		<-done
	}

	assert.Equal(t, 8, coll.Len())
}

func TestCollection_MixedEnvelopeStream(t *testing.T) {
	coll := NewCollection[domain.Product]()

	steps := []struct {
		apply func()
		want  int
	}{
		{func() { coll.Create(domain.Product{ID: 1, Name: "Ring"}) }, 1},
		{func() { coll.Create(domain.Product{ID: 2, Name: "Chain"}) }, 2},
		{func() { coll.Update(domain.Product{ID: 1, Name: "Ring 22K"}) }, 2},
		{func() { coll.Delete(2) }, 1},
		{func() { coll.Delete(2) }, 1},
		{func() { coll.Update(domain.Product{ID: 3, Name: "Pendant"}) }, 2},
	}

	for i, step := range steps {
		step.apply()
		assert.Equal(t, step.want, coll.Len(), fmt.Sprintf("after step %d", i))
	}

	ring, ok := coll.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ring 22K", ring.Name)
}
