package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/staffdir"
	"github.com/fwojciec/staffdir/bloom"
	"github.com/stretchr/testify/assert"
)

func contact(last, first string) *staffdir.Contact {
	return &staffdir.Contact{LastName: last, FirstName: first, Contacts: map[string]string{}}
}

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Contact not yet added should return false
	assert.False(t, f.Test(contact("Doe", "Jane")))

	f.Add(contact("Doe", "Jane"))

	// An equal contact is reported as seen
	assert.True(t, f.Test(contact("Doe", "Jane")))

	// A different contact should still return false
	assert.False(t, f.Test(contact("Doe", "John")))
}

func TestFilter_DistinguishesContactDetails(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	a := contact("Smith", "Pat")
	a.Contacts["Phone"] = "555-0001"
	b := contact("Smith", "Pat")
	b.Contacts["Phone"] = "555-0002"

	f.Add(a)

	assert.True(t, f.Test(a))
	assert.False(t, f.Test(b), "namesakes with different details are different people")
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add(contact("Adams", "Amy"))
	f.Add(contact("Baker", "Bob"))
	f.Add(contact("Clark", "Cal"))

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(contact(fmt.Sprintf("Added%d", i), "Test"))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(contact(fmt.Sprintf("Absent%d", i), "Test")) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
