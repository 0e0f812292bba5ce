package incident

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Apply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		filter   Filter
		expected []int // indexes into records
	}{
		{
			name:     "empty filter keeps everything",
			filter:   Filter{},
			expected: []int{0, 1, 2, 3, 4},
		},
		{
			name:     "offense match is case-insensitive",
			filter:   Filter{Offenses: []string{"Theft"}},
			expected: []int{0, 2},
		},
		{
			name:     "unknown category selects blank offenses",
			filter:   Filter{Offenses: []string{"unknown", "narcotics"}},
			expected: []int{3, 4},
		},
		{
			name:     "inclusive date window",
			filter:   Filter{From: day(5), To: day(10)},
			expected: []int{1, 2},
		},
		{
			name:     "open-ended from",
			filter:   Filter{From: day(10)},
			expected: []int{2, 3},
		},
		{
			name:     "open-ended to",
			filter:   Filter{To: day(1)},
			expected: []int{0},
		},
		{
			name:     "offense and window combined",
			filter:   Filter{Offenses: []string{"THEFT"}, To: day(9)},
			expected: []int{0},
		},
		{
			name:     "nothing matches",
			filter:   Filter{Offenses: []string{"ARSON"}},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			want := make([]Record, 0, len(tt.expected))
			for _, i := range tt.expected {
				want = append(want, records[i])
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	snapshot := sampleRecords()

	_ = Filter{Offenses: []string{"BATTERY"}, From: day(2)}.Apply(records)
	assert.Equal(t, snapshot, records)
}

func TestFilter_Empty(t *testing.T) {
	assert.True(t, Filter{}.Empty())
	assert.False(t, Filter{Offenses: []string{"X"}}.Empty())
	assert.False(t, Filter{From: time.Now()}.Empty())
}
