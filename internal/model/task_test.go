package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Priority
		wantErr bool
	}{
		{name: "empty defaults to low", in: "", want: PriorityLow},
		{name: "low", in: "low", want: PriorityLow},
		{name: "medium mixed case", in: " Medium ", want: PriorityMedium},
		{name: "high", in: "HIGH", want: PriorityHigh},
		{name: "unknown", in: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSection_Match(t *testing.T) {
	done := Task{ID: "a", Completed: true}
	open := Task{ID: "b"}

	assert.True(t, SectionAll.Match(done))
	assert.True(t, SectionAll.Match(open))
	assert.True(t, SectionCompleted.Match(done))
	assert.False(t, SectionCompleted.Match(open))
	assert.True(t, SectionIncomplete.Match(open))
	assert.False(t, SectionIncomplete.Match(done))
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("")
	require.NoError(t, err)
	assert.Equal(t, SectionAll, s)

	s, err = ParseSection("completed")
	require.NoError(t, err)
	assert.Equal(t, SectionCompleted, s)

	_, err = ParseSection("archived")
	assert.Error(t, err)
}

func TestTaskEdit_Empty(t *testing.T) {
	assert.True(t, TaskEdit{}.Empty())

	title := "x"
	assert.False(t, TaskEdit{Title: &title}.Empty())
}
