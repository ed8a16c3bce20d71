// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-kids/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Nil(t, slice.Filter(nil, even))
	assert.Nil(t, slice.Filter([]int{1, 3}, even))
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
}

/*
TestWindow checks clamping at both ends of the input.
*/
func TestWindow(t *testing.T) {
	input := []int{1, 2, 3, 4}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{"first_page", 0, 2, []int{1, 2}},
		{"last_partial_page", 3, 2, []int{4}},
		{"past_the_end", 4, 2, []int{}},
		{"negative_offset", -1, 1, []int{1}},
		{"zero_limit", 0, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Window(input, tt.offset, tt.limit))
		})
	}
}
