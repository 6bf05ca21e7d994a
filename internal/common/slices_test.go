package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"view-generator/internal/common"
)

func TestUnique(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"b", "a", "c"}, common.Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, common.Unique([]int(nil)))
}

func TestAppendUnique(t *testing.T) {
	t.Parallel()

	s := common.AppendUnique([]string{"a"}, "b")
	assert.Equal(t, []string{"a", "b"}, s)
	assert.Equal(t, []string{"a", "b"}, common.AppendUnique(s, "a"))
}
