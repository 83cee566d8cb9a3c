package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Go", "go"},
		{"  Machine   Learning  ", "machine learning"},
		{"PYTHON", "python"},
		{"c++", "c++"},
		{"\tReact\nNative ", "react native"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeSkillName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeSkillNameIdempotent(t *testing.T) {
	inputs := []string{"Go", "  Machine   Learning  ", "React Native"}
	for _, in := range inputs {
		once := NormalizeSkillName(in)
		assert.Equal(t, once, NormalizeSkillName(once))
	}
}

func TestSearchParamsHasInputs(t *testing.T) {
	assert.False(t, SearchParams{}.HasInputs())
	assert.False(t, SearchParams{Page: 3, PageSize: 10}.HasInputs())
	assert.False(t, SearchParams{Keywords: "   "}.HasInputs())
	assert.False(t, SearchParams{Keywords: " \t ", Location: "  "}.HasInputs())
	assert.True(t, SearchParams{Keywords: "go"}.HasInputs())
	assert.True(t, SearchParams{Keywords: "  go  "}.HasInputs())
	assert.True(t, SearchParams{NoticePeriod: "30"}.HasInputs())
}
