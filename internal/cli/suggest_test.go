package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	nodes := []string{
		"<http://example.org/alice>",
		"<http://example.org/bob>",
		"_:b0",
		"<http://example.org/Alicia>",
	}

	testCases := []struct {
		desc   string
		want   string
		expect []string
	}{
		{
			desc:   "typo",
			want:   "<http://example.org/alise>",
			expect: []string{"<http://example.org/alice>", "<http://example.org/Alicia>", "<http://example.org/bob>"},
		},
		{
			desc:   "case and accents are ignored",
			want:   "<http://example.org/ALÍCE>",
			expect: []string{"<http://example.org/alice>", "<http://example.org/Alicia>", "<http://example.org/bob>"},
		},
		{
			desc:   "nothing close",
			want:   "_:zz",
			expect: []string{"_:b0"},
		},
		{
			desc:   "no nodes",
			want:   "_:b0",
			expect: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			in := nodes
			if tc.desc == "no nodes" {
				in = nil
			}
			assert.Equal(t, tc.expect, suggest(tc.want, in))
		})
	}
}
