package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercase and punctuation split",
			in:   "Boycott India now, it's FAKE news!",
			want: []string{"boycott", "india", "now", "it", "s", "fake", "news"},
		},
		{
			name: "strips html markup",
			in:   `<p>India <b>exposed</b></p><script>x()</script>`,
			want: []string{"india", "exposed", "x"},
		},
		{
			name: "decodes entities",
			in:   "India &amp; Pakistan &quot;conflict&quot;",
			want: []string{"india", "pakistan", "conflict"},
		},
		{
			name: "drops empty tokens",
			in:   " ,, -- ..India.. ,, ",
			want: []string{"india"},
		},
		{
			name: "unicode scripts tokenize",
			in:   "कश्मीर में protest",
			want: []string{"कश्मीर", "में", "protest"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := "Kashmir <em>freedom</em> struggle &amp; #BoycottIndia"
	first, err := Normalize(in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNormalizeBadEncoding(t *testing.T) {
	_, err := Normalize(string([]byte{0xff, 0xfe, 0xfd}))
	assert.ErrorIs(t, err, ErrBadEncoding)
}
