package ingest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theokkk4/remindmap/pkg/remindmap/stoplist"
)

func TestExtractKeywords(t *testing.T) {
	tok := DefaultTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only stopwords", text: "the and with them", want: []string{}},
		{name: "sentence", text: "The quick brown fox jumps over the lazy dog",
			want: []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}},
		{name: "punctuation splits words", text: "deploy,fix;build", want: []string{"deploy", "fix", "build"}},
		{name: "short tokens dropped", text: "Review PR #245", want: []string{"review", "245"}},
		{name: "hyphen splits", text: "Client call follow-up", want: []string{"client", "call", "follow"}},
		{name: "underscore is a word char", text: "rename snake_case_name", want: []string{"rename", "snake_case_name"}},
		{name: "non-ascii letters separate", text: "Café menu", want: []string{"caf", "menu"}},
		{name: "duplicates kept in order", text: "meeting about meeting", want: []string{"meeting", "about", "meeting"}},
		{name: "uppercase normalized", text: "ASAP Budget REVIEW", want: []string{"asap", "budget", "review"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.ExtractKeywords(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKeywordsTruncatesInOrder(t *testing.T) {
	tok := DefaultTokenizer()

	text := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen"
	got := tok.ExtractKeywords(text)

	// "one", "two", "six", "ten" are only three letters and survive.
	assert.Equal(t, []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}, got)
}

func TestExtractKeywordsCustomOptions(t *testing.T) {
	tok := NewTokenizer(stoplist.NewManager([]string{"draft"}), TokenizerOptions{MaxKeywords: 2, MinTokenLen: 5})

	got := tok.ExtractKeywords("draft quarterly budget report today")
	assert.Equal(t, []string{"quarterly", "budget"}, got)
}

func TestTokenizerOptionsCannotLoosenLimits(t *testing.T) {
	tok := NewTokenizer(stoplist.NewManager(nil), TokenizerOptions{MaxKeywords: 25, MinTokenLen: 1})

	got := tok.ExtractKeywords("x y z go ab alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo")
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}, got)
}

func TestAddRemoveStopword(t *testing.T) {
	tok := NewTokenizer(stoplist.NewManager([]string{"the"}), DefaultTokenizerOptions())

	assert.Equal(t, []string{"cat"}, tok.ExtractKeywords("the cat"))

	tok.RemoveStopword("the")
	assert.Equal(t, []string{"the", "cat"}, tok.ExtractKeywords("the cat"))

	tok.AddStopword("cat")
	assert.Equal(t, []string{"the"}, tok.ExtractKeywords("the cat"))
}

func TestKeywordSet(t *testing.T) {
	set := KeywordSet([]string{"meeting", "team", "meeting"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "meeting")
	assert.Contains(t, set, "team")
	assert.Empty(t, KeywordSet(nil))
}

func TestExtractKeywordsProperties(t *testing.T) {
	tok := DefaultTokenizer()
	stops := stoplist.Default()
	rng := rand.New(rand.NewSource(42))

	vocab := []string{
		"the", "a", "an", "go", "PR", "meeting", "Client", "deadline", "!!", "--",
		"budget", "with", "their", "x", "yoga", "e-mail", "v2", "naïve", "   ", "\t",
		"report,", "(draft)", "ünïcode", "snake_case", "42",
	}

	for i := 0; i < 500; i++ {
		var b strings.Builder
		n := rng.Intn(40)
		for j := 0; j < n; j++ {
			b.WriteString(vocab[rng.Intn(len(vocab))])
			if rng.Intn(3) > 0 {
				b.WriteByte(' ')
			}
		}

		got := tok.ExtractKeywords(b.String())
		require.LessOrEqual(t, len(got), DefaultMaxKeywords, b.String())
		for _, kw := range got {
			assert.Greater(t, len(kw), 2, "keyword %q too short in %q", kw, b.String())
			assert.False(t, stops.IsStop(kw), "stopword %q leaked from %q", kw, b.String())
			assert.Equal(t, strings.ToLower(kw), kw)
		}
	}
}
