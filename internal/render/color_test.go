package render

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPat = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func channelsOf(t *testing.T, hex string) [3]int {
	t.Helper()
	require.Regexp(t, hexPat, hex)
	var ch [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseInt(hex[1+2*i:3+2*i], 16, 0)
		require.NoError(t, err)
		ch[i] = int(n)
	}
	return ch
}

func TestColorForIsDeterministic(t *testing.T) {
	a := ColorFor("genre")
	b := ColorFor("genre")
	assert.Equal(t, a, b)

	// Repeated interleaved calls must not drift: no shared state.
	ColorFor("other")
	assert.Equal(t, a, ColorFor("genre"))
}

func TestColorForChannelRange(t *testing.T) {
	for _, label := range []string{"", "a", "genre", "jazz", "rock", "label-with-dashes", "日本語"} {
		for _, c := range channelsOf(t, ColorFor(label)) {
			assert.GreaterOrEqual(t, c, 60, "label %q", label)
			assert.LessOrEqual(t, c, 200, "label %q", label)
		}
	}
}

func TestColorForDistinguishesLabels(t *testing.T) {
	assert.NotEqual(t, ColorFor("alpha"), ColorFor("beta"))
}

func TestProgressBarColorScalesWithRatio(t *testing.T) {
	full := channelsOf(t, ProgressBarColor("100", 1))
	half := channelsOf(t, ProgressBarColor("100", 0.5))
	zero := channelsOf(t, ProgressBarColor("100", 0))

	for i := 0; i < 3; i++ {
		assert.GreaterOrEqual(t, full[i], 50)
		assert.LessOrEqual(t, full[i], 180)
		assert.LessOrEqual(t, half[i], full[i])
		assert.Equal(t, 0, zero[i])
	}
}

func TestProgressBarColorClampsRatio(t *testing.T) {
	assert.Equal(t, ProgressBarColor("7", 1), ProgressBarColor("7", 3.5))
	assert.Equal(t, ProgressBarColor("7", 0), ProgressBarColor("7", -1))
}

func TestColorizeEscapesButKeysOnRawText(t *testing.T) {
	got := Colorize("a[0]")
	want := "[b " + ColorFor("a[0]") + "]a⟦0⟧[/]"
	assert.Equal(t, want, got)
}
