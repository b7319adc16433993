package sdp_parser

import (
	"context"
	"strings"
	"testing"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleExchange = `v=0
o=- 1 1 IN IP6 ::1
s=-
c=IN IP6 ::1
t=0 0
m=audio 5000 RTP/AVP 0
b=AS:64
v=0
o=- 2 2 IN IP6 ::2
s=-
c=IN IP6 ::2
t=0 0
m=audio 5002 RTP/AVP 0
b=AS:64
`

type recordingObserver struct {
	lines  map[string]int
	misses map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		lines:  make(map[string]int),
		misses: make(map[string]int),
	}
}

func (o *recordingObserver) ObserveLine(category string) { o.lines[category]++ }
func (o *recordingObserver) ObserveMiss(field string)    { o.misses[field]++ }

func newTestParser(t *testing.T, observer Observer) (*Parser, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	config := DefaultConfig()
	config.Logger = logger
	if observer != nil {
		config.Observer = observer
	}

	parser, err := NewParser(config)
	require.NoError(t, err)
	return parser, hook
}

func parseString(t *testing.T, p *Parser, input string) (*Exchange, error) {
	t.Helper()
	return p.Parse(context.Background(), strings.NewReader(input))
}

func TestParseExample(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	exchange, err := parseString(t, parser, exampleExchange)
	require.NoError(t, err)

	assert.Equal(t, "::1", exchange.Local.Endpoint.Address)
	assert.Equal(t, 5000, exchange.Local.Endpoint.Port)
	assert.Equal(t, []string{"RTP", "AVP"}, exchange.Local.Endpoint.Protos)
	assert.Equal(t, []string{"0"}, exchange.Local.Endpoint.Formats)
	assert.Equal(t, bandwidth.NewRate(64), exchange.Local.Rates.AS)
	assert.False(t, exchange.Local.Rates.RS.IsSet())
	assert.False(t, exchange.Local.Rates.RR.IsSet())

	assert.Equal(t, "::2", exchange.Remote.Endpoint.Address)
	assert.Equal(t, 5002, exchange.Remote.Endpoint.Port)
	assert.Equal(t, bandwidth.NewRate(64), exchange.Remote.Rates.AS)

	assert.Equal(t, 14, exchange.Stats.Lines)
	assert.Equal(t, 2, exchange.Stats.Categories[LineVersion])
	assert.Equal(t, 2, exchange.Stats.Categories[LineConnection])
	assert.Equal(t, 6, exchange.Stats.Categories[LineIgnored])
	assert.Zero(t, exchange.Stats.Misses)
}

func TestParseExplicitRTCP(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	input := "v=0\nc=IN IP6 ::1\nm=audio 5000\nb=AS:128\nb=RS:1000\nb=RR:0\n" +
		"v=0\nc=IN IP6 ::2\nm=audio 6000\nb=AS:32\nb=RR:1500\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, bandwidth.Rates{
		AS: bandwidth.NewRate(128),
		RS: bandwidth.NewRate(1000),
		RR: bandwidth.NewRate(0),
	}, exchange.Local.Rates)
	assert.Equal(t, bandwidth.Rates{
		AS: bandwidth.NewRate(32),
		RR: bandwidth.NewRate(1500),
	}, exchange.Remote.Rates)
}

func TestParseIgnoresUnsupportedForms(t *testing.T) {
	observer := newRecordingObserver()
	parser, _ := newTestParser(t, observer)

	input := "v=0\nc=IN IP4 10.0.0.1\nm=video 5000 RTP/AVP 96\nb=AS:oops\nb=CT:1000\n" +
		"v=0\nc=IN IP6 ::2\nm=audio 5002\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, bandwidth.Endpoint{}, exchange.Local.Endpoint)
	assert.False(t, exchange.Local.Rates.AS.IsSet())
	assert.Equal(t, 3, exchange.Stats.Misses)

	assert.Equal(t, 1, observer.misses["connection"])
	assert.Equal(t, 1, observer.misses["media"])
	assert.Equal(t, 1, observer.misses["bandwidth_as"])
	assert.Equal(t, 1, observer.lines["ignored"])
	assert.Equal(t, 2, observer.lines["version"])
}

func TestParseKeepsPreviousValueOnMiss(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	input := "v=0\nb=AS:64\nb=AS:bad\nc=IN IP6 ::1\nc=IN IP4 10.0.0.1\n" +
		"v=0\nc=IN IP6 ::2\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, bandwidth.NewRate(64), exchange.Local.Rates.AS)
	assert.Equal(t, "::1", exchange.Local.Endpoint.Address)
}

func TestParseSessionsAreIndependent(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	input := "v=0\nc=IN IP6 ::1\nm=audio 5000\nb=AS:64\nb=RS:100\n" +
		"v=0\nb=AS:32\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, bandwidth.Endpoint{}, exchange.Remote.Endpoint)
	assert.Equal(t, bandwidth.Rates{AS: bandwidth.NewRate(32)}, exchange.Remote.Rates)
	assert.Equal(t, bandwidth.NewRate(100), exchange.Local.Rates.RS)
}

func TestParseLinesBeforeFirstSession(t *testing.T) {
	parser, hook := newTestParser(t, nil)

	input := "c=IN IP6 ::9\nb=AS:999\nv=0\nc=IN IP6 ::1\nv=0\nc=IN IP6 ::2\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, "::1", exchange.Local.Endpoint.Address)
	assert.Equal(t, "::2", exchange.Remote.Endpoint.Address)
	assert.False(t, exchange.Remote.Rates.AS.IsSet())
	assert.Equal(t, 2, exchange.Stats.Orphaned)

	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestParseThirdSessionRejected(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	input := exampleExchange + "v=0\nc=IN IP6 ::3\n"

	_, err := parseString(t, parser, input)
	require.Error(t, err)
	assert.True(t, IsParseError(err, ErrorCodeUnexpectedSession))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 15, parseErr.Line)
}

func TestParseIncompleteInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no version line", input: "c=IN IP6 ::1\nm=audio 5000\n"},
		{name: "single session", input: "v=0\nc=IN IP6 ::1\nm=audio 5000\nb=AS:64\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, _ := newTestParser(t, nil)

			_, err := parseString(t, parser, tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err, ErrorCodeIncompleteInput))
		})
	}
}

func TestParseCRLF(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	input := strings.ReplaceAll(exampleExchange, "\n", "\r\n")

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)
	assert.Equal(t, "::1", exchange.Local.Endpoint.Address)
	assert.Equal(t, 5002, exchange.Remote.Endpoint.Port)
}

func TestParseSplitsLongLines(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	// Фрагмент после 511 байт начинается с "b=AS:" и классифицируется отдельно
	long := "a=" + strings.Repeat("x", 509) + "b=AS:77\n"
	input := "v=0\n" + long + "v=0\n"

	exchange, err := parseString(t, parser, input)
	require.NoError(t, err)

	assert.Equal(t, bandwidth.NewRate(77), exchange.Local.Rates.AS)
	assert.Equal(t, 4, exchange.Stats.Lines)
}

func TestParseCanceledContext(t *testing.T) {
	parser, _ := newTestParser(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, strings.NewReader(exampleExchange))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewParserValidatesConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxLineLength = 4

	_, err := NewParser(config)
	require.Error(t, err)
	assert.True(t, IsParseError(err, ErrorCodeInvalidConfig))

	config = DefaultConfig()
	config.Logger = nil
	_, err = NewParser(config)
	assert.True(t, IsParseError(err, ErrorCodeInvalidConfig))
}

func TestSplitChunks(t *testing.T) {
	split := splitChunks(8)

	advance, token, err := split([]byte("abc\ndef"), false)
	require.NoError(t, err)
	assert.Equal(t, 4, advance)
	assert.Equal(t, "abc\n", string(token))

	advance, token, err = split([]byte("abcdefghij\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 7, advance)
	assert.Equal(t, "abcdefg", string(token))

	advance, token, err = split([]byte("abc"), false)
	require.NoError(t, err)
	assert.Zero(t, advance)
	assert.Nil(t, token)

	advance, token, err = split([]byte("abc"), true)
	require.NoError(t, err)
	assert.Equal(t, 3, advance)
	assert.Equal(t, "abc", string(token))
}

func TestSessionTracker(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	tracker := newSessionTracker(logger)
	ctx := context.Background()

	assert.Equal(t, StateAwaitingFirstSession, tracker.state())
	require.NoError(t, tracker.beginSession(ctx))
	assert.Equal(t, StateLocalSession, tracker.state())
	require.NoError(t, tracker.beginSession(ctx))
	assert.Equal(t, StateRemoteSession, tracker.state())
	assert.Error(t, tracker.beginSession(ctx))
	assert.Equal(t, StateRemoteSession, tracker.state())
	require.NoError(t, tracker.finish(ctx))
	assert.Equal(t, StateDone, tracker.state())
}
