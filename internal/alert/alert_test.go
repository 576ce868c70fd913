package alert

import (
	"errors"
	"testing"

	"github.com/faiface/beep"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateHighReadingAlerts(t *testing.T) {
	e := NewEvaluator(NewSequence(95.5), DefaultThreshold)
	d := e.Evaluate()
	assert.Equal(t, Decision{Level: Alert, Value: 95.5}, d)
	assert.True(t, d.IsAlert())
	assert.Contains(t, d.Message(), "Current temperature: 95.50")
}

func TestEvaluateNormalReading(t *testing.T) {
	e := NewEvaluator(NewSequence(45.0), DefaultThreshold)
	d := e.Evaluate()
	assert.Equal(t, Normal, d.Level)
	assert.False(t, d.IsAlert())
}

func TestEvaluateThresholdIsExclusive(t *testing.T) {
	e := NewEvaluator(NewSequence(90.0, 90.01), DefaultThreshold)
	assert.Equal(t, Normal, e.Evaluate().Level)
	assert.Equal(t, Alert, e.Evaluate().Level)
}

func TestUniformStaysInRange(t *testing.T) {
	u := NewUniform(DefaultMin, DefaultMax, 1)
	for i := 0; i < 10000; i++ {
		v := u.Sample()
		require.GreaterOrEqual(t, v, DefaultMin)
		require.LessOrEqual(t, v, DefaultMax)
	}
}

func TestUniformSeedIsDeterministic(t *testing.T) {
	a := NewEvaluator(NewUniform(DefaultMin, DefaultMax, 42), DefaultThreshold)
	b := NewEvaluator(NewUniform(DefaultMin, DefaultMax, 42), DefaultThreshold)

	alerts := 0
	for i := 0; i < 500; i++ {
		da, db := a.Evaluate(), b.Evaluate()
		require.Equal(t, da, db)
		assert.Equal(t, da.Value > DefaultThreshold, da.IsAlert())
		if da.IsAlert() {
			alerts++
		}
	}
	// Roughly 1 in 8 readings land above 90 in [20,100].
	assert.Greater(t, alerts, 20)
	assert.Less(t, alerts, 120)
}

func TestSequenceRepeatsLast(t *testing.T) {
	s := NewSequence(1, 2)
	assert.Equal(t, []float64{1, 2, 2}, []float64{s.Sample(), s.Sample(), s.Sample()})
	assert.Zero(t, NewSequence().Sample())
	assert.Equal(t, 3.0, SamplerFunc(func() float64 { return 3 }).Sample())
}

func TestDialogShowsOnlyAlerts(t *testing.T) {
	var shown []string
	n := &Dialog{show: func(text string, options ...zenity.Option) error {
		shown = append(shown, text)
		return nil
	}}

	require.NoError(t, n.Notify(Decision{Level: Normal, Value: 45}))
	assert.Empty(t, shown)

	require.NoError(t, n.Notify(Decision{Level: Alert, Value: 95.5}))
	require.Len(t, shown, 1)
	assert.Contains(t, shown[0], "Current temperature: 95.50")
}

func TestDialogCancelIsAcknowledgement(t *testing.T) {
	n := &Dialog{show: func(string, ...zenity.Option) error { return zenity.ErrCanceled }}
	assert.NoError(t, n.Notify(Decision{Level: Alert, Value: 99}))

	boom := errors.New("no display")
	n = &Dialog{show: func(string, ...zenity.Option) error { return boom }}
	assert.ErrorIs(t, n.Notify(Decision{Level: Alert, Value: 99}), boom)
}

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := Log{Logger: logger}

	require.NoError(t, n.Notify(Decision{Level: Normal, Value: 30}))
	assert.Empty(t, hook.AllEntries())

	require.NoError(t, n.Notify(Decision{Level: Alert, Value: 95.5}))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 95.5, entry.Data["value"])
}

func TestChainJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	ok := notifierFunc(func(Decision) error { calls++; return nil })
	bad := notifierFunc(func(Decision) error { calls++; return boom })

	err := Chain{bad, nil, ok}.Notify(Decision{Level: Alert, Value: 99})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestChimePlaysOnAlert(t *testing.T) {
	var played []beep.Streamer
	c := &Chime{rate: chimeRate, play: func(s ...beep.Streamer) { played = append(played, s...) }}

	require.NoError(t, c.Notify(Decision{Level: Normal, Value: 10}))
	assert.Empty(t, played)
	require.NoError(t, c.Notify(Decision{Level: Alert, Value: 99}))
	require.Len(t, played, 1)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := played[0].Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, chimeRate.N(chimeLength), total)
}

func TestToneAmplitude(t *testing.T) {
	tn := newTone(chimeRate, chimeFrequency)
	buf := make([][2]float64, 1024)
	n, ok := tn.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)
	for _, s := range buf {
		assert.LessOrEqual(t, s[0], chimeVolume)
		assert.GreaterOrEqual(t, s[0], -chimeVolume)
		assert.Equal(t, s[0], s[1])
	}
	assert.NoError(t, tn.Err())
}

type notifierFunc func(Decision) error

func (f notifierFunc) Notify(d Decision) error { return f(d) }
