package replay

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

const frame = 16 * time.Millisecond

// playSession drives r like a front end would: one frame every 16ms and a
// tap every tapEvery frames, until the game is over or limit frames passed.
func playSession(r *Recorder, tapEvery, limit int) {
	var ts time.Duration
	r.Start(ts)
	for i := 1; i <= limit; i++ {
		ts += frame
		if tapEvery > 0 && i%tapEvery == 0 {
			r.Tap(ts)
		}
		if !r.Frame(ts) {
			return
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	rec := NewRecorder(cfg, 42, string(config.DifficultyNormal))
	playSession(rec, 37, 3000)

	want := rec.Snapshot()
	recording := rec.Recording()
	require.NotEmpty(t, recording.Events)
	assert.Equal(t, EventStart, recording.Events[0].Kind)
	assert.Positive(t, recording.Taps())

	var buf bytes.Buffer
	require.NoError(t, recording.Save(&buf))
	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, recording, loaded)

	got := Play(loaded, nil)
	assert.Equal(t, want, got)

	// Twice in a row gives the same answer.
	assert.Equal(t, got, Play(loaded, nil))
}

func TestReplayDependsOnSeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	a := NewRecorder(cfg, 1, "normal")
	b := NewRecorder(cfg, 2, "normal")
	playSession(a, 0, 600)
	playSession(b, 0, 600)

	assert.NotEqual(t, a.Snapshot(), b.Snapshot())
	assert.Equal(t, a.Snapshot(), Play(a.Recording(), nil))
	assert.Equal(t, b.Snapshot(), Play(b.Recording(), nil))
}

func TestRecorderSkipsIdleFrames(t *testing.T) {
	rec := NewRecorder(config.DefaultRunnerConfig(), 3, "normal")

	assert.False(t, rec.Frame(frame))
	rec.Tap(frame)
	assert.Empty(t, rec.Recording().Events)

	rec.Start(2 * frame)
	rec.Frame(3 * frame)
	rec.Tap(3 * frame)
	rec.Exit()
	assert.Equal(t, runner.PhaseIdle, rec.Phase())

	kinds := []EventKind{}
	for _, ev := range rec.Recording().Events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{EventStart, EventFrame, EventTap, EventExit}, kinds)
	assert.Equal(t, 3*frame, rec.Recording().Duration())
}

func TestPlayKeepsStateSeenBeforeExit(t *testing.T) {
	rec := NewRecorder(config.DefaultRunnerConfig(), 9, "normal")
	playSession(rec, 0, 30)
	before := rec.Snapshot()
	rec.Exit()

	got := Play(rec.Recording(), nil)
	assert.Equal(t, runner.PhaseRunning, got.Phase)
	assert.Equal(t, before.Frame, got.Frame)
}

func TestRecordingFile(t *testing.T) {
	rec := NewRecorder(config.DefaultRunnerConfig(), 5, "hard")
	playSession(rec, 10, 100)

	path := filepath.Join(t.TempDir(), "run.replay")
	require.NoError(t, rec.Recording().SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hard", loaded.Mode)
	assert.Equal(t, int64(5), loaded.Seed)
	assert.Equal(t, rec.Snapshot(), Play(loaded, nil))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("garbage")))
	assert.Error(t, err)

	data, err := msgpack.Marshal(&Recording{Version: FormatVersion + 1, Config: config.DefaultRunnerConfig()})
	require.NoError(t, err)
	_, err = Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrVersion)

	data, err = msgpack.Marshal(&Recording{Version: FormatVersion})
	require.NoError(t, err)
	_, err = Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "start", EventStart.String())
	assert.Equal(t, "tap", EventTap.String())
	assert.Equal(t, "frame", EventFrame.String())
	assert.Equal(t, "exit", EventExit.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
