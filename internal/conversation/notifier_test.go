package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottodough/internal/logger"
)

func newRecordingNotifier(lines *[]string) *CLINotifier {
	return NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...any) {
		*lines = append(*lines, fmt.Sprintf(format, a...))
	})
}

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := newRecordingNotifier(&lines)
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, "kept the last flour line"))
	require.NoError(t, n.NotifyUrgent(ctx, "invalid quantity"))

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "· kept the last flour line")
	assert.Contains(t, lines[1], "! invalid quantity")
}

func TestCLINotifierCancelled(t *testing.T) {
	var lines []string
	n := newRecordingNotifier(&lines)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, "late"), context.Canceled)
	assert.ErrorIs(t, n.NotifyUrgent(ctx, "late"), context.Canceled)
	assert.Empty(t, lines)
}
