//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInlineHelpOverlay(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	api := NewFixtureAPI(t)
	require.NoError(t, tf.StartDashboard(api, "[ui]\nuse_pager_for_help = false\n"), "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.OutputContainsPlain("Department of Energy", 5*time.Second), "agencies should load")

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlainSince(mark, "regscope Help"), "Help popup should open")

	// q closes the popup instead of quitting
	mark = tf.Mark()
	require.NoError(t, tf.Quit())
	require.True(t, tf.SeePlainSince(mark, "Department of Energy"), "List should be back after closing help")
}
