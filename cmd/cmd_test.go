package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uboterm/internal/storepb"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "uboterm", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.RunE, "root runs a session by default")

	for _, name := range []string{"config", "host", "port", "debug", "log-file", "protocol"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
	for _, name := range []string{"no-announce", "compressed"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing root flag --%s", name)
	}
}

func TestSubcommands(t *testing.T) {
	want := []string{"connect", "probe", "press", "notify", "chime", "version"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestConnectFlags(t *testing.T) {
	c := newConnectCmd()
	assert.NotNil(t, c.Flags().Lookup("no-announce"))
	assert.NotNil(t, c.Flags().Lookup("compressed"))
	assert.NotNil(t, c.RunE)
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "uboterm version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	require.NoError(t, testCmd.Execute())

	assert.Equal(t, "uboterm version 1.0.0\n", buf.String())
}

func TestVersionCommand(t *testing.T) {
	SetVersion("9.9.9")
	c := newVersionCmd()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.Run(c, nil)
	assert.Equal(t, "uboterm version 9.9.9\n", buf.String())
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys([]string{"home", "KEY_DOWN", "l1"})
	require.NoError(t, err)
	assert.Equal(t, []storepb.KeyCode{storepb.KeyHome, storepb.KeyDown, storepb.KeyL1}, keys)

	_, err = parseKeys([]string{"up", "play", "stop"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storepb.ErrUnknownKey)
	assert.True(t, strings.Contains(err.Error(), "play") && strings.Contains(err.Error(), "stop"))
}

func TestPressRequiresKeys(t *testing.T) {
	c := newPressCmd()
	assert.Error(t, c.Args(c, nil))
	assert.NoError(t, c.Args(c, []string{"home"}))
}

func TestNotifyRejectsUnknownChime(t *testing.T) {
	c := newNotifyCmd()
	c.SetArgs([]string{"--title", "x", "--chime", "trumpet"})
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	assert.Error(t, c.Execute())
}
