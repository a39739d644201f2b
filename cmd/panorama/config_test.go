package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_SaveThenLoadRoundTrips(t *testing.T) {
	cfg := config{
		DoubleImage:            false,
		NScalesPerOctave:       4,
		Sigma0:                 1.2,
		KernelTruncationFactor: 3.5,
		BorderDistance:         7,
		PeakThreshold:          0.02,
		EdgeThreshold:          12.0,
		MagnificationFactor:    2.5,
		SNNThreshold:           0.75,
		RansacMaxNIterations:   500,
		RansacInlierThreshold:  2.0,
	}

	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, saveConfig(path, cfg))

	got, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadConfig_MissingFileReturnsError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestApplyConfigDefaults_FillsUnsetFlagsOnly(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	prevCommandLine := flag.CommandLine
	flag.CommandLine = fs
	defer func() { flag.CommandLine = prevCommandLine }()

	explicitFlag := flag.Bool("explicit-flag", false, "")
	unsetFlag := flag.Int("unset-flag", 1, "")

	require.NoError(t, fs.Parse([]string{"-explicit-flag=true"}))

	cfg := config{DoubleImage: true, NScalesPerOctave: 9}
	applyConfigDefaults(map[string]flagValue{
		"explicit-flag": {explicitFlag, &cfg.DoubleImage},
		"unset-flag":    {unsetFlag, &cfg.NScalesPerOctave},
	})

	require.True(t, *explicitFlag, "explicit flag value must not be overridden by config")
	require.Equal(t, 9, *unsetFlag, "unset flag must take its default from config")
}
