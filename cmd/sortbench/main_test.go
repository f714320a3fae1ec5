package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sbezverk/sortbench/bench"
	"github.com/sbezverk/sortbench/config"
	"github.com/sbezverk/sortbench/sort"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, datasets int) *config.Config {
	t.Helper()
	in := t.TempDir()
	for i := 1; i <= 2; i++ {
		fn := filepath.Join(in, fmt.Sprintf("dataset_%d.csv", i))
		require.NoError(t, os.WriteFile(fn, []byte("B,x,U2,100\nA,y,U1,200\nA,z,U1,150\n"), 0o644))
	}
	c := config.Default()
	c.DataDir = in
	c.OutDir = filepath.Join(t.TempDir(), "out")
	c.Runs = []config.Run{
		{Algorithm: sort.AlgMergeSort.String(), Datasets: datasets},
		{Algorithm: sort.AlgStdSort.String(), Datasets: datasets},
	}
	return c
}

func TestRun(t *testing.T) {
	c := testConfig(t, 2)
	var out bytes.Buffer
	require.NoError(t, run(c, &out))

	b, err := os.ReadFile(filepath.Join(c.OutDir, "merge", "dataset_2.csv"))
	require.NoError(t, err)
	require.Equal(t, "A,y,U1,200\nA,z,U1,150\nB,x,U2,100\n", string(b))
	require.True(t, strings.Contains(out.String(), "merge vs std::sort"))
}

func TestRunReturnsBenchmarkFailure(t *testing.T) {
	c := testConfig(t, 3)
	var out bytes.Buffer
	err := run(c, &out)
	require.Error(t, err)
	var ie *bench.IndexError
	require.True(t, errors.As(err, &ie))
	require.Equal(t, 3, ie.Index)
	require.Empty(t, out.String())
}
