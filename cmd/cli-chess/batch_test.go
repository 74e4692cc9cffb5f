package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

const validPGN = `[Event "Test"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0

[Event "Test"]
[White "Carol"]
[Black "Dave"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`

const invalidPGN = `[Event "Broken"]

1. e4 e5 2. Ke3 *
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pgn", validPGN)
	a, stdout, stderr := newTestApp(t)

	testutil.AssertNoError(t, a.run(context.Background(), []string{good}))
	testutil.AssertEqual(t, stdout.String(),
		good+" #1: ok, 5 plies, 1-0\n"+
			good+" #2: ok, 4 plies, 0-1\n")
	testutil.AssertEqual(t, stderr.String(), "")
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pgn", validPGN)
	bad := writeFile(t, dir, "bad.pgn", invalidPGN)
	missing := filepath.Join(dir, "missing.pgn")
	a, stdout, stderr := newTestApp(t)

	err := a.run(context.Background(), []string{good, bad, missing})
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "1 of 3 games failed validation")

	testutil.AssertContains(t, stdout.String(), good+" #2: ok")
	testutil.AssertContains(t, stderr.String(), bad+` #1: ply 3, move "Ke3"`)
	testutil.AssertContains(t, stderr.String(), missing+": ")
}

func TestValidate_JSON(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pgn", validPGN)
	a, stdout, _ := newTestApp(t)

	testutil.AssertNoError(t, a.run(context.Background(), []string{good}))

	var games []map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(stdout.Bytes(), &games))
	testutil.AssertLen(t, games, 2)
}
