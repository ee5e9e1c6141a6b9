package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headsUpCheckDownScript = `
hand {
  small_blind  = "0.50"
  big_blind    = "1.00"
  start_stacks = ["100.00", "100.00"]
  dealer_index = 0
}

deal {
  hole_cards = [["Ah", "Kd"], ["2c", "7s"]]
  board      = ["Qh", "Jd", "3c", "9h", "5s"]
}

preflop {
  seat "0" {
    action { type = "call" }
  }
  seat "1" {
    action { type = "check" }
  }
}

flop {
  seat "1" { action { type = "check" } }
  seat "0" { action { type = "check" } }
}

turn {
  seat "1" { action { type = "check" } }
  seat "0" { action { type = "check" } }
}

river {
  seat "1" { action { type = "check" } }
  seat "0" { action { type = "check" } }
}
`

func TestRunCmdPlaysScriptAndExportsPHH(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "check_down.hcl")
	require.NoError(t, os.WriteFile(scriptPath, []byte(headsUpCheckDownScript), 0o644))

	phhPath := filepath.Join(dir, "out.phhs")
	cmd := RunCmd{Script: scriptPath, RaisePolicy: "discrete", PHHOut: phhPath}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(phhPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "variant")
	assert.Contains(t, string(data), "starting_stacks")
}

func TestRunCmdRejectsUnknownScriptPath(t *testing.T) {
	cmd := RunCmd{Script: filepath.Join(t.TempDir(), "missing.hcl")}
	assert.Error(t, cmd.Run())
}
