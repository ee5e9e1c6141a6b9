package main

import (
	"fmt"
	"os"

	"github.com/lox/holdem-engine/internal/actionlog"
	"github.com/lox/holdem-engine/internal/hand"
	"github.com/lox/holdem-engine/internal/money"
	"github.com/lox/holdem-engine/internal/rules"
	"github.com/lox/holdem-engine/internal/scriptfile"
)

// RunCmd loads a script file, plays it to completion through the
// create-hand factory (internal/hand.New/Play), and reports the result:
// final stacks, total pot, and recorded event count, matching the
// (final_stacks_cents, total_pot_cents, recorded_events) contract.
type RunCmd struct {
	Script      string `arg:"" name:"script" help:"Path to an HCL script file (§6.1)"`
	RaisePolicy string `help:"Raise-amount generator: discrete or non_discrete" default:"discrete" enum:"discrete,non_discrete"`
	PHHOut      string `help:"Optional path to write a PHH TOML export of the recorded events"`
}

func (cmd RunCmd) Run() error {
	script, err := scriptfile.Load(cmd.Script)
	if err != nil {
		return err
	}

	policy := rules.DiscreteRaisePolicy
	if cmd.RaisePolicy == "non_discrete" {
		policy = rules.NonDiscreteRaisePolicy
	}

	sink := actionlog.NewMemorySink()
	h, err := hand.New(hand.Config{
		SmallBlind:  script.SmallBlind,
		BigBlind:    script.BigBlind,
		Stacks:      script.StartStacks,
		DealerSeat:  script.DealerIndex,
		Deck:        script.Deck(),
		Agents:      script.Agents(),
		Sink:        sink,
		RaisePolicy: policy,
	})
	if err != nil {
		return fmt.Errorf("holdem-harness: %w", err)
	}

	result, err := h.Play()
	if err != nil {
		return fmt.Errorf("holdem-harness: %w", err)
	}

	records := sink.Records()
	fmt.Printf("hand_id:          %s\n", result.HandID)
	for i, s := range result.FinalStacks {
		fmt.Printf("seat %d final stack: %s\n", i, money.Fmt(s))
	}
	fmt.Printf("total_pot_cents:  %s\n", money.Fmt(result.TotalPotCents))
	fmt.Printf("recorded_events:  %d\n", len(records))

	if cmd.PHHOut == "" {
		return nil
	}

	startingStacks := make([]int, len(script.StartStacks))
	for i, s := range script.StartStacks {
		startingStacks[i] = int(s)
	}

	f, err := os.Create(cmd.PHHOut)
	if err != nil {
		return fmt.Errorf("holdem-harness: opening PHH output: %w", err)
	}
	defer f.Close()

	if err := actionlog.ExportPHHRecords(f, result.HandID, startingStacks, int(script.SmallBlind), int(script.BigBlind), records); err != nil {
		return fmt.Errorf("holdem-harness: exporting PHH: %w", err)
	}
	return nil
}
