package pipeline

import (
	"fmt"

	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stage is the build progress of a single contract.
type Stage int

const (
	// StageUnbuilt is the initial stage of every selected contract.
	StageUnbuilt Stage = iota
	// StageCodegenRun means the wasm-ready source was generated.
	StageCodegenRun
	// StageWasmCompiled means the release wasm binary exists in the builder target dir.
	StageWasmCompiled
	// StagePlaced means the binary was copied into every placement directory.
	StagePlaced
	// StageStripped means wasm-strip ran in every placement directory.
	StageStripped
)

var stageNames = [...]string{"unbuilt", "codegen-run", "wasm-compiled", "placed", "stripped"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Tracker records the stage of each contract of a build. A contract only moves
// forward one stage at a time.
type Tracker struct {
	stages map[string]Stage
}

// NewTracker starts every contract in StageUnbuilt.
func NewTracker(contracts []domain.Contract) *Tracker {
	t := &Tracker{stages: make(map[string]Stage, len(contracts))}
	for _, c := range contracts {
		t.stages[c.StructName()] = StageUnbuilt
	}
	return t
}

// Advance moves contract to next, which must directly follow its current stage.
func (t *Tracker) Advance(contract string, next Stage) error {
	current, ok := t.stages[contract]
	if !ok {
		return zerr.With(zerr.New("contract is not part of this build"), "contract", contract)
	}
	if next != current+1 {
		return zerr.With(zerr.With(zerr.New("invalid stage transition "+current.String()+" -> "+next.String()), "contract", contract), "stage", current.String())
	}
	t.stages[contract] = next
	return nil
}

// Stage returns the current stage of contract.
func (t *Tracker) Stage(contract string) Stage {
	return t.stages[contract]
}
