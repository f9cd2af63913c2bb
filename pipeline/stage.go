package pipeline

import "fmt"

// Stage names one step of a run.
type Stage string

// Stages in execution order.
const (
	StageGenerateClean   Stage = "GenerateClean"
	StageSynthesizeNoise Stage = "SynthesizeNoise"
	StageComposeNoisy    Stage = "ComposeNoisy"
	StageDesignFIR       Stage = "DesignFIR"
	StageApplyFIR        Stage = "ApplyFIRCascade"
	StageDesignIIR       Stage = "DesignIIR"
	StageApplyIIR        Stage = "ApplyIIRCascade"
	StageAnalyze         Stage = "Analyze"
	StageEvaluate        Stage = "Evaluate"
	StageDone            Stage = "Done"
)

// Stages lists every stage of a successful run in order.
func Stages() []Stage {
	return []Stage{
		StageGenerateClean,
		StageSynthesizeNoise,
		StageComposeNoisy,
		StageDesignFIR,
		StageApplyFIR,
		StageDesignIIR,
		StageApplyIIR,
		StageAnalyze,
		StageEvaluate,
		StageDone,
	}
}

// StageError reports the stage at which a run aborted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
