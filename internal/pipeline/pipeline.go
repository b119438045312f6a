// Package pipeline runs analysis stages one after another and records how
// each finished. A failing stage never stops the stages after it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phobologic/archfit/internal/model"
)

// Stage is one named unit of work. Run returns the number of records it
// produced.
type Stage struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Runner executes stages sequentially.
type Runner struct {
	Log *slog.Logger
}

// Run executes every stage in order and returns one outcome per stage. A
// panic inside a stage is recovered and reported as that stage's failure.
// Stages not yet started when ctx is done are marked failed with the
// context error.
func (r Runner) Run(ctx context.Context, stages []Stage) []model.StageOutcome {
	log := r.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	outcomes := make([]model.StageOutcome, 0, len(stages))
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, failed(st.Name, err))
			continue
		}

		log.Debug("stage.start", "stage", st.Name)
		start := time.Now()
		n, err := runStage(ctx, st)
		dur := time.Since(start)

		if err != nil {
			log.Warn("stage.failed", "stage", st.Name, "duration", dur, "err", err)
			outcomes = append(outcomes, failed(st.Name, err))
			continue
		}
		log.Info("stage.done", "stage", st.Name, "records", n, "duration", dur)
		outcomes = append(outcomes, model.StageOutcome{Stage: st.Name, Status: model.StageOK, Records: n})
	}
	return outcomes
}

func runStage(ctx context.Context, st Stage) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("stage %s panicked: %v", st.Name, p)
		}
	}()
	return st.Run(ctx)
}

func failed(name string, err error) model.StageOutcome {
	return model.StageOutcome{Stage: name, Status: model.StageFailed, Error: err.Error()}
}
