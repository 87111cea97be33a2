// Package rwatch drives an interactive Bubble Tea progress view over a set
// of build logs being parsed concurrently, adapted from the teacher's
// internal/ui progress model and its internal/buildpipeline event stream —
// generalized from compiler stages (parse/diagnose/lower/build/link/run) to
// the three-stage parse pipeline this tool actually runs.
package rwatch

import (
	"context"

	"buildreport/internal/buildparse"
	"buildreport/internal/report"
)

// Stage describes a high-level phase of parsing a single build log.
type Stage string

const (
	StageDetect Stage = "detect"
	StageParse  Stage = "parse"
	StageReport Stage = "report"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one input (identified by its label, typically
// a file path or "stdin").
type Event struct {
	Label  string
	Stage  Stage
	Status Status
}

// Run parses each input concurrently via buildparse.ParseAll. Before parsing
// it emits a queued and a working Event for every label; once ParseAll has
// returned for all inputs it emits one report Event per label. The channel
// closes after that; the returned wait function blocks until then and
// yields results in input order.
func Run(ctx context.Context, labels []string, inputs []string, jobs int) (<-chan Event, func() ([]report.Result, error)) {
	events := make(chan Event, len(inputs)*3+1)

	var results []report.Result
	var runErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(events)

		for _, label := range labels {
			events <- Event{Label: label, Stage: StageDetect, Status: StatusQueued}
		}
		for _, label := range labels {
			events <- Event{Label: label, Stage: StageParse, Status: StatusWorking}
		}

		res, err := buildparse.ParseAll(ctx, inputs, jobs)
		if err != nil {
			runErr = err
			for _, label := range labels {
				events <- Event{Label: label, Stage: StageReport, Status: StatusError}
			}
			return
		}

		for i, r := range res {
			label := ""
			if i < len(labels) {
				label = labels[i]
			}
			status := StatusDone
			if r.Status == report.StatusFailed {
				status = StatusError
			}
			events <- Event{Label: label, Stage: StageReport, Status: status}
		}
		results = res
	}()

	return events, func() ([]report.Result, error) {
		<-done
		return results, runErr
	}
}
