package rwatch

import (
	"context"
	"testing"

	"buildreport/internal/report"
)

func drain(events <-chan Event) []Event {
	var all []Event
	for e := range events {
		all = append(all, e)
	}
	return all
}

func TestRun_EmitsQueuedThenWorkingThenReportPerLabel(t *testing.T) {
	labels := []string{"a.log", "b.log"}
	inputs := []string{
		"** BUILD SUCCEEDED **\n",
		"file.swift:1:1: error: boom\n",
	}

	events, wait := Run(context.Background(), labels, inputs, 2)
	all := drain(events)

	results, err := wait()
	if err != nil {
		t.Fatalf("wait() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	var queued, working, reported int
	for _, e := range all {
		switch e.Stage {
		case StageDetect:
			if e.Status != StatusQueued {
				t.Errorf("StageDetect status = %v, want StatusQueued", e.Status)
			}
			queued++
		case StageParse:
			if e.Status != StatusWorking {
				t.Errorf("StageParse status = %v, want StatusWorking", e.Status)
			}
			working++
		case StageReport:
			reported++
		}
	}
	if queued != 2 || working != 2 || reported != 2 {
		t.Errorf("queued=%d working=%d reported=%d, want 2/2/2", queued, working, reported)
	}
}

func TestRun_ReportStatusReflectsParseOutcome(t *testing.T) {
	labels := []string{"good.log", "bad.log"}
	inputs := []string{
		"** BUILD SUCCEEDED **\n",
		"file.swift:1:1: error: boom\n",
	}

	events, wait := Run(context.Background(), labels, inputs, 1)
	all := drain(events)
	if _, err := wait(); err != nil {
		t.Fatalf("wait() error = %v", err)
	}

	statusByLabel := make(map[string]Status)
	for _, e := range all {
		if e.Stage == StageReport {
			statusByLabel[e.Label] = e.Status
		}
	}
	if statusByLabel["good.log"] != StatusDone {
		t.Errorf("good.log report status = %v, want StatusDone", statusByLabel["good.log"])
	}
	if statusByLabel["bad.log"] != StatusError {
		t.Errorf("bad.log report status = %v, want StatusError", statusByLabel["bad.log"])
	}
}

func TestRun_WaitYieldsResultsInInputOrder(t *testing.T) {
	labels := []string{"x", "y", "z"}
	inputs := []string{
		"=== BUILD TARGET App ===\n** BUILD SUCCEEDED **\n",
		"Compiling Swift Module 'App' (1 sources)\nBuild complete!\n",
		`{"name": "App"}`,
	}

	events, wait := Run(context.Background(), labels, inputs, 3)
	drain(events)
	results, err := wait()
	if err != nil {
		t.Fatalf("wait() error = %v", err)
	}
	want := []report.Format{report.FormatXcode, report.FormatSwift, report.FormatSPM}
	for i, w := range want {
		if results[i].Format != w {
			t.Errorf("results[%d].Format = %v, want %v", i, results[i].Format, w)
		}
	}
}
