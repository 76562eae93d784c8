package main

import (
	"fmt"
	"runtime/debug"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
	"github.com/guillaumefe/menvuln-sub000/internal/report"
)

func runPaths(attackerID string) {
	s, pol, ceiling, err := loadStore()
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	res, err := safeCompute(func() graph.Result {
		if attackerID != "" {
			return graph.ComputePathsForAttacker(s, attackerID, pol, ceiling)
		}
		return graph.ComputeAllPaths(s, pol, ceiling)
	})
	if err != nil {
		log.Fatalf("path computation failed: %v", err)
	}

	if attackerID != "" {
		if _, ok := s.Attacker(attackerID); !ok {
			log.Warnf("attacker %q is not part of the model", attackerID)
		}
	}

	report.PrintResults(log, res)

	if outputFormat != "" {
		format := outputFormat
		if format == "all" {
			format = ""
		}
		if err := report.SaveResults(res, format); err != nil {
			log.Errorf("failed to export results: %v", err)
		}
	}
}

// safeCompute runs one enumeration, converting a panic into an error with
// the stack attached so a malformed model cannot take the process down.
func safeCompute(fn func() graph.Result) (res graph.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enumeration panicked: %v\nstack:\n%s", r, debug.Stack())
		}
	}()
	return fn(), nil
}
