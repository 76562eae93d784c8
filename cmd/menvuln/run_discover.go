package main

import (
	"context"

	"github.com/guillaumefe/menvuln-sub000/internal/discover"
	"github.com/guillaumefe/menvuln-sub000/internal/persist"
)

func runDiscover(outputPath string) {
	log.Info("capturing a snapshot of the local host...")

	s, err := discover.Snapshot(context.Background())
	if err != nil {
		log.Fatalf("failed to capture snapshot: %v", err)
	}

	if err := persist.Save(s, outputPath); err != nil {
		log.Fatalf("failed to save snapshot: %v", err)
	}

	atk, _ := s.Attacker(discover.AttackerID)
	log.Infof("snapshot saved: %s (%d targets, %d entry points)",
		outputPath, len(s.Targets()), len(atk.Entries()))
	log.Infof("run 'menvuln paths %s --state %s' to enumerate", discover.AttackerID, outputPath)
}
