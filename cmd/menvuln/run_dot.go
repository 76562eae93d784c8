package main

import (
	"os"
)

func runDot(outputPath string) {
	s, _, _, err := loadStore()
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := s.ExportDOT(f); err != nil {
		log.Fatalf("failed to write DOT file: %v", err)
	}

	log.Infof("model rendered: %s", outputPath)
	log.Info("open it with Graphviz, or paste it into an online DOT viewer")
}
