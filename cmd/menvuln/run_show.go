package main

import (
	"fmt"
	"strings"
)

func runShow() {
	s, pol, ceiling, err := loadStore()
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	fmt.Printf("Targets (%d):\n", len(s.Targets()))
	for _, t := range s.Targets() {
		flags := ""
		if t.Terminal {
			flags = " [terminal]"
		}
		fmt.Printf("  %-20s %s%s\n", t.ID, t.Name, flags)
		if vulns := t.VulnIDs(); len(vulns) > 0 {
			fmt.Printf("  %-20s   vulns: %s\n", "", strings.Join(vulns, ", "))
		}
	}

	fmt.Printf("\nVulnerabilities (%d):\n", len(s.Vulnerabilities()))
	for _, v := range s.Vulnerabilities() {
		fmt.Printf("  %-20s %s\n", v.ID, v.Name)
	}

	fmt.Printf("\nAttackers (%d):\n", len(s.Attackers()))
	for _, a := range s.Attackers() {
		fmt.Printf("  %-20s %s\n", a.ID, a.Name)
		fmt.Printf("  %-20s   entries: %s\n", "", strings.Join(a.Entries(), ", "))
		if exits := a.Exits(); len(exits) > 0 {
			fmt.Printf("  %-20s   exits: %s\n", "", strings.Join(exits, ", "))
		}
	}

	fmt.Printf("\nPolicy: lateral=%v contains=%v max-paths=%d\n",
		pol.IncludeLateral, pol.IncludeContains, ceiling)
}
