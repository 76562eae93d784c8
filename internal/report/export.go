package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
)

// SaveResults exports an enumeration result to disk.
func SaveResults(res graph.Result, format string) error {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case "json":
		filename := fmt.Sprintf("menvuln_paths_%s.json", timestamp)
		return saveJSON(res, filename)
	case "csv", "excel": // Excel opens the CSV form
		filename := fmt.Sprintf("menvuln_paths_%s.csv", timestamp)
		return saveCSV(res, filename)
	default:
		// Save both by default
		saveJSON(res, fmt.Sprintf("menvuln_paths_%s.json", timestamp))
		saveCSV(res, fmt.Sprintf("menvuln_paths_%s.csv", timestamp))
		return nil
	}
}

func saveJSON(res graph.Result, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(res); err != nil {
		return err
	}
	fmt.Printf("[+] report saved: %s\n", filename)
	return nil
}

func saveCSV(res graph.Result, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write a BOM so Excel detects UTF-8
	f.Write([]byte("\xEF\xBB\xBF"))

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	w.Write([]string{"Attacker", "Hops", "Route", "Vulnerabilities"})

	// Data
	for _, p := range res.Paths {
		w.Write([]string{p.AttackerName, fmt.Sprintf("%d", len(p.Nodes)), Route(p), vulnSummary(p)})
	}

	fmt.Printf("[+] report saved: %s\n", filename)
	return nil
}

// Route renders a path as its hop names joined by arrows.
func Route(p graph.AttackPath) string {
	names := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		names[i] = n.Name
	}
	return strings.Join(names, " -> ")
}

// vulnSummary flattens the per-hop vulnerability lists into one cell,
// keeping hops separated so positions stay readable.
func vulnSummary(p graph.AttackPath) string {
	var hops []string
	for i, vulns := range p.NodeVulns {
		if len(vulns) == 0 {
			continue
		}
		hops = append(hops, fmt.Sprintf("%s: %s", p.Nodes[i].Name, strings.Join(vulns, "; ")))
	}
	return strings.Join(hops, " | ")
}

// PrintResults logs one line per path plus the run flags.
func PrintResults(logger *zap.SugaredLogger, res graph.Result) {
	if len(res.Paths) == 0 {
		logger.Info("no attack paths found")
		if res.CyclesDetected {
			logger.Warn("the relation graph is cyclic; no branch reached a terminal or sink")
		}
		return
	}

	logger.Infof("=== %d attack path(s) found ===", len(res.Paths))
	for _, p := range res.Paths {
		logger.Infof("[%s] %s", p.AttackerName, Route(p))
		if summary := vulnSummary(p); summary != "" {
			logger.Infof("    -> exposed via %s", summary)
		}
	}
	if res.CyclesDetected {
		logger.Warn("cycles detected: counts reflect simple paths only")
	}
	if res.Truncated {
		logger.Warn("path ceiling reached: results are a deterministic prefix, not exhaustive")
	}
}
