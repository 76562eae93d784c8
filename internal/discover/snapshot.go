// Package discover builds an attack model from the running host: processes
// become targets, spawn relationships become contains edges, established
// outbound connections become direct edges to terminal endpoint targets,
// and processes running the same executable are linked laterally.
package discover

import (
	"context"
	"fmt"
	"strings"

	netutil "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
)

// Heuristic vulnerability labels attached during discovery.
const (
	vulnUntrustedPath = "untrusted-exec-path"
	vulnPrivNetProc   = "privileged-network-process"
)

// AttackerID is the id of the attacker the snapshot seeds: its entry points
// are the processes holding listening sockets.
const AttackerID = "external"

// Snapshot captures the current host state into a fresh store.
func Snapshot(ctx context.Context) (*graph.Store, error) {
	s := graph.NewStore()

	if _, err := s.AddVulnerability(vulnUntrustedPath, "Executable runs from a world-writable directory"); err != nil {
		return nil, err
	}
	if _, err := s.AddVulnerability(vulnPrivNetProc, "Privileged process with remote connections"); err != nil {
		return nil, err
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	// Track known PIDs for edge construction
	pidMap := make(map[int32]string)
	byExe := make(map[string][]string)

	for _, p := range procs {
		name, _ := p.NameWithContext(ctx)
		if name == "" {
			name = "unknown"
		}
		id := fmt.Sprintf("proc:%d", p.Pid)
		if _, err := s.AddTarget(id, fmt.Sprintf("%s (pid %d)", name, p.Pid)); err != nil {
			continue
		}
		pidMap[p.Pid] = id
		byExe[name] = append(byExe[name], id)

		if exe, err := p.ExeWithContext(ctx); err == nil && looksUntrustedPath(exe) {
			s.Attach(id, vulnUntrustedPath)
		}
	}

	// Parent-child spawn edges
	for _, p := range procs {
		ppid, err := p.PpidWithContext(ctx)
		if err != nil || ppid == 0 {
			continue
		}
		if parent, ok := pidMap[ppid]; ok {
			if child, ok := pidMap[p.Pid]; ok {
				s.Link(graph.RelationContains, parent, child)
			}
		}
	}

	// Same executable name is a lateral pivot in both directions
	for _, ids := range byExe {
		for _, a := range ids {
			for _, b := range ids {
				if a != b {
					s.Link(graph.RelationLateral, a, b)
				}
			}
		}
	}

	// Network connections: remote endpoints are terminal sinks, listeners
	// seed the external attacker's entry set.
	if _, err := s.AddAttacker(AttackerID, "External attacker"); err != nil {
		return nil, err
	}

	conns, err := netutil.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		// A model without network edges is still usable; keep going.
		return s, nil
	}
	for _, c := range conns {
		procID, known := pidMap[c.Pid]
		if !known {
			continue
		}
		switch c.Status {
		case "LISTEN":
			s.AddEntry(AttackerID, procID)
			if isPrivileged(c.Laddr.Port) {
				s.Attach(procID, vulnPrivNetProc)
			}
		case "ESTABLISHED":
			if c.Raddr.IP == "" || c.Raddr.Port == 0 {
				continue
			}
			remote := fmt.Sprintf("%s:%d", c.Raddr.IP, c.Raddr.Port)
			netID := "net:" + remote
			if _, ok := s.Target(netID); !ok {
				if _, err := s.AddTarget(netID, remote); err != nil {
					continue
				}
				s.SetTerminal(netID, true)
			}
			s.Link(graph.RelationDirect, procID, netID)
		}
	}

	return s, nil
}

// looksUntrustedPath flags executables started from directories any local
// user can write to.
func looksUntrustedPath(exe string) bool {
	for _, prefix := range []string{"/tmp/", "/var/tmp/", "/dev/shm/"} {
		if strings.HasPrefix(exe, prefix) {
			return true
		}
	}
	return false
}

// isPrivileged reports whether a listener binds a privileged port.
func isPrivileged(port uint32) bool {
	return port > 0 && port < 1024
}
