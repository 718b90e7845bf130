//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/muurk/maskedit/internal/config"
	"github.com/muurk/maskedit/internal/server"
	"github.com/muurk/maskedit/internal/session"
)

// Statistics tracks replay results
type Statistics struct {
	TotalRequests int
	TotalFiles    int
	Success       int
	Failure       int
	Rejected      int
	Cancelled     int
	Ops           map[server.Op]int
	Commands      map[session.CommandKind]int
	Failed        []FailedRequest
}

// FailedRequest stores information about a request that errored
type FailedRequest struct {
	File       string
	LineNumber int
	ID         int
	Op         server.Op
	Error      string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: replay_requests <directory-or-file>")
		fmt.Println("Example: replay_requests captures/")
		fmt.Println("         replay_requests session-20251121.jsonl")
		os.Exit(1)
	}

	path := os.Args[1]

	stats := Statistics{
		Ops:      make(map[server.Op]int),
		Commands: make(map[session.CommandKind]int),
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error accessing path: %v\n", err)
		os.Exit(1)
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.jsonl"))
		if err != nil {
			fmt.Printf("Error finding JSONL files: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Printf("No JSONL files found in %s\n", path)
			os.Exit(1)
		}
	} else {
		files = []string{path}
	}

	reg, err := config.LoadRegistry()
	if err != nil {
		fmt.Printf("Error loading profiles: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Maskedit Request Replayer ===\n")
	fmt.Printf("Files to process: %d\n\n", len(files))

	for _, file := range files {
		processFile(file, reg, &stats)
	}

	printStatistics(&stats)
}

// processFile replays one capture. Each file is one field session.
func processFile(filename string, reg *config.Registry, stats *Statistics) {
	stats.TotalFiles++

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
		return
	}

	var eng *session.Engine
	fail := func(line int, req server.Request, err error) {
		stats.Failure++
		stats.Failed = append(stats.Failed, FailedRequest{
			File:       filename,
			LineNumber: line,
			ID:         req.ID,
			Op:         req.Op,
			Error:      err.Error(),
		})
	}

	for lineNum, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var req server.Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			fmt.Printf("Error parsing JSON in %s line %d: %v\n", filename, lineNum+1, err)
			continue
		}
		stats.TotalRequests++
		stats.Ops[req.Op]++

		switch req.Op {
		case server.OpOpen:
			eng, err = openRequest(reg, req)
			if err != nil {
				fail(lineNum+1, req, err)
				continue
			}
		case server.OpCommand:
			if eng == nil || req.Command == nil {
				fail(lineNum+1, req, fmt.Errorf("command without an open field"))
				continue
			}
			stats.Commands[req.Command.Kind]++
			out, err := eng.Execute(*req.Command)
			if err != nil {
				fail(lineNum+1, req, err)
				continue
			}
			if out.Rejected {
				stats.Rejected++
			}
			if out.Cancelled {
				stats.Cancelled++
			}
		case server.OpSetSelection:
			if eng == nil || req.Selection == nil {
				fail(lineNum+1, req, fmt.Errorf("set_selection without an open field"))
				continue
			}
			eng.SetSelection(*req.Selection)
		case server.OpSetMask:
			if eng == nil {
				fail(lineNum+1, req, fmt.Errorf("set_mask without an open field"))
				continue
			}
			if err := eng.SetMask(req.Mask, req.Text, req.Reset); err != nil {
				fail(lineNum+1, req, err)
				continue
			}
		case server.OpTokens:
		default:
			fail(lineNum+1, req, fmt.Errorf("unknown op %q", req.Op))
			continue
		}
		stats.Success++
	}

	if eng != nil {
		fmt.Printf("%s: final text %q\n", filepath.Base(filename), eng.Text())
	}
}

func openRequest(reg *config.Registry, req server.Request) (*session.Engine, error) {
	if req.Profile == "" {
		return session.New(req.Mask, req.Text, session.DefaultConfig())
	}
	p, err := reg.GetProfile(req.Profile)
	if err != nil {
		return nil, err
	}
	eng, err := p.NewEngine()
	if err != nil {
		return nil, err
	}
	if req.Text != "" {
		if err := eng.SetMask(eng.Mask(), req.Text, false); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

func printStatistics(stats *Statistics) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("REPLAY RESULTS\n")
	fmt.Printf("========================================\n\n")

	total := float64(stats.TotalRequests)
	if total == 0 {
		total = 1
	}
	fmt.Printf("Files Processed:    %d\n", stats.TotalFiles)
	fmt.Printf("Total Requests:     %d\n", stats.TotalRequests)
	fmt.Printf("Success:            %d (%.2f%%)\n", stats.Success, float64(stats.Success)/total*100)
	fmt.Printf("Failure:            %d (%.2f%%)\n", stats.Failure, float64(stats.Failure)/total*100)
	fmt.Printf("Rejected commands:  %d\n", stats.Rejected)
	fmt.Printf("Cancelled commands: %d\n", stats.Cancelled)

	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("OP DISTRIBUTION\n")
	fmt.Printf("----------------------------------------\n")
	ops := make([]server.Op, 0, len(stats.Ops))
	for op := range stats.Ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	for _, op := range ops {
		fmt.Printf("%-14s %d\n", op, stats.Ops[op])
	}

	if len(stats.Commands) > 0 {
		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("COMMAND DISTRIBUTION\n")
		fmt.Printf("----------------------------------------\n")
		for kind, count := range stats.Commands {
			fmt.Printf("%-14s %d\n", kind, count)
		}
	}

	if len(stats.Failed) > 0 {
		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("FAILURES (%d total)\n", len(stats.Failed))
		fmt.Printf("----------------------------------------\n")

		maxShow := 10
		if len(stats.Failed) > maxShow {
			fmt.Printf("(Showing first %d of %d failures)\n\n", maxShow, len(stats.Failed))
		}
		for i, f := range stats.Failed {
			if i >= maxShow {
				break
			}
			fmt.Printf("\nFailure #%d:\n", i+1)
			fmt.Printf("  File: %s (line %d, id %d)\n", f.File, f.LineNumber, f.ID)
			fmt.Printf("  Op: %s\n", f.Op)
			fmt.Printf("  Error: %s\n", f.Error)
		}
	}

	fmt.Printf("\n========================================\n")
	if stats.Failure == 0 {
		fmt.Printf("✅ SUCCESS: All requests replayed cleanly!\n")
	} else {
		fmt.Printf("⚠️  ISSUES FOUND: %d requests failed\n", stats.Failure)
	}
	fmt.Printf("========================================\n")
}
