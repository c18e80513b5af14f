package main

import (
	"fmt"
	"io"
	"strings"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
)

func printProcessTable(w io.Writer, processes []v1.Process) {
	headers := []string{"ID", "STATUS", "PID", "COMMAND"}
	rows := make([][]string, 0, len(processes))
	for _, p := range processes {
		pid := ""
		if p.Pid > 0 {
			pid = fmt.Sprint(p.Pid)
		}
		rows = append(rows, []string{p.UUID, p.Status, pid, p.Cmd})
	}

	// Determine column widths
	widths := []int{36, 7, 3, 7}
	for i, h := range headers {
		widths[i] = max(widths[i], len(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var sep strings.Builder
	sep.WriteString("+")
	for _, width := range widths {
		sep.WriteString(strings.Repeat("-", width+2) + "+")
	}
	sep.WriteString("\n")

	fmt.Fprint(w, sep.String())
	printRow(w, headers, widths)
	fmt.Fprint(w, sep.String())
	for _, row := range rows {
		printRow(w, row, widths)
	}
	if len(rows) > 0 {
		fmt.Fprint(w, sep.String())
	}
}

func printRow(w io.Writer, cells []string, widths []int) {
	fmt.Fprint(w, "|")
	for i, cell := range cells {
		fmt.Fprintf(w, " %s |", pad(cell, widths[i]))
	}
	fmt.Fprintln(w)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
