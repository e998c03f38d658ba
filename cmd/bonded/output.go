package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/srg/bonded/internal/device"
	"golang.org/x/term"
)

const noBondedDevices = "No bonded devices"

// isTerminal reports whether w writes to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveFormat turns "auto" into "table" on a terminal and "json" elsewhere
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTerminal(w) {
		return "table"
	}
	return "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func displayName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func writeRecordsTable(w io.Writer, records []device.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, noBondedDevices)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", bold("NAME"), bold("ADDRESS"))
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\n", displayName(r.Name), r.Address)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d bonded device(s)\n", len(records))
	return err
}

func writeDetailsTable(w io.Writer, details []device.Details) error {
	if len(details) == 0 {
		_, err := fmt.Fprintln(w, noBondedDevices)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		bold("NAME"), bold("ADDRESS"), bold("ALIAS"), bold("CONNECTED"), bold("TRUSTED"), bold("SERVICES"))
	for _, d := range details {
		services := make([]string, 0, len(d.UUIDs))
		for _, u := range d.UUIDs {
			services = append(services, u.String())
		}
		svc := "-"
		if len(services) > 0 {
			svc = strings.Join(services, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			displayName(d.Name), d.Address, displayName(d.Alias), yesNo(d.Connected), yesNo(d.Trusted), svc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d bonded device(s)\n", len(details))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
