package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/BuzzLyutic/taskify/internal/model"
)

func status(t model.Task) string {
	if t.Completed {
		return "done"
	}
	return "open"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable: POS считается внутри секции, как аргументы move
func writeTable(w io.Writer, tasks []model.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tID\tSTATUS\tPRIORITY\tTITLE")

	var open, done int
	for _, t := range tasks {
		pos := open
		if t.Completed {
			pos = done
			done++
		} else {
			open++
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", pos, t.ID, status(t), t.Priority, t.Title)
	}
	return tw.Flush()
}

func writeTask(w io.Writer, t model.Task) {
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Description: %s\n", t.Description)
	fmt.Fprintf(w, "Priority:    %s\n", t.Priority)
	fmt.Fprintf(w, "Status:      %s\n", status(t))
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Updated:     %s\n", t.UpdatedAt.Local().Format(time.DateTime))
}

func writeStats(w io.Writer, s model.Stats) {
	fmt.Fprintf(w, "Total:      %d\n", s.Total)
	fmt.Fprintf(w, "Completed:  %d\n", s.Completed)
	fmt.Fprintf(w, "Incomplete: %d\n", s.Incomplete)
	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		fmt.Fprintf(w, "  %-6s %d\n", p, s.ByPriority[p])
	}
}
