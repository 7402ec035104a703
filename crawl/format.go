package crawl

import "fmt"

// FormatProgress renders one progress event as a status line.
func FormatProgress(ev ProgressEvent) string {
	if ev.Maxed {
		return fmt.Sprintf("%s: maxed out...", ev.Prefix)
	}
	line := fmt.Sprintf("%s: %d entries", ev.Prefix, ev.Count)
	if ev.Overlaps > 0 {
		line += fmt.Sprintf(" (%d seen under an earlier prefix)", ev.Overlaps)
	}
	return line
}

// FormatSummary renders the line printed after a completed run.
func FormatSummary(total int, path string) string {
	return fmt.Sprintf("Completed. Wrote %d entries to '%s'", total, path)
}
