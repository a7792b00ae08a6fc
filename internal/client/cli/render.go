package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/timeline"
	"golang.org/x/term"
)

// getTermSize is a test seam for term.GetSize.
var getTermSize = term.GetSize

const defaultWidth = 80

func (a *App) width() int {
	w, _, err := getTermSize(int(os.Stdout.Fd()))
	if err != nil || w < 20 {
		return defaultWidth
	}
	return w
}

func (a *App) printRecord(r models.MemoryRecord) {
	fmt.Fprintf(a.out, "#%d  %s  [%s]  %.5f,%.5f  %s\n",
		r.ID, r.Title, timeline.LocationLabel(r), r.Latitude, r.Longitude,
		r.CreatedAt.In(a.loc).Format("2006-01-02 15:04"))
	if r.UpdatedAt != nil {
		fmt.Fprintf(a.out, "    edited %s\n", r.UpdatedAt.In(a.loc).Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(a.out, "    "+truncate(oneLine(r.Description), a.width()-4))
}

func (a *App) printTimeline(years []timeline.Year) {
	width := a.width()
	for _, y := range years {
		fmt.Fprintf(a.out, "%d\n", y.Year)
		for _, m := range y.Months {
			fmt.Fprintf(a.out, "  %s\n", m.Name)
			for _, r := range m.Records {
				head := fmt.Sprintf("    %s  #%d %s (%s)",
					r.CreatedAt.In(a.loc).Format("02"), r.ID, r.Title, timeline.LocationLabel(r))
				fmt.Fprintln(a.out, truncate(head, width))
				fmt.Fprintln(a.out, "        "+truncate(oneLine(r.Description), width-8))
			}
		}
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
