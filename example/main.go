// Command example parses a couple of human-readable schedules, expands
// them over a window, pro-rates a small ledger and exports everything
// as an iCalendar file on stdout.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/samber/mo"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/expand"
	"github.com/cyp0633/libsched/ics"
	"github.com/cyp0633/libsched/recur"
	"github.com/cyp0633/libsched/schedule"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	start := date.FromYMD(2020, 9, 1)

	// Parse schedules the way a user would type them.
	rent, err := recur.ParseRepetition("monthly on the 1st", "", start)
	if err != nil {
		log.Fatalf("parse rent schedule: %v", err)
	}
	gym, err := recur.ParseRepetition("every 2 weeks on monday", "after 6 times", start)
	if err != nil {
		log.Fatalf("parse gym schedule: %v", err)
	}

	gymRep := gym.MustGet()
	logger.Info("parsed schedules",
		"rent", rent.MustGet().String(),
		"gym", gymRep.String(),
		"gym_final", recur.Final(start, gymRep).String())

	// Expand the gym schedule over the last quarter of 2020.
	engine := expand.New()
	defer engine.Close()

	from := date.FromYMD(2020, 10, 1)
	to := date.FromYMD(2020, 12, 31)
	occurrences, err := engine.Expand(start, gymRep, from, to)
	if err != nil {
		log.Fatalf("expand gym schedule: %v", err)
	}
	for _, occ := range occurrences {
		logger.Info("gym session", "date", occ.String())
	}

	// Pro-rate a small ledger across October.
	entries := []schedule.Entry{
		schedule.New(1, "rent", -120000, start,
			mo.None[date.Duration](), rent, []string{"home"}),
		schedule.New(2, "gym", -3500, start,
			mo.None[date.Duration](), gym, []string{"health"}),
	}
	for _, entry := range entries {
		fmt.Fprintln(os.Stderr, entry)
	}
	total := schedule.Spread(entries, from, date.Months(1))
	logger.Info("october pro-rata total", "dollars", fmt.Sprintf("%.2f", total))

	// Export both schedules as an iCalendar file.
	rentEvent, err := ics.Event("Pay rent", start, rent)
	if err != nil {
		log.Fatalf("build rent event: %v", err)
	}
	gymEvent, err := ics.Event("Gym session", start, gym)
	if err != nil {
		log.Fatalf("build gym event: %v", err)
	}

	if err := ics.Encode(os.Stdout, ics.Calendar(rentEvent, gymEvent)); err != nil {
		log.Fatalf("encode calendar: %v", err)
	}
}
