// Command tripcalc estimates a Buffalo River float trip from the command
// line, using the same planning heuristics as the dashboard.
//
// Usage:
//
//	go run ./cmd/tripcalc -section "Ponca to Kyles Landing" -level 5.4 -group 4 -experience beginner
//	go run ./cmd/tripcalc -list
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	section := flag.String("section", "", "river section name, see -list")
	level := flag.Float64("level", 0, "current water level in feet")
	group := flag.Int("group", 2, "number of paddlers")
	experience := flag.String("experience", "intermediate", "beginner, intermediate, or advanced")
	list := flag.Bool("list", false, "list river sections and exit")
	flag.Parse()

	if *list {
		printSections()
		return nil
	}

	if *section == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -section")
	}
	if *level <= 0 {
		return fmt.Errorf("-level must be a positive water level in feet")
	}
	if *group < 1 {
		return fmt.Errorf("-group must be at least 1")
	}

	s, ok := domain.SectionByName(*section)
	if !ok {
		printSections()
		return fmt.Errorf("unknown section %q", *section)
	}

	calc := domain.EstimateTrip(s, *level, domain.ExperienceLevel(*experience), *group)

	fmt.Printf("%s (%.0f mi, %s)\n", s.Name, s.Distance, s.Difficulty)
	fmt.Printf("  Water level:    %.1f ft\n", *level)
	fmt.Printf("  Estimated time: %.1f hours\n", calc.EstimatedTime)
	fmt.Printf("  Canoes needed:  %d\n", calc.Canoes)
	fmt.Printf("  Rental cost:    $%.0f\n", calc.EstimatedCost)
	fmt.Printf("  Shuttle cost:   $%.0f\n", calc.ShuttleCost)
	fmt.Printf("  Launch time:    %s\n", calc.LaunchTime)
	if calc.IsRecommended {
		fmt.Println("  Conditions are within this section's recommended range.")
	} else {
		fmt.Printf("  NOT recommended at this level (range %.1f-%.1f ft).\n", s.MinLevel, s.MaxLevel)
	}
	return nil
}

func printSections() {
	w := os.Stdout
	fmt.Fprintln(w, "River sections:")
	for _, s := range domain.Sections() {
		fmt.Fprintf(w, "  %-26s %4.0f mi  %-12s %.1f-%.1f ft\n",
			s.Name, s.Distance, s.Difficulty, s.MinLevel, s.MaxLevel)
	}
}
