// Package report derives the filter option sets used by the console's
// reporting views.
package report

import "fmt"

const totalSemesters = 8

// semestersByYear maps a class year to the semesters its students sit.
var semestersByYear = map[string][]int{
	"1st Year": {1, 2},
	"2nd Year": {3, 4},
	"3rd Year": {5, 6},
	"4th Year": {7, 8},
}

// ClassYears returns the known class years in academic order.
func ClassYears() []string {
	return []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}
}

// SemesterOptions derives the semester filter set for a class-year filter.
// "All" yields every semester, an unknown year yields nothing beyond the
// leading "All" option.
func SemesterOptions(classYear string) []string {
	var numbers []int
	if classYear == "All" {
		numbers = make([]int, 0, totalSemesters)
		for i := 1; i <= totalSemesters; i++ {
			numbers = append(numbers, i)
		}
	} else {
		numbers = semestersByYear[classYear]
	}

	out := make([]string, 0, len(numbers)+1)
	out = append(out, "All")
	for _, n := range numbers {
		out = append(out, fmt.Sprintf("Sem %d", n))
	}
	return out
}
