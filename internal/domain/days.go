package domain

import "fmt"

// Day is one of the fixed sample dates
type Day struct {
	Number int    `json:"day"`
	File   string `json:"file"`
	Label  string `json:"label"`
}

// Days is the fixed catalogue of sample files, 1 to 5 January 2019
var Days = []Day{
	{Number: 1, File: "20190101.csv", Label: "1 January 2019"},
	{Number: 2, File: "20190102.csv", Label: "2 January 2019"},
	{Number: 3, File: "20190103.csv", Label: "3 January 2019"},
	{Number: 4, File: "20190104.csv", Label: "4 January 2019"},
	{Number: 5, File: "20190105.csv", Label: "5 January 2019"},
}

// LookupDay returns the catalogue entry for n
func LookupDay(n int) (Day, error) {
	for _, d := range Days {
		if d.Number == n {
			return d, nil
		}
	}
	return Day{}, fmt.Errorf("%w: %d", ErrInvalidDay, n)
}

// ValidateHour checks an hour-of-day selection
func ValidateHour(h int) error {
	if h < 0 || h > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, h)
	}
	return nil
}
