package dateutil

// Decade returns the decade bucket an age falls into: floor(age/10)*10.
func Decade(age int) int {
	d := age / 10
	if age < 0 && age%10 != 0 {
		d--
	}
	return d * 10
}

// CalendarYear returns the calendar year in which a person who is startAge
// in startYear reaches age.
func CalendarYear(startYear, startAge, age int) int {
	return startYear + (age - startAge)
}

// YearsBetween returns the number of simulated years from fromAge to toAge
// inclusive, or zero when the range is empty.
func YearsBetween(fromAge, toAge int) int {
	if toAge < fromAge {
		return 0
	}
	return toAge - fromAge + 1
}
