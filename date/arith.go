package date

// Add returns the date d moved forward by the given span.
//
// Day and week spans carry overflowing days into the following months.
// Month and year spans move the month or year directly and then clamp the
// day to the length of the target month, so 2020-01-31 plus one month is
// 2020-02-29.
func (d SimpleDate) Add(span Duration) SimpleDate {
	year, month, day := d.Year, d.Month, d.Day

	switch span.Unit {
	case Day, Week:
		days := span.Count
		if span.Unit == Week {
			days *= 7
		}
		day += days
		for day > DaysInMonth(year, month) {
			day -= DaysInMonth(year, month)
			month++
			if month > 12 {
				month = 1
				year++
			}
		}
	case Month:
		year, month = normMonth(year, month+span.Count)
	case Year:
		year += span.Count
	}

	if n := DaysInMonth(year, month); day > n {
		day = n
	}
	return FromYMD(year, month, day)
}

// Sub returns the date d moved backward by the given span. Day and week
// spans walk back one day at a time, borrowing from the previous month;
// clarity over speed, the counts involved are small.
func (d SimpleDate) Sub(span Duration) SimpleDate {
	year, month, day := d.Year, d.Month, d.Day

	daysToSub, monthsToSub := 0, 0
	switch span.Unit {
	case Day:
		daysToSub = span.Count
	case Week:
		daysToSub = span.Count * 7
	case Month:
		monthsToSub = span.Count
	case Year:
		year -= span.Count
	}

	for i := 0; i < daysToSub; i++ {
		day--
		if day == 0 {
			month--
			if month == 0 {
				year--
				month = 12
			}
			day = DaysInMonth(year, month)
		}
	}

	for i := 0; i < monthsToSub; i++ {
		month--
		if month == 0 {
			year--
			month = 12
		}
	}

	if n := DaysInMonth(year, month); day > n {
		day = n
	}
	return FromYMD(year, month, day)
}

// normMonth folds month overflow into the year, keeping month in 1-12.
func normMonth(year, month int) (int, int) {
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	return year, month
}
