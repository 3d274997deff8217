package holiday

import "time"

// Norwegian returns the Norwegian public holidays for a year, with dates at
// midnight in loc. All of them close schools.
func Norwegian(year int, loc *time.Location) []Holiday {
	easter := easterSunday(year, loc)
	day := func(t time.Time, name string) Holiday {
		return Holiday{Date: t, Name: name, AffectsSchools: true}
	}
	fixed := func(month time.Month, d int, name string) Holiday {
		return day(time.Date(year, month, d, 0, 0, 0, 0, loc), name)
	}

	return []Holiday{
		fixed(time.January, 1, "Første nyttårsdag"),
		day(easter.AddDate(0, 0, -7), "Palmesøndag"),
		day(easter.AddDate(0, 0, -3), "Skjærtorsdag"),
		day(easter.AddDate(0, 0, -2), "Langfredag"),
		day(easter, "Første påskedag"),
		day(easter.AddDate(0, 0, 1), "Andre påskedag"),
		fixed(time.May, 1, "Arbeidernes dag"),
		fixed(time.May, 17, "Grunnlovsdagen"),
		day(easter.AddDate(0, 0, 39), "Kristi himmelfartsdag"),
		day(easter.AddDate(0, 0, 49), "Første pinsedag"),
		day(easter.AddDate(0, 0, 50), "Andre pinsedag"),
		fixed(time.December, 25, "Første juledag"),
		fixed(time.December, 26, "Andre juledag"),
	}
}

// easterSunday computes Gregorian Easter with the anonymous Gauss
// algorithm.
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
