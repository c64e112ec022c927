package entity

import "slices"

// District is a delivery district name. The zero value means the location is unknown.
type District string

// Districts is the fixed enumeration of districts the platform delivers to.
// Some districts are known by two spellings and both are accepted.
var Districts = []District{
	"Hodan",
	"Wadajir",
	"Hamar Weyne",
	"Hamar Jajab",
	"Shangani",
	"Abdiaziz",
	"Abdiaziiz",
	"Bondhere",
	"Boondheere",
	"Shibis",
	"Karan",
	"Dharkenley",
	"Yaqshid",
	"Yaqshiid",
	"Daynile",
	"Wardhigley",
	"Wardhiigley",
	"Howlwadaag",
	"Heliwa",
	"Kahda",
	"Kaxda",
	"Waberi",
}

func (d District) Known() bool {
	return slices.Contains(Districts, d)
}

func (d District) IsZero() bool {
	return d == ""
}
