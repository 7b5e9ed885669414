package entity

// Timezone represents timezone information for airports
type Timezone struct {
	AirportCode string
	AirportName string
	CityName    string
	TzName      string
}
