package entities

type BookingEmailData struct {
	Name          string
	BookingCode   string
	SessionType   string
	DateFormatted string
	Time          string
	Location      string
	CurrentYear   int
}
