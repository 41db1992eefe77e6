package integration_test

const (
	// User related constants
	TestGuestName    = "Ada Lovelace"
	TestGuestEmail   = "ada@example.com"
	TestHostName     = "Grace Hopper"
	TestHostEmail    = "grace@example.com"
	TestUserPassword = "Test123!@#"

	// Listing related constants
	TestListingTitle       = "Canal View Loft"
	TestListingDescription = "A bright loft overlooking the Prinsengracht canal."
	TestListingPrice       = "100"
	TestListingAddress     = "Prinsengracht 263"
	TestListingCity        = "Amsterdam"
	TestListingCountry     = "Netherlands"
	TestListingImageUrl    = "https://example.com/loft.jpg"

	// Booking dates are far in the future so the past check-in rule never trips.
	TestCheckIn      = "2095-03-01"
	TestCheckOut     = "2095-03-05"
	TestNextCheckIn  = "2095-03-05"
	TestNextCheckOut = "2095-03-08"
)
