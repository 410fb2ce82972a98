package domain

// Profile is the user-facing identity the domain works with. Credentials live
// with the account record in the persistence layer and never reach the domain.
type Profile struct {
	DisplayName string
	Email       string
}

// User is a domain participant: an id plus its profile.
type User struct {
	ID uint64
	Profile
}
