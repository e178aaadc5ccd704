package repositories

// Ключи коллекций в key-value хранилище.
const (
	tournamentsKey = "tournaments"
	usersKey       = "users"
)
