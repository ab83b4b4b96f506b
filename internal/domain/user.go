package domain

// User representa a entidade do usuário no sistema.
type User struct {
	ID           int     `json:"id"`
	Nickname     string  `json:"nickname"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"` // nunca sai no JSON de resposta
	Photo        *string `json:"photo"`
	Gender       *string `json:"gender"`
	BirthDate    *string `json:"birth_date"`
	IsAdmin      bool    `json:"is_admin"`
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Nickname  string  `json:"nickname"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Photo     *string `json:"photo"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

// ProfileUpdate representa o payload do POST /update-user.
type ProfileUpdate struct {
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

// AuthResult é a resposta de registro/login: token JWT + usuário.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
