package models

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Genero    string `json:"Genero"`
	Username  string `json:"Username"`
	Password  string `json:"Password"`
	Role      string `json:"Role"`
}

type Profile struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Genero    string `json:"Genero"`
	Username  string `json:"Username"`
}

// ProfileUpdate changes the editable profile fields. A nil Password keeps
// the current one.
type ProfileUpdate struct {
	FirstName string  `json:"FirstName"`
	LastName  string  `json:"LastName"`
	Email     string  `json:"Email"`
	Genero    string  `json:"Genero"`
	Password  *string `json:"Password,omitempty"`
}
