package model

// AdminAccount lives in the remote store under admin/{sanitizedEmail}.
type AdminAccount struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role,omitempty"`
	Created      int64  `json:"created,omitempty"`
}

// User is a customer identity stored under users/{uid}.
type User struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	PhotoURL  string `json:"photoURL,omitempty"`
	LastLogin string `json:"lastLogin"`
}
