package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implementación de PasswordHasher sobre bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher construye el hasher con el costo por defecto de bcrypt.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash genera el hash bcrypt de la contraseña.
func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare verifica la contraseña contra el hash almacenado.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
