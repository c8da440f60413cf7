package mocks

import "errors"

// errPasswordMismatch is the default Compare failure.
var errPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// for testing. By default Hash prefixes the password and Compare accepts the
// matching prefix form.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashErr    error
	CompareErr error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareErr != nil {
		return m.CompareErr
	}
	if hashedPassword != "hashed:"+password {
		return errPasswordMismatch
	}
	return nil
}
