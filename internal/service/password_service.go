package service

type PasswordService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (rehashNeeded bool, ok bool)
	// DummyVerify burns the same time as a real verification. Used when there
	// is no stored hash to compare against.
	DummyVerify(password string)
}
