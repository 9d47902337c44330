package ports

// CredentialVerifier checks a presented password against a stored
// credential. The current implementation compares plaintext; isolating it
// here lets a hashed scheme replace it without touching the auth service.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}
