package auth

// Service bundles the password hashing policy with the token lifecycle. The
// codec's signing key is fixed at construction and never rotated.
type Service struct {
	hasher PasswordHasher
	codec  TokenCodec
}

func NewService(hasher PasswordHasher, codec TokenCodec) *Service {
	return &Service{hasher: hasher, codec: codec}
}

func (s *Service) Hasher() PasswordHasher {
	return s.hasher
}

func (s *Service) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

func (s *Service) VerifyPassword(password, hash string) bool {
	return s.hasher.Verify(password, hash)
}

func (s *Service) IssueToken(username string) (string, error) {
	return s.codec.Issue(username)
}

func (s *Service) ValidateToken(token string) (string, error) {
	return s.codec.Validate(token)
}
