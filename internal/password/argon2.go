// Package password hashes and verifies account credentials with argon2id.
// Digests are self-describing strings in the PHC format, so the parameters
// used at hash time travel with the digest and verification keeps working
// after a policy change.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptyPassword  = errors.New("empty password")
	ErrInvalidDigest  = errors.New("invalid password digest")
	ErrUnknownVariant = errors.New("unknown hash variant")
)

type Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams is the current hashing policy used for new digests.
var DefaultParams = Params{
	Time:    3,
	Memory:  64 * 1024, // 64 MiB
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

type Hasher struct {
	params Params
}

func NewHasher() *Hasher {
	return &Hasher{params: DefaultParams}
}

// Hash derives an argon2id digest with a fresh random salt. The same
// plaintext yields a different digest on every call.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return digest, nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest verifies false rather than erroring out to the caller; the stored
// value is attacker-neutral and the distinction is not actionable.
func (h *Hasher) Verify(plaintext, digest string) bool {
	params, salt, key, err := decode(digest)
	if err != nil {
		return false
	}
	calculated := argon2.IDKey([]byte(plaintext), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(calculated, key) == 1
}

func decode(digest string) (Params, []byte, []byte, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, ErrInvalidDigest
	}
	if parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrUnknownVariant
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, ErrInvalidDigest
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, ErrInvalidDigest
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrInvalidDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, ErrInvalidDigest
	}
	return p, salt, key, nil
}
