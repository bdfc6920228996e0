package pow

import (
	"github.com/machinecoin-project/machinecoin-core/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// Scrypt parameters of the legacy proof-of-work hash.
const (
	scryptN      = 1024
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = externalapi.DomainHashSize
)

// LegacyHash is the proof-of-work hash of headers timestamped before the
// hash cutover: scrypt with N=1024, r=1, p=1 using the serialized header as
// both password and salt.
func LegacyHash(header []byte) (*externalapi.DomainHash, error) {
	key, err := scrypt.Key(header, header, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return externalapi.NewDomainHashFromByteSlice(key)
}
