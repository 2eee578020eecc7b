package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// 会话存档的加密封装。密钥从口令衍生，nonce每次随机并拼在密文前面。
// 防的是"别的程序顺手读走存档文件"，不是认真对抗攻击者

var sealInfo = []byte("lexchange.session.seal")

type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, errors.New("seal passphrase is empty")
	}
	// 口令 -> 对称密钥
	hkdfSha512 := hkdf.New(sha512.New, []byte(passphrase), nil, sealInfo)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdfSha512, key); err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal 加密，输出 nonce||ciphertext
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open 解密Seal的输出
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < s.aead.NonceSize() {
		return nil, errors.New("sealed data too short")
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, ciphertext, nil)
}
