package base

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/minio/sha256-simd"
)

/***************************************
 * Fingerprint
 ***************************************/

type Fingerprint [sha256.Size]byte

// Registry format: {8-4-4-4-12} hexadecimal digits
func (x Fingerprint) Guid() string {
	return fmt.Sprint("{",
		hex.EncodeToString(x[0:4]),
		"-",
		hex.EncodeToString(x[4:6]),
		"-",
		hex.EncodeToString(x[6:8]),
		"-",
		hex.EncodeToString(x[8:10]),
		"-",
		hex.EncodeToString(x[10:16]),
		"}")
}
func (x Fingerprint) String() string {
	return hex.EncodeToString(x[:])
}
func (x Fingerprint) ShortString() string {
	return hex.EncodeToString(x[:8])
}
func (x Fingerprint) Valid() bool {
	for _, it := range x {
		if it != 0 {
			return true
		}
	}
	return false
}
func (d *Fingerprint) Set(str string) (err error) {
	var data []byte
	if data, err = hex.DecodeString(str); err == nil {
		if len(data) == sha256.Size {
			copy(d[:], data)
			return nil
		} else {
			err = fmt.Errorf("fingerprint: unexpected string length '%s'", str)
		}
	}
	return err
}
func (x Fingerprint) MarshalText() ([]byte, error) {
	buf := [sha256.Size * 2]byte{}
	Assert(func() bool { return hex.EncodedLen(len(x[:])) == len(buf) })
	hex.Encode(buf[:], x[:])
	return buf[:], nil
}
func (x *Fingerprint) UnmarshalText(data []byte) error {
	if hex.DecodedLen(len(data)) != sha256.Size {
		return fmt.Errorf("fingerprint: unexpected string length '%s'", data)
	}
	_, err := hex.Decode(x[:], data)
	return err
}

func ReaderFingerprint(rd io.Reader, seed Fingerprint) (result Fingerprint, err error) {
	digester := sha256.New()
	digester.Write(seed[:])

	if _, err = io.Copy(digester, rd); err == nil {
		copy(result[:], digester.Sum(nil))
		Assert(result.Valid)
	}
	return
}

func StringFingerprint(in string) Fingerprint {
	return sha256.Sum256(UnsafeBytesFromString(in))
}
