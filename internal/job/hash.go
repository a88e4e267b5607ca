package job

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTable separates table hashes from any other hash computed over the
// same canonical bytes. The version suffix allows a future format change.
const DomainTable = "wsjf/table/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TableHash returns the content hash of a table snapshot.
// Snapshots holding the same rows in the same order hash equal. The converse
// does not hold for descriptions: they are NFC-normalized and every invalid
// UTF-8 byte is encoded as U+FFFD, so equivalent texts collide.
func TableHash(jobs []Job) (string, error) {
	canonical, err := MarshalCanonical(jobs)
	if err != nil {
		return "", fmt.Errorf("TableHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

// MustTableHash is like TableHash but panics on error.
// Job tables only hold strings and ints, so marshaling cannot fail in practice.
func MustTableHash(jobs []Job) string {
	h, err := TableHash(jobs)
	if err != nil {
		panic(err)
	}
	return h
}
