package crypto

// PTK is the Pairwise Transient Key, split into its three functional
// parts (GLOSSARY: KCK/KEK/TK).
type PTK struct {
	KCK []byte
	KEK []byte
	TK  []byte
}

const (
	kckLen = 16
	kekLen = 16
)

// TKLen returns the Temporal Key length in bytes for the negotiated
// pairwise cipher: 32 bytes (TKIP, which splits it further into a 16-byte
// encryption key and two 8-byte MIC keys) or 16 bytes (CCMP and the other
// AES-based ciphers).
func TKLen(pairwiseCipherIsTKIP bool) int {
	if pairwiseCipherIsTKIP {
		return 32
	}
	return 16
}

// DeriveKeys computes PTK = PRF(PMK, "Pairwise key expansion",
// Min(SPA,AA) || Max(SPA,AA) || Min(ANonce,SNonce) || Max(ANonce,SNonce))
// per IEEE 802.11-2016 §12.7.1.3, splitting the result into KCK, KEK, and a TK sized
// by tkLen. sha256 selects the KDF: false uses PRF (HMAC-SHA1), true uses
// PRFSHA256, per the negotiated AKM (domain.AKM.SHA256).
func DeriveKeys(pmk, spa, aa, aNonce, sNonce []byte, tkLen int, sha256 bool) *PTK {
	data := make([]byte, 0, len(spa)+len(aa)+len(aNonce)+len(sNonce))
	data = append(data, Min(spa, aa)...)
	data = append(data, Max(spa, aa)...)
	data = append(data, Min(aNonce, sNonce)...)
	data = append(data, Max(aNonce, sNonce)...)

	bits := (kckLen + kekLen + tkLen) * 8
	var raw []byte
	if sha256 {
		raw = PRFSHA256(pmk, "Pairwise key expansion", data, bits)
	} else {
		raw = PRF(pmk, "Pairwise key expansion", data, bits)
	}

	return &PTK{
		KCK: raw[0:kckLen],
		KEK: raw[kckLen : kckLen+kekLen],
		TK:  raw[kckLen+kekLen : kckLen+kekLen+tkLen],
	}
}
