package domain

// Cipher and AKM suites as enumerated in IEEE 802.11-2016, Table 9-131 and
// Table 9-133 (§7.3.2.25.1/.2 in the 802.11i numbering). The suite
// byte is the fourth octet of the 4-byte (OUI, type) wire representation;
// the first three octets are either the IEEE OUI (00:0f:ac) or, for the
// WPA-IE variant, the Microsoft OUI (00:50:f2).
type Cipher uint8

const (
	CipherUseGroupCipher  Cipher = 0
	CipherWEP40           Cipher = 1
	CipherTKIP            Cipher = 2
	CipherReserved3       Cipher = 3
	CipherCCMP            Cipher = 4
	CipherWEP104          Cipher = 5
	CipherBIP             Cipher = 6
	CipherNoGroupTraffic  Cipher = 7
	CipherGCMP128         Cipher = 8
	CipherGCMP256         Cipher = 9
	CipherCCMP256         Cipher = 10
)

func (c Cipher) String() string {
	switch c {
	case CipherUseGroupCipher:
		return "USE-GROUP-CIPHER"
	case CipherWEP40:
		return "WEP-40"
	case CipherTKIP:
		return "TKIP"
	case CipherCCMP:
		return "CCMP"
	case CipherWEP104:
		return "WEP-104"
	case CipherBIP:
		return "BIP"
	case CipherNoGroupTraffic:
		return "NO-GROUP-TRAFFIC"
	case CipherGCMP128:
		return "GCMP-128"
	case CipherGCMP256:
		return "GCMP-256"
	case CipherCCMP256:
		return "CCMP-256"
	default:
		return "UNKNOWN"
	}
}

// ValidGroupCipher reports whether c may appear as the RSNE/WPA-IE group
// cipher. BIP and NoGroupTraffic are valid wire values in the group field
// but never negotiated as the *data* group cipher by this codec's callers;
// they are accepted by Parse and rejected by callers that need a data
// cipher specifically.
func (c Cipher) ValidGroupCipher() bool {
	switch c {
	case CipherWEP40, CipherTKIP, CipherCCMP, CipherWEP104,
		CipherGCMP128, CipherGCMP256, CipherCCMP256,
		CipherBIP, CipherNoGroupTraffic:
		return true
	default:
		return false
	}
}

// ValidPairwiseCipher reports whether c may appear in the RSNE/WPA-IE
// pairwise cipher list.
func (c Cipher) ValidPairwiseCipher() bool {
	switch c {
	case CipherUseGroupCipher, CipherWEP40, CipherTKIP, CipherCCMP,
		CipherWEP104, CipherGCMP128, CipherGCMP256, CipherCCMP256:
		return true
	default:
		return false
	}
}

// AKM identifies an Authentication and Key Management suite (Table 9-133).
type AKM uint8

const (
	AKM8021X          AKM = 1
	AKMPSK            AKM = 2
	AKMFT8021X        AKM = 3
	AKMFTPSK          AKM = 4
	AKM8021XSHA256    AKM = 5
	AKMPSKSHA256      AKM = 6
	AKMTDLS           AKM = 7
	AKMSAESHA256      AKM = 8
	AKMFTSAESHA256    AKM = 9
)

func (a AKM) String() string {
	switch a {
	case AKM8021X:
		return "802.1X"
	case AKMPSK:
		return "PSK"
	case AKMFT8021X:
		return "FT-802.1X"
	case AKMFTPSK:
		return "FT-PSK"
	case AKM8021XSHA256:
		return "802.1X-SHA256"
	case AKMPSKSHA256:
		return "PSK-SHA256"
	case AKMTDLS:
		return "TDLS"
	case AKMSAESHA256:
		return "SAE-SHA256"
	case AKMFTSAESHA256:
		return "FT-SAE-SHA256"
	default:
		return "UNKNOWN"
	}
}

// ValidAKM reports whether a is one of the statically enumerated suites
// between 8021X (low) and FT-SAE-SHA256 (high).
func ValidAKM(a AKM) bool {
	return a >= AKM8021X && a <= AKMFTSAESHA256
}

// SHA256 reports whether the AKM selects the SHA-256-based KDF for key
// derivation rather than the SHA-1-based PRF.
func (a AKM) SHA256() bool {
	switch a {
	case AKM8021XSHA256, AKMPSKSHA256, AKMSAESHA256, AKMFTSAESHA256:
		return true
	default:
		return false
	}
}
