package eapol

// Message-class verifiers for the 4-Way and Group Key Handshakes (802.11
// §11.6). Each checks the key-info flag pattern mandated for that message;
// a mismatch means the frame is not that message and the caller must
// reject or reclassify it.
//
// 802.11i-2004 §8.5.3.7 requires secure=false for message 3 under WPA
// (pre-RSN), but VerifyPTK3of4 conservatively accepts either value rather
// than rejecting legitimate WPA APs that set it anyway.

func commonFlagsClear(k KeyInfo) bool {
	return !k.IsSet(KeyInfoError) && !k.IsSet(KeyInfoRequest) && !k.IsSet(KeyInfoSMKMessage)
}

// VerifyPTK1of4 checks the message-1 flag pattern: pairwise, ACK set, no
// MIC, not secure, key data not encrypted, no install.
func VerifyPTK1of4(k KeyInfo) bool {
	return k.IsSet(KeyInfoType) &&
		k.IsSet(KeyInfoACK) &&
		!k.IsSet(KeyInfoMIC) &&
		!k.IsSet(KeyInfoSecure) &&
		!k.IsSet(KeyInfoEncryptedKeyData) &&
		!k.IsSet(KeyInfoInstall) &&
		commonFlagsClear(k)
}

// VerifyPTK2of4 checks the message-2 flag pattern: pairwise, MIC set, no
// ACK, not secure, no install.
func VerifyPTK2of4(k KeyInfo) bool {
	return k.IsSet(KeyInfoType) &&
		!k.IsSet(KeyInfoACK) &&
		k.IsSet(KeyInfoMIC) &&
		!k.IsSet(KeyInfoSecure) &&
		!k.IsSet(KeyInfoInstall) &&
		commonFlagsClear(k)
}

// VerifyPTK3of4 checks the message-3 flag pattern: pairwise, ACK, MIC,
// install all set; secure is tolerated either way (see package doc).
func VerifyPTK3of4(k KeyInfo) bool {
	return k.IsSet(KeyInfoType) &&
		k.IsSet(KeyInfoACK) &&
		k.IsSet(KeyInfoMIC) &&
		k.IsSet(KeyInfoInstall) &&
		commonFlagsClear(k)
}

// VerifyPTK4of4 checks the message-4 flag pattern: pairwise, MIC and
// secure set, no ACK, no install.
func VerifyPTK4of4(k KeyInfo) bool {
	return k.IsSet(KeyInfoType) &&
		!k.IsSet(KeyInfoACK) &&
		k.IsSet(KeyInfoMIC) &&
		k.IsSet(KeyInfoSecure) &&
		!k.IsSet(KeyInfoInstall) &&
		commonFlagsClear(k)
}

// VerifyGTK1of2 checks Group Key message-1: group key type, ACK, MIC, and
// secure all set.
func VerifyGTK1of2(k KeyInfo) bool {
	return !k.IsSet(KeyInfoType) &&
		k.IsSet(KeyInfoACK) &&
		k.IsSet(KeyInfoMIC) &&
		k.IsSet(KeyInfoSecure) &&
		commonFlagsClear(k)
}

// VerifyGTK2of2 checks Group Key message-2: group key type, MIC and
// secure set, no ACK.
func VerifyGTK2of2(k KeyInfo) bool {
	return !k.IsSet(KeyInfoType) &&
		!k.IsSet(KeyInfoACK) &&
		k.IsSet(KeyInfoMIC) &&
		k.IsSet(KeyInfoSecure) &&
		commonFlagsClear(k)
}
