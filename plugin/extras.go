package abe

const (
	// paramsPublicPath and paramsPrivatePath are where the scheme's
	// public/private parameters are stored.
	paramsPublicPath  = "config/params/public"
	paramsPrivatePath = "config/params/private"

	paramsCacheKey = "params"

	// KeysPath is the prefix under which generated decryption keys live.
	KeysPath = "keys"

	KEYGEN_ENDPOINT  = "keygen"
	ENCRYPT_ENDPOINT = "encrypt"
	DECRYPT_ENDPOINT = "decrypt"
	SETUP_ENDPOINT   = "setup"
)

// publicParamsEntry is the on-disk encoding of kpabe.PublicParams.
type publicParamsEntry struct {
	Pk []byte         `json:"pk"`
	P  map[int][]byte `json:"p"`
}

// privateParamsEntry is the on-disk encoding of kpabe.PrivateParams. It
// lives at a SealWrapStorage path - see backend.go.
type privateParamsEntry struct {
	Mk []byte         `json:"mk"`
	S  map[int][]byte `json:"s"`
}

// decryptionKeyEntry is the on-disk encoding of a kpabe.DecryptionKey: the
// policy it was generated for, serialized back to its string form, and the
// per-leaf D shares.
type decryptionKeyEntry struct {
	Policy string         `json:"policy"`
	D      map[int][]byte `json:"d"`
}

// sealedMessage is the wire container returned by the encrypt path and
// consumed by the decrypt path: the per-attribute Cw material plus the
// symmetrically encrypted body.
type sealedMessage struct {
	Cw         map[int][]byte `json:"cw"`
	Ciphertext []byte         `json:"ciphertext"`
}
