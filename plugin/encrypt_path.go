package abe

import (
	"context"
	b64 "encoding/base64"
	"encoding/json"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/census-labs/kpabe-core/kpabe"
)

func pathEncrypt(b *backend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: GetPath(strings.ToLower(ENCRYPT_ENDPOINT)),

			Fields: map[string]*framework.FieldSchema{
				"message": {
					Type:        framework.TypeString,
					Description: "[Required] Specifies the message to encrypt.",
					Required:    true,
				},
				"attributes": {
					Type:        framework.TypeCommaIntSlice,
					Description: "[Required] The attribute set to encrypt under (e.g. `attributes: [1,3]`).",
					Required:    true,
				},
			},

			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.encrypt,
					Summary:  "Encrypts a message under an attribute set.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.encrypt,
					Summary:  "Encrypts a message under an attribute set.",
				},
			},
		},
	}
}

func (b *backend) encrypt(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	b.Logger().Info("Invoked: Encryption")

	message := data.Get("message").(string)
	attrs := data.Get("attributes").([]int)

	if len(message) == 0 {
		return logical.ErrorResponse("empty message for encryption; please provide a message"), nil
	}
	if len(attrs) == 0 {
		return logical.ErrorResponse("at least one attribute is required to encrypt"), nil
	}

	pub, err := b.loadPublicParams(ctx)
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}

	cw, ct, err := kpabe.Encrypt(pub, attrs, []byte(message))
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}
	defer cw.Clear()

	sealed := sealedMessage{
		Cw:         cw.Bytes(),
		Ciphertext: ct,
	}

	exported, err := json.Marshal(sealed)
	if err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"b64_enc_data": b64.StdEncoding.EncodeToString(exported),
		},
	}, nil
}
