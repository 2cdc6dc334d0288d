package abe

import (
	"context"
	b64 "encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/census-labs/kpabe-core/kpabe"
)

func pathDecrypt(b *backend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: GetPath(strings.ToLower(DECRYPT_ENDPOINT) + "/" + framework.GenericNameRegex("name")),

			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "[Required] The name of the decryption key to use.",
					Required:    true,
				},
				"attributes": {
					Type:        framework.TypeCommaIntSlice,
					Description: "[Required] The attribute set the ciphertext was encrypted under.",
					Required:    true,
				},
				"b64_enc_data": {
					Type:        framework.TypeString,
					Description: "[Required] The base64-encoded sealed message returned by encrypt.",
					Required:    true,
				},
			},

			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.decrypt,
					Summary:  "Decrypts a sealed message using a named decryption key.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.decrypt,
					Summary:  "Decrypts a sealed message using a named decryption key.",
				},
			},
		},
	}
}

func (b *backend) decrypt(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	b.Logger().Info("Invoked: Decryption")

	name := data.Get("name").(string)
	attrs := data.Get("attributes").([]int)
	encoded := data.Get("b64_enc_data").(string)

	raw, err := b64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return logical.ErrorResponse("could not decode b64_enc_data: %s", err), nil
	}

	var sealed sealedMessage
	if err := json.Unmarshal(raw, &sealed); err != nil {
		return logical.ErrorResponse("could not parse sealed message: %s", err), nil
	}

	key, err := b.loadDecryptionKey(ctx, name)
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}
	defer key.Clear()

	cw := kpabe.CwFromBytes(sealed.Cw)
	defer cw.Clear()

	plaintext, err := kpabe.Decrypt(key, cw, attrs, sealed.Ciphertext)
	if err != nil {
		if errors.Is(err, kpabe.ErrUnsatisfiable) {
			return logical.ErrorResponse(fmt.Sprintf("attribute set does not satisfy the policy of key %q", name)), nil
		}
		return logical.ErrorResponse(err.Error()), nil
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"decrypted_data": string(plaintext),
		},
	}, nil
}
