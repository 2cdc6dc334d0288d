package abe

import (
	"context"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/census-labs/kpabe-core/kpabe"
	"github.com/census-labs/kpabe-core/policy"
)

func pathKeygen(b *backend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: GetPath(strings.ToLower(KEYGEN_ENDPOINT) + "/" + framework.GenericNameRegex("name")),

			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "[Required] The name to store the generated decryption key under.",
					Required:    true,
				},
				"policy": {
					Type:        framework.TypeString,
					Description: "[Required] The access policy, e.g. `(1 OR 2) AND (3 OR 4)`.",
					Required:    true,
				},
			},

			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.keygen,
					Summary:  "Generates a decryption key bound to an access policy.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.keygen,
					Summary:  "Generates a decryption key bound to an access policy.",
				},
			},
		},
		{
			Pattern: GetPath(KeysPath + "/?$"),

			Callbacks: map[logical.Operation]framework.OperationFunc{
				logical.ListOperation: b.pathList,
			},
		},
	}
}

func (b *backend) keygen(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	b.Logger().Info("Invoked: KeyGen")

	name := data.Get("name").(string)
	policyStr := data.Get("policy").(string)

	accessPolicy, err := policy.Parse(policyStr)
	if err != nil {
		return logical.ErrorResponse("invalid policy: %s", err), nil
	}

	priv, err := b.loadPrivateParams(ctx)
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}

	key, err := kpabe.KeyGen(priv, accessPolicy)
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}

	if err := b.storeDecryptionKey(ctx, name, key, policyStr); err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"name":   name,
			"policy": policyStr,
			"attrs":  accessPolicy.Leafs(),
		},
	}, nil
}
