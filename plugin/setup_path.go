package abe

import (
	"context"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/census-labs/kpabe-core/kpabe"
)

func pathSetup(b *backend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: GetPath(strings.ToLower(SETUP_ENDPOINT)),

			Fields: map[string]*framework.FieldSchema{
				"attributes": {
					Type:        framework.TypeCommaIntSlice,
					Description: "[Required] The attribute universe to generate parameters over (e.g. `attributes: [1,2,3,4,5]`).",
					Required:    true,
				},
			},

			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.setup,
					Summary:  "Generates fresh public/private parameters over the given attribute universe.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.setup,
					Summary:  "Generates fresh public/private parameters over the given attribute universe.",
				},
			},
		},
	}
}

func (b *backend) setup(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	b.Logger().Info("Invoked: Setup")

	attrs := data.Get("attributes").([]int)
	if len(attrs) == 0 {
		return logical.ErrorResponse("at least one attribute is required to run setup"), nil
	}

	existing, err := b.storage.Get(ctx, paramsPublicPath)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return logical.ErrorResponse("the scheme has already been set up; setup can only run once per backend mount"), nil
	}

	pub, priv := kpabe.Setup(attrs)

	if err := b.storeParams(ctx, pub, priv); err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"attributes": attrs,
		},
	}, nil
}
