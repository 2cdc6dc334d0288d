package abe

import (
	"context"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
)

func pathAttributes(b *backend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: GetPath("attributes"),

			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.readAttributes,
					Summary:  "Lists the attribute universe the scheme was set up over.",
				},
			},
		},
	}
}

func (b *backend) readAttributes(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	pub, err := b.loadPublicParams(ctx)
	if err != nil {
		return logical.ErrorResponse(err.Error()), nil
	}

	attrs := make([]int, 0, len(pub.P))
	for attr := range pub.P {
		attrs = append(attrs, attr)
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"attributes": attrs,
		},
	}, nil
}
