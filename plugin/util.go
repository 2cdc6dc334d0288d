package abe

import (
	"context"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
)

func GetPath(subpath string) string {
	return subpath
}

func (b *backend) pathList(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	path := req.Path

	if path != "" && !strings.HasSuffix(path, "/") {
		path = path + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	entries, err := req.Storage.List(ctx, path)
	if err != nil {
		return nil, err
	}

	return logical.ListResponse(entries), nil
}
