package abe

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
	cache "github.com/patrickmn/go-cache"
)

// Factory creates a new backend implementing the logical.Backend interface
func Factory(ctx context.Context, conf *logical.BackendConfig) (logical.Backend, error) {
	b, err := Backend(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err := b.Setup(ctx, conf); err != nil {
		return nil, err
	}
	return b, nil
}

// FactoryType returns the factory
func FactoryType(backendType logical.BackendType) logical.Factory {
	return func(ctx context.Context, conf *logical.BackendConfig) (logical.Backend, error) {
		b, err := Backend(ctx, conf)
		if err != nil {
			return nil, err
		}
		b.BackendType = backendType
		if err = b.Setup(ctx, conf); err != nil {
			return nil, err
		}
		return b, nil
	}
}

// Backend returns a new Backend framework struct
func Backend(ctx context.Context, conf *logical.BackendConfig) (*backend, error) {
	var b backend

	backendPaths := framework.PathAppend(
		pathSetup(&b),
		pathAttributes(&b),
		pathKeygen(&b),
		pathEncrypt(&b),
		pathDecrypt(&b),
		pathBuilderPath(&b),
	)

	b.Backend = &framework.Backend{
		Help:        strings.TrimSpace(backendHelp),
		BackendType: logical.TypeLogical,

		PathsSpecial: &logical.Paths{
			Unauthenticated: []string{},

			Root: []string{
				"config/*",
			},

			SealWrapStorage: []string{
				paramsPrivatePath,
				KeysPath + "/",
			},
		},

		Paths: backendPaths,

		Secrets: []*framework.Secret{},
	}

	// abeCache holds the singleton kpabe.PublicParams/kpabe.PrivateParams
	// pair once loaded from storage (no expiration - they are immutable
	// once Setup has run), and individual decryption keys on a short TTL so
	// that the pbc.Element handles they own get released and re-derived
	// periodically rather than living forever in memory.
	b.abeCache = cache.New(0, 30*time.Second)

	b.storage = conf.StorageView

	return &b, nil
}

type backend struct {
	*framework.Backend

	storage  logical.Storage
	abeCache *cache.Cache
}

const backendHelp = `
Hashicorp Vault Secrets Engine (plugin) providing Key-Policy Attribute
Based Encryption (KP-ABE) following the Goyal-Pandey-Sahai-Waters
construction.
`
