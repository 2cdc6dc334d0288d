package abe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nik-U/pbc"
	"github.com/hashicorp/errwrap"
	"github.com/hashicorp/vault/sdk/helper/jsonutil"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/census-labs/kpabe-core/internal/pairing"
	"github.com/census-labs/kpabe-core/kpabe"
	"github.com/census-labs/kpabe-core/policy"
)

// loadPublicParams returns the scheme's public parameters, serving them out
// of abeCache when available.
func (b *backend) loadPublicParams(ctx context.Context) (kpabe.PublicParams, error) {
	if cached, ok := b.abeCache.Get(paramsCacheKey + "/public"); ok {
		return cached.(kpabe.PublicParams), nil
	}

	out, err := b.storage.Get(ctx, paramsPublicPath)
	if err != nil {
		return kpabe.PublicParams{}, errwrap.Wrapf("read failed: {{err}}", err)
	}
	if out == nil {
		return kpabe.PublicParams{}, fmt.Errorf("the scheme has not been set up yet; POST to setup first")
	}

	var entry publicParamsEntry
	if err := jsonutil.DecodeJSON(out.Value, &entry); err != nil {
		return kpabe.PublicParams{}, errwrap.Wrapf("json decoding failed: {{err}}", err)
	}

	p := pairing.Context()
	pub := kpabe.PublicParams{
		Pk: p.NewG1().SetBytes(entry.Pk),
		P:  make(map[int]*pbc.Element, len(entry.P)),
	}
	for attr, raw := range entry.P {
		pub.P[attr] = p.NewG1().SetBytes(raw)
	}

	b.abeCache.SetDefault(paramsCacheKey+"/public", pub)
	return pub, nil
}

// loadPrivateParams returns the scheme's private parameters. Only the
// keygen path calls this; it is never exposed over the wire.
func (b *backend) loadPrivateParams(ctx context.Context) (kpabe.PrivateParams, error) {
	if cached, ok := b.abeCache.Get(paramsCacheKey + "/private"); ok {
		return cached.(kpabe.PrivateParams), nil
	}

	out, err := b.storage.Get(ctx, paramsPrivatePath)
	if err != nil {
		return kpabe.PrivateParams{}, errwrap.Wrapf("read failed: {{err}}", err)
	}
	if out == nil {
		return kpabe.PrivateParams{}, fmt.Errorf("the scheme has not been set up yet; POST to setup first")
	}

	var entry privateParamsEntry
	if err := jsonutil.DecodeJSON(out.Value, &entry); err != nil {
		return kpabe.PrivateParams{}, errwrap.Wrapf("json decoding failed: {{err}}", err)
	}

	p := pairing.Context()
	priv := kpabe.PrivateParams{
		Mk: p.NewZr().SetBytes(entry.Mk),
		S:  make(map[int]*pbc.Element, len(entry.S)),
	}
	for attr, raw := range entry.S {
		priv.S[attr] = p.NewZr().SetBytes(raw)
	}

	b.abeCache.SetDefault(paramsCacheKey+"/private", priv)
	return priv, nil
}

// storeParams persists freshly generated parameters and primes the cache
// with them, so the handler that just ran Setup doesn't pay a storage
// round trip to serve its own response.
func (b *backend) storeParams(ctx context.Context, pub kpabe.PublicParams, priv kpabe.PrivateParams) error {
	pubEntry := publicParamsEntry{
		Pk: pub.Pk.Bytes(),
		P:  make(map[int][]byte, len(pub.P)),
	}
	for attr, e := range pub.P {
		pubEntry.P[attr] = e.Bytes()
	}

	privEntry := privateParamsEntry{
		Mk: priv.Mk.Bytes(),
		S:  make(map[int][]byte, len(priv.S)),
	}
	for attr, e := range priv.S {
		privEntry.S[attr] = e.Bytes()
	}

	pubBuf, err := json.Marshal(pubEntry)
	if err != nil {
		return errwrap.Wrapf("json encoding failed: {{err}}", err)
	}
	privBuf, err := json.Marshal(privEntry)
	if err != nil {
		return errwrap.Wrapf("json encoding failed: {{err}}", err)
	}

	if err := b.storage.Put(ctx, &logical.StorageEntry{Key: paramsPublicPath, Value: pubBuf}); err != nil {
		return errwrap.Wrapf("failed to write public parameters: {{err}}", err)
	}
	if err := b.storage.Put(ctx, &logical.StorageEntry{Key: paramsPrivatePath, Value: privBuf}); err != nil {
		return errwrap.Wrapf("failed to write private parameters: {{err}}", err)
	}

	b.abeCache.SetDefault(paramsCacheKey+"/public", pub)
	b.abeCache.SetDefault(paramsCacheKey+"/private", priv)
	return nil
}

// loadDecryptionKey reads back a previously generated key by name.
func (b *backend) loadDecryptionKey(ctx context.Context, name string) (kpabe.DecryptionKey, error) {
	if cached, ok := b.abeCache.Get(KeysPath + "/" + name); ok {
		return cached.(kpabe.DecryptionKey).Clone(), nil
	}

	out, err := b.storage.Get(ctx, KeysPath+"/"+name)
	if err != nil {
		return kpabe.DecryptionKey{}, errwrap.Wrapf("read failed: {{err}}", err)
	}
	if out == nil {
		return kpabe.DecryptionKey{}, fmt.Errorf("no decryption key named %q", name)
	}

	var entry decryptionKeyEntry
	if err := jsonutil.DecodeJSON(out.Value, &entry); err != nil {
		return kpabe.DecryptionKey{}, errwrap.Wrapf("json decoding failed: {{err}}", err)
	}

	accessPolicy, err := policy.Parse(entry.Policy)
	if err != nil {
		return kpabe.DecryptionKey{}, errwrap.Wrapf("stored policy is malformed: {{err}}", err)
	}

	p := pairing.Context()
	d := make(map[int]*pbc.Element, len(entry.D))
	for attr, bts := range entry.D {
		d[attr] = p.NewZr().SetBytes(bts)
	}

	key := kpabe.DecryptionKey{Policy: accessPolicy, D: d}
	b.abeCache.Set(KeysPath+"/"+name, key, 30*time.Second)
	return key.Clone(), nil
}

// storeDecryptionKey persists a generated key under name.
func (b *backend) storeDecryptionKey(ctx context.Context, name string, key kpabe.DecryptionKey, policyStr string) error {
	entry := decryptionKeyEntry{
		Policy: policyStr,
		D:      make(map[int][]byte, len(key.D)),
	}
	for attr, e := range key.D {
		entry.D[attr] = e.Bytes()
	}

	buf, err := json.Marshal(entry)
	if err != nil {
		return errwrap.Wrapf("json encoding failed: {{err}}", err)
	}

	if err := b.storage.Put(ctx, &logical.StorageEntry{Key: KeysPath + "/" + name, Value: buf}); err != nil {
		return errwrap.Wrapf("failed to write decryption key: {{err}}", err)
	}

	b.abeCache.Set(KeysPath+"/"+name, key, 30*time.Second)
	return nil
}
