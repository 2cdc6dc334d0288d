// Command kpabe-demo reproduces the walkthrough once used to exercise this
// scheme by hand: set up over a small attribute universe, generate a key
// for (1 OR 2) AND (3 OR 4), and encrypt/decrypt a message against a
// satisfying and then an unsatisfying attribute set.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/census-labs/kpabe-core/kpabe"
	"github.com/census-labs/kpabe-core/policy"
)

func main() {
	app := cli.NewApp()
	app.Name = "kpabe-demo"
	app.Usage = "exercise the KP-ABE scheme end to end"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "policy",
			Value: "(1 OR 2) AND (3 OR 4)",
			Usage: "access policy to generate a decryption key for",
		},
		cli.StringFlag{
			Name:  "attributes",
			Value: "1,2,3,4,5",
			Usage: "comma-separated attribute universe to run Setup over",
		},
		cli.StringFlag{
			Name:  "encrypt-attrs",
			Value: "1,3",
			Usage: "comma-separated attribute set to encrypt the message under",
		},
		cli.StringFlag{
			Name:  "message",
			Value: "the quick brown fox jumps over the lazy dog",
			Usage: "plaintext message to encrypt",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "kpabe-demo:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	universe, err := parseInts(c.String("attributes"))
	if err != nil {
		return fmt.Errorf("--attributes: %w", err)
	}

	accessPolicy, err := policy.Parse(c.String("policy"))
	if err != nil {
		return fmt.Errorf("--policy: %w", err)
	}

	fmt.Printf("setting up over attribute universe %v\n", universe)
	pub, priv := kpabe.Setup(universe)

	fmt.Printf("generating a decryption key for %q\n", c.String("policy"))
	key, err := kpabe.KeyGen(priv, accessPolicy)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}

	encryptAttrs, err := parseInts(c.String("encrypt-attrs"))
	if err != nil {
		return fmt.Errorf("--encrypt-attrs: %w", err)
	}

	message := []byte(c.String("message"))
	fmt.Printf("encrypting %q under attribute set %v\n", message, encryptAttrs)
	cw, ct, err := kpabe.Encrypt(pub, encryptAttrs, message)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	plaintext, err := kpabe.Decrypt(key, cw, encryptAttrs, ct)
	if err != nil {
		return fmt.Errorf("decrypt with a satisfying attribute set unexpectedly failed: %w", err)
	}
	if string(plaintext) != string(message) {
		return fmt.Errorf("decrypted plaintext %q does not match original message", plaintext)
	}
	fmt.Printf("decrypted: %q (matches)\n", plaintext)

	// Now show the failure path: decrypting against a lone leaf that
	// cannot alone satisfy an AND of two ORs.
	shortAttrs := encryptAttrs[:1]
	fmt.Printf("attempting decryption with attribute set %v (expected to fail)\n", shortAttrs)
	shortCw, shortCt, err := kpabe.Encrypt(pub, shortAttrs, message)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	if _, err := kpabe.Decrypt(key, shortCw, shortAttrs, shortCt); err != nil {
		fmt.Printf("decryption correctly failed: %v\n", err)
	} else {
		return fmt.Errorf("decryption with an unsatisfying attribute set unexpectedly succeeded")
	}

	return nil
}

func parseInts(csv string) ([]int, error) {
	fields := strings.Split(csv, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer attribute", f)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no attributes given")
	}
	return out, nil
}
