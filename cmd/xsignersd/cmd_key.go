package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/app"
	"github.com/iov-one/xsigners/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and print its address.

The key is stored in the keys directory of XSIGNERS_HOME. This command fails
if a key with the same name already exists. When a derivation path is given
the key is derived from the seed instead of being random.
`)
		fl.PrintDefaults()
	}
	var (
		nameFl = fl.String("name", "", "Name of the key.")
		seedFl = flHex(fl, "seed", "", "Hex encoded seed the key is derived from. Requires -path.")
		pathFl = fl.String("path", "", "SLIP-0010 derivation path, for example \"m/44'/234'/0'\".")
	)
	fl.Parse(args)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := keyPath(conf, *nameFl)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Never overwrite a key. The user must delete it manually.
		return errors.Wrapf(errors.ErrDuplicate, "private key file %q already exists, delete this file and try again", path)
	}
	if err := os.MkdirAll(conf.keysDir(), 0700); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	priv, err := newKey(*seedFl, *pathFl)
	if err != nil {
		return err
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, keyAddress(priv))
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with a private key.
`)
		fl.PrintDefaults()
	}
	var (
		nameFl = fl.String("name", "", "Name of the key.")
	)
	fl.Parse(args)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	addr, err := loadKey(conf, *nameFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, addr)
	return err
}

// newKey returns a random key, or the key derived from seed if a path is
// given.
func newKey(seed []byte, path string) (ed25519.PrivateKey, error) {
	if path == "" {
		if len(seed) != 0 {
			return nil, errors.Wrap(errors.ErrInput, "seed requires a derivation path")
		}
		_, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrState, "generate ed25519 key: %s", err)
		}
		return priv, nil
	}
	if len(seed) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "derivation path requires a seed")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive key using path %q: %s", path, err)
	}
	return ed25519.NewKeyFromSeed(k.Key), nil
}

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`).MatchString

func keyPath(conf config, name string) (string, error) {
	if !isKeyName(name) {
		return "", errors.Wrapf(errors.ErrInput, "key name %q", name)
	}
	return filepath.Join(conf.keysDir(), name+".key"), nil
}

// loadKey returns the address of the named key.
func loadKey(conf config, name string) (xsigners.Address, error) {
	path, err := keyPath(conf, name)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key length %d", len(raw))
	}
	return keyAddress(ed25519.PrivateKey(raw)), nil
}

func keyAddress(priv ed25519.PrivateKey) xsigners.Address {
	return app.KeyAddress(priv.Public().(ed25519.PublicKey))
}
