package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"golang.org/x/crypto/ed25519"
)

// KeyAddress returns the address of an account controlled by given key.
func KeyAddress(pub ed25519.PublicKey) xsigners.Address {
	return xsigners.NewCondition("sigs", "ed25519", pub).Address()
}

// NewSignedTx returns a transaction executing call, signed by priv.
func NewSignedTx(priv ed25519.PrivateKey, chainID string, nonce uint64, call xsigners.Call) (*SignedTx, error) {
	tx := &SignedTx{
		PubKey:       priv.Public().(ed25519.PublicKey),
		Nonce:        nonce,
		Target:       call.Target,
		Selector:     call.Selector.Bytes(),
		Input:        call.Input,
		Value:        call.Value,
		GasLimit:     call.GasLimit,
		AllowReentry: call.AllowReentry,
	}
	msg, err := tx.signBytes(chainID)
	if err != nil {
		return nil, err
	}
	tx.Signature = ed25519.Sign(priv, msg)
	return tx, nil
}

// Validate checks the format of the transaction. It does not verify the
// signature.
func (m *SignedTx) Validate() error {
	var errs error
	if len(m.PubKey) != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "PubKey", errors.ErrInput)
	}
	if len(m.Signature) != ed25519.SignatureSize {
		errs = errors.AppendField(errs, "Signature", errors.ErrInput)
	}
	if _, err := xsigners.SelectorFromBytes(m.Selector); err != nil {
		errs = errors.AppendField(errs, "Selector", err)
	}
	errs = errors.AppendField(errs, "Target", xsigners.Address(m.Target).Validate())
	return errs
}

// Caller returns the address of the signer.
func (m *SignedTx) Caller() xsigners.Address {
	return KeyAddress(m.PubKey)
}

// Call returns the call this transaction executes.
func (m *SignedTx) Call() xsigners.Call {
	sel, _ := xsigners.SelectorFromBytes(m.Selector)
	return xsigners.Call{
		Target:       m.Target,
		Selector:     sel,
		Input:        m.Input,
		Value:        m.Value,
		GasLimit:     m.GasLimit,
		AllowReentry: m.AllowReentry,
	}
}

// Verify returns ErrUnauthorized unless the signature was made by the
// transaction key for given chain.
func (m *SignedTx) Verify(chainID string) error {
	msg, err := m.signBytes(chainID)
	if err != nil {
		return err
	}
	if !ed25519.Verify(m.PubKey, msg, m.Signature) {
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	return nil
}

func (m *SignedTx) signBytes(chainID string) ([]byte, error) {
	unsigned := *m
	unsigned.Signature = nil
	raw, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return append([]byte(chainID), raw...), nil
}

// DecodeTx loads and validates a transaction.
func DecodeTx(raw []byte) (*SignedTx, error) {
	var tx SignedTx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode transaction: %s", err)
	}
	if err := tx.Validate(); err != nil {
		return nil, errors.Wrap(err, "transaction")
	}
	return &tx, nil
}
