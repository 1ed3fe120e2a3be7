// Copyright (c) 2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txsigner signs individual transaction inputs with a raw private
// key and verifies the result with the script engine.
//
// Supported previous outputs are P2PKH, P2WPKH, P2WPKH nested in P2SH, and
// taproot outputs committing to a BIP-86 key-only tweak.  Every signature
// commits to all outputs: SIGHASH_ALL for ECDSA and SIGHASH_DEFAULT for
// Schnorr.
package txsigner

import (
	"bytes"
	"fmt"

	"github.com/bitlab/txengine/coreerr"
	"github.com/bitlab/txengine/wallet/keys"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// SignInput signs input idx of tx with privKey and returns the signed
// transaction.  The previous output of every input is looked up through
// prevOuts, which must return nil for outputs it does not know.
//
// The signature depends on the class of the previous output:
//   - P2WPKH inputs get the witness {signature, public key} and an empty
//     signature script.
//   - P2SH inputs are treated as nested P2WPKH: the same witness, with a
//     signature script pushing the witness program.  The redeem script is
//     only known by its hash, so a P2SH output wrapping anything other than
//     the key's P2WPKH program is refused with ErrInvalidKeyMaterial, the
//     same as one nesting another key.
//   - P2PKH inputs get the signature script <signature> <public key> and no
//     witness.
//   - Taproot inputs get the witness {signature} from a key path spend.
//     Their signature hash commits to every previous output, so prevOuts
//     must know all of them.
//
// The input is verified before returning.  tx itself is never modified, so
// a failed call leaves the caller's transaction as it was.
func SignInput(tx *wire.MsgTx, idx int, privKey []byte,
	prevOuts txscript.PrevOutputFetcher) (*wire.MsgTx, error) {

	if err := checkIndex(tx, idx); err != nil {
		return nil, err
	}

	key, err := keys.ParsePrivateKey(privKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	prevOut, err := fetchPrevOut(tx, idx, prevOuts)
	if err != nil {
		return nil, err
	}

	signed := tx.Copy()
	txIn := signed.TxIn[idx]
	class := txscript.GetScriptClass(prevOut.PkScript)

	// Taproot signature hashes commit to the amount and script of every
	// input, which cannot be computed with partial information.
	if class == txscript.WitnessV1TaprootTy {
		if err := checkAllPrevOuts(tx, prevOuts); err != nil {
			return nil, err
		}
	}

	fetcher := knownPrevOuts{prevOuts}
	sigHashes := txscript.NewTxSigHashes(signed, fetcher)

	switch class {
	case txscript.WitnessV0PubKeyHashTy:
		err = spendWitnessKeyHash(
			txIn, prevOut, key, signed, sigHashes, idx,
		)

	case txscript.ScriptHashTy:
		err = spendNestedWitnessPubKeyHash(
			txIn, prevOut, key, signed, sigHashes, idx,
		)

	case txscript.PubKeyHashTy:
		err = spendPubKeyHash(txIn, prevOut, key, signed, idx)

	case txscript.WitnessV1TaprootTy:
		err = spendTaprootKey(txIn, prevOut, key, signed, sigHashes, idx)

	default:
		str := fmt.Sprintf("signing %v outputs is not supported", class)
		return nil, coreerr.New(coreerr.ErrUnsupportedInputType, str, nil)
	}
	if err != nil {
		return nil, err
	}

	err = verifyInput(signed, idx, prevOut, fetcher, sigHashes)
	if err != nil {
		return nil, err
	}

	log.Debugf("Signed input %d (%v) of transaction %v", idx, class,
		signed.TxHash())

	return signed, nil
}

// VerifyInput executes the unlocking data of input idx against the script of
// the output it spends and returns ErrSignatureVerification if it does not
// authorize the spend under standard verification flags.
func VerifyInput(tx *wire.MsgTx, idx int,
	prevOuts txscript.PrevOutputFetcher) error {

	if err := checkIndex(tx, idx); err != nil {
		return err
	}

	prevOut, err := fetchPrevOut(tx, idx, prevOuts)
	if err != nil {
		return err
	}

	fetcher := knownPrevOuts{prevOuts}
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	return verifyInput(tx, idx, prevOut, fetcher, sigHashes)
}

func verifyInput(tx *wire.MsgTx, idx int, prevOut *wire.TxOut,
	fetcher txscript.PrevOutputFetcher,
	sigHashes *txscript.TxSigHashes) error {

	vm, err := txscript.NewEngine(
		prevOut.PkScript, tx, idx, txscript.StandardVerifyFlags, nil,
		sigHashes, prevOut.Value, fetcher,
	)
	if err == nil {
		err = vm.Execute()
	}
	if err != nil {
		str := fmt.Sprintf("input %d of transaction %v does not verify",
			idx, tx.TxHash())
		return coreerr.New(coreerr.ErrSignatureVerification, str, err)
	}

	return nil
}

// knownPrevOuts serves an empty output for outpoints its fetcher does not
// know, so signature hash midstates can be computed for transactions whose
// other inputs are foreign.  Version 0 and legacy signature hashes never read
// them.
type knownPrevOuts struct {
	txscript.PrevOutputFetcher
}

// FetchPrevOutput returns the known output for op or an empty output.
func (k knownPrevOuts) FetchPrevOutput(op wire.OutPoint) *wire.TxOut {
	if txOut := k.PrevOutputFetcher.FetchPrevOutput(op); txOut != nil {
		return txOut
	}
	return &wire.TxOut{}
}

func checkIndex(tx *wire.MsgTx, idx int) error {
	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("input index %d out of range for "+
			"transaction with %d inputs", idx, len(tx.TxIn))
		return coreerr.New(coreerr.ErrIndexOutOfRange, str, nil)
	}
	return nil
}

func fetchPrevOut(tx *wire.MsgTx, idx int,
	prevOuts txscript.PrevOutputFetcher) (*wire.TxOut, error) {

	outPoint := tx.TxIn[idx].PreviousOutPoint
	prevOut := prevOuts.FetchPrevOutput(outPoint)
	if prevOut == nil {
		str := fmt.Sprintf("previous output %v of input %d is unknown",
			outPoint, idx)
		return nil, coreerr.New(coreerr.ErrUnsupportedInputType, str, nil)
	}
	return prevOut, nil
}

func checkAllPrevOuts(tx *wire.MsgTx,
	prevOuts txscript.PrevOutputFetcher) error {

	for i := range tx.TxIn {
		if _, err := fetchPrevOut(tx, i, prevOuts); err != nil {
			return fmt.Errorf("taproot signature hash needs every "+
				"previous output: %w", err)
		}
	}
	return nil
}

// keyMismatch returns the error reported when key does not control the
// output being spent.
func keyMismatch(class txscript.ScriptClass, idx int) error {
	str := fmt.Sprintf("private key does not control the %v output spent "+
		"by input %d", class, idx)
	return coreerr.New(coreerr.ErrInvalidKeyMaterial, str, nil)
}

// witnessProgram returns the P2WPKH program of the compressed public key.
func witnessProgram(pubKey *btcec.PublicKey) ([]byte, []byte, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	program, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(pubKeyHash).
		Script()
	if err != nil {
		return nil, nil, err
	}
	return pubKeyHash, program, nil
}

// spendWitnessKeyHash generates, and sets a valid witness for spending a
// P2WPKH output.  The amount of prevOut is part of the BIP-143 signature
// hash, so it must be the real value of the output.
func spendWitnessKeyHash(txIn *wire.TxIn, prevOut *wire.TxOut,
	key *btcec.PrivateKey, tx *wire.MsgTx,
	sigHashes *txscript.TxSigHashes, idx int) error {

	pubKeyHash, program, err := witnessProgram(key.PubKey())
	if err != nil {
		return err
	}
	if !bytes.Equal(prevOut.PkScript[2:], pubKeyHash) {
		return keyMismatch(txscript.WitnessV0PubKeyHashTy, idx)
	}

	witness, err := txscript.WitnessSignature(
		tx, sigHashes, idx, prevOut.Value, program,
		txscript.SigHashAll, key, true,
	)
	if err != nil {
		return err
	}

	txIn.SignatureScript = nil
	txIn.Witness = witness

	return nil
}

// spendNestedWitnessPubKeyHash generates both a sigScript, and valid witness
// for spending a P2WPKH program nested in the P2SH output prevOut.  The
// sigScript is a single push of the program.
func spendNestedWitnessPubKeyHash(txIn *wire.TxIn, prevOut *wire.TxOut,
	key *btcec.PrivateKey, tx *wire.MsgTx,
	sigHashes *txscript.TxSigHashes, idx int) error {

	_, program, err := witnessProgram(key.PubKey())
	if err != nil {
		return err
	}

	// The P2SH script is OP_HASH160 <hash> OP_EQUAL.
	if !bytes.Equal(prevOut.PkScript[2:22], btcutil.Hash160(program)) {
		str := fmt.Sprintf("P2SH output spent by input %d is either "+
			"not nested P2WPKH or not for this key", idx)
		return coreerr.New(coreerr.ErrInvalidKeyMaterial, str, nil)
	}

	sigScript, err := txscript.NewScriptBuilder().AddData(program).Script()
	if err != nil {
		return err
	}

	witness, err := txscript.WitnessSignature(
		tx, sigHashes, idx, prevOut.Value, program,
		txscript.SigHashAll, key, true,
	)
	if err != nil {
		return err
	}

	txIn.SignatureScript = sigScript
	txIn.Witness = witness

	return nil
}

// spendPubKeyHash sets the signature script spending a P2PKH output.  A
// legacy input must not carry a witness.
func spendPubKeyHash(txIn *wire.TxIn, prevOut *wire.TxOut,
	key *btcec.PrivateKey, tx *wire.MsgTx, idx int) error {

	// The P2PKH script is OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY
	// OP_CHECKSIG.
	pubKeyHash := btcutil.Hash160(key.PubKey().SerializeCompressed())
	if !bytes.Equal(prevOut.PkScript[3:23], pubKeyHash) {
		return keyMismatch(txscript.PubKeyHashTy, idx)
	}

	sigScript, err := txscript.SignatureScript(
		tx, idx, prevOut.PkScript, txscript.SigHashAll, key, true,
	)
	if err != nil {
		return err
	}

	txIn.SignatureScript = sigScript
	txIn.Witness = nil

	return nil
}

// spendTaprootKey generates, and sets a valid witness for spending a taproot
// output by key path.  The output key must be the BIP-86 tweak of the
// public key of key, i.e. commit to no script tree.
func spendTaprootKey(txIn *wire.TxIn, prevOut *wire.TxOut,
	key *btcec.PrivateKey, tx *wire.MsgTx,
	sigHashes *txscript.TxSigHashes, idx int) error {

	outputKey := txscript.ComputeTaprootKeyNoScript(key.PubKey())
	xOnly := schnorr.SerializePubKey(outputKey)
	if !bytes.Equal(prevOut.PkScript[2:], xOnly) {
		return keyMismatch(txscript.WitnessV1TaprootTy, idx)
	}

	witness, err := txscript.TaprootWitnessSignature(
		tx, sigHashes, idx, prevOut.Value, prevOut.PkScript,
		txscript.SigHashDefault, key,
	)
	if err != nil {
		return err
	}

	txIn.SignatureScript = nil
	txIn.Witness = witness

	return nil
}
