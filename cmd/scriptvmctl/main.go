// scriptvmctl evaluates a signature script against a public-key script
// and reports whether the combination verifies. It is a thin
// demonstration harness around the txscript engine, not a wallet or
// node component: it has no transaction context, so every signature
// check the scripts perform fails (txscript.NoopSignatureChecker), as
// do CHECKLOCKTIMEVERIFY and CHECKSEQUENCEVERIFY once activated with
// --cltv or --csv (without those switches they are NOPs). It is useful
// for scripts that exercise stack-shape, arithmetic and hashing opcodes.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/btcscript/scriptvm/txscript"
)

func buildFlags(cfg *commandConfig) txscript.ScriptFlags {
	flags := txscript.ScriptVerifyNone
	add := func(set bool, flag txscript.ScriptFlags) {
		if set {
			flags |= flag
		}
	}
	add(cfg.P2SH, txscript.ScriptVerifyP2SH)
	add(cfg.DERSig, txscript.ScriptVerifyDERSignatures)
	add(cfg.LowS, txscript.ScriptVerifyLowS)
	add(cfg.StrictEnc, txscript.ScriptVerifyStrictEncoding)
	add(cfg.NullDummy, txscript.ScriptVerifyNullDummy)
	add(cfg.SigPushOnly, txscript.ScriptVerifySigPushOnly)
	add(cfg.MinimalData, txscript.ScriptVerifyMinimalData)
	add(cfg.CleanStack, txscript.ScriptVerifyCleanStack)
	add(cfg.CLTV, txscript.ScriptVerifyCheckLockTimeVerify)
	add(cfg.CSV, txscript.ScriptVerifyCheckSequenceVerify)
	return flags
}

func run() error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	if cfg.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}

	sigScript, err := hex.DecodeString(cfg.SigScript)
	if err != nil {
		return errors.Wrap(err, "sigscript is not valid hex")
	}
	pubScript, err := hex.DecodeString(cfg.PubScript)
	if err != nil {
		return errors.Wrap(err, "pubscript is not valid hex")
	}

	flags := buildFlags(cfg)
	err = txscript.VerifyScript(sigScript, pubScript, flags, txscript.NoopSignatureChecker{})
	if err != nil {
		log.WithError(err).Error("script did not verify")
		return err
	}

	fmt.Println("OK")
	return nil
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
