package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type commandConfig struct {
	SigScript  string `short:"s" long:"sigscript" description:"Signature script, hex encoded" required:"true"`
	PubScript  string `short:"p" long:"pubscript" description:"Public key script, hex encoded" required:"true"`
	P2SH       bool   `long:"p2sh" description:"Enable BIP 16 pay-to-script-hash evaluation"`
	DERSig     bool   `long:"dersig" description:"Require strict DER signature encoding"`
	LowS       bool   `long:"lows" description:"Require low-S signatures"`
	StrictEnc  bool   `long:"strictenc" description:"Enforce defined sighash types and canonical pubkeys"`
	NullDummy  bool   `long:"nulldummy" description:"Require an empty CHECKMULTISIG dummy element"`
	SigPushOnly bool  `long:"sigpushonly" description:"Require the signature script to be push-only"`
	MinimalData bool  `long:"minimaldata" description:"Require minimal push and Num encoding"`
	CleanStack bool   `long:"cleanstack" description:"Require exactly one element left on the stack"`
	CLTV       bool   `long:"cltv" description:"Activate OP_CHECKLOCKTIMEVERIFY"`
	CSV        bool   `long:"csv" description:"Activate OP_CHECKSEQUENCEVERIFY"`
	Trace      bool   `long:"trace" description:"Log each step's disassembly and stack state at trace level"`
}

func parseConfig() (*commandConfig, error) {
	cfg := &commandConfig{}
	parser := flags.NewParser(cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse arguments")
	}
	return cfg, nil
}
