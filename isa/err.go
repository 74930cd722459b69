package isa

import (
	"errors"

	"github.com/ezrec/smc/translate"
)

var ErrMnemonicInvalid = errors.New(translate.From("mnemonic invalid"))
