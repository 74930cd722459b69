package asm

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Interchange is the document passed between a front end and the back end
// when they run as separate steps.
type Interchange struct {
	Symbols []Label  `yaml:"symbols"`
	Records []Record `yaml:"records"`
}

// WriteIR writes the Pass 1 output as an interchange document.
func WriteIR(w io.Writer, symbols *SymbolTable, records []Record) (err error) {
	doc := &Interchange{
		Symbols: []Label{},
		Records: records,
	}
	if symbols != nil {
		doc.Symbols = symbols.Labels
	}
	if doc.Records == nil {
		doc.Records = []Record{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(doc)
	if err != nil {
		return
	}

	err = enc.Close()
	return
}

// ReadIR reads an interchange document written by WriteIR.
func ReadIR(r io.Reader) (symbols *SymbolTable, records []Record, err error) {
	var doc Interchange

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err = dec.Decode(&doc)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	symbols, err = NewSymbolTable(doc.Symbols...)
	if err != nil {
		return
	}

	for n := 1; n < len(doc.Records); n++ {
		if doc.Records[n].Address <= doc.Records[n-1].Address {
			symbols = nil
			err = fmt.Errorf("%w: address %d after %d", ErrRecordOrder, doc.Records[n].Address, doc.Records[n-1].Address)
			return
		}
	}

	records = doc.Records
	return
}
