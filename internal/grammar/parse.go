package grammar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const hclExt = ".hcl"

// ParseFile reads a grammar description from path. Files ending in `.hcl` are decoded as HCL,
// everything else as JSON.
func ParseFile(path string) (*Description, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err)
	}

	if strings.EqualFold(filepath.Ext(path), hclExt) {
		return ParseHCL(content, path)
	}

	return ParseJSON(content)
}

// ParseJSON validates data against the grammar schema and decodes it.
func ParseJSON(data []byte) (*Description, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}

	desc := new(Description)
	if err := json.Unmarshal(data, desc); err != nil {
		return nil, errors.New(err)
	}

	return desc, nil
}

// ParseHCL decodes an HCL grammar description, e.g.
//
//	var_symbols  = ["S"]
//	term_symbols = ["a", "b"]
//	start_symbol = "S"
//
//	rule {
//	  from = "S"
//	  to   = "aSb"
//	}
func ParseHCL(data []byte, filename string) (desc *Description, err error) {
	// The HCL parser panics on some kinds of malformed input, so convert those panics to errors
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.New(PanicWhileParsingError{RecoveredValue: recovered, Path: filename})
		}
	}()

	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.New(diags)
	}

	desc = new(Description)
	if diags := gohcl.DecodeBody(file.Body, nil, desc); diags.HasErrors() {
		return nil, errors.New(diags)
	}

	return desc, nil
}
