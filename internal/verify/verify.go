package verify

import (
	"fmt"
	"sort"
	"strings"

	"mediapress/internal/faults"
	"mediapress/internal/fileutil"
	"mediapress/internal/scan"
)

// Options controls tree verification.
type Options struct {
	// Suffix is the tag appended to compressed output names.
	Suffix string
	// MaxCompression is the highest believable per-file compression rate
	// (1 - output/input). Lossy codecs on real media never legitimately
	// exceed it; going past it means an output got truncated.
	MaxCompression float64
}

// Pair is one verified input/output file pairing.
type Pair struct {
	InputRel   string
	OutputRel  string
	Compressed bool
	// Rate is 1 - output/input; negative when the output grew (only possible
	// for verbatim copies with filesystem-level size differences, i.e. never).
	Rate float64
}

// Result summarizes a verified run.
type Result struct {
	Pairs      []Pair
	Compressed int
	Copied     int
}

// Trees confirms that outputRoot holds exactly one output per input file.
func Trees(inputRoot, outputRoot string, opts Options) (*Result, error) {
	inputTree, err := scan.Walk(inputRoot)
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "verify", "walk input", "", err)
	}
	outputTree, err := scan.Walk(outputRoot)
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "verify", "walk output", "", err)
	}
	return trees(inputTree, outputTree, opts)
}

func trees(inputTree, outputTree *scan.Tree, opts Options) (*Result, error) {
	if len(inputTree.Files) != len(outputTree.Files) {
		return nil, faults.Wrap(faults.ErrValidation, "verify", "count outputs",
			fmt.Sprintf("%d inputs but %d outputs", len(inputTree.Files), len(outputTree.Files)), nil)
	}

	inputs := append([]scan.File(nil), inputTree.Files...)
	outputs := append([]scan.File(nil), outputTree.Files...)
	sort.Slice(inputs, func(i, j int) bool {
		return canonicalName(inputs[i].Rel, "") < canonicalName(inputs[j].Rel, "")
	})
	sort.Slice(outputs, func(i, j int) bool {
		return canonicalName(outputs[i].Rel, opts.Suffix) < canonicalName(outputs[j].Rel, opts.Suffix)
	})

	result := &Result{Pairs: make([]Pair, 0, len(inputs))}
	for idx := range inputs {
		input, output := inputs[idx], outputs[idx]
		inputName := canonicalName(input.Rel, "")
		outputName := canonicalName(output.Rel, opts.Suffix)
		if inputName != outputName {
			return nil, faults.Wrap(faults.ErrValidation, "verify", "match outputs",
				fmt.Sprintf("file #%d: %q has no matching output (closest: %q)", idx, inputName, outputName), nil)
		}

		compressed := isCompressedName(output.Rel, opts.Suffix)
		var rate float64
		if input.Size > 0 {
			rate = 1 - float64(output.Size)/float64(input.Size)
		}
		if rate > opts.MaxCompression {
			return nil, faults.Wrap(faults.ErrValidation, "verify", "check compression rate",
				fmt.Sprintf("%q shrank by %.1f%%, past the believable bound of %.1f%%",
					input.Rel, 100*rate, 100*opts.MaxCompression), nil)
		}

		result.Pairs = append(result.Pairs, Pair{
			InputRel:   input.Rel,
			OutputRel:  output.Rel,
			Compressed: compressed,
			Rate:       rate,
		})
		if compressed {
			result.Compressed++
		} else {
			result.Copied++
		}
	}
	return result, nil
}

// canonicalName reduces a relative path to the identity both trees share:
// extension dropped and, for outputs, the compression suffix stripped.
func canonicalName(rel, suffix string) string {
	name := fileutil.StripExt(rel)
	if suffix != "" {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

func isCompressedName(rel, suffix string) bool {
	if suffix == "" {
		return false
	}
	return strings.HasSuffix(fileutil.StripExt(rel), suffix)
}

// TempClean confirms the temp tree holds no leftover files and reports them
// otherwise. Leftovers mean a codec wrote something the dispatcher never
// adjudicated.
func TempClean(tempRoot string) error {
	tree, err := scan.Walk(tempRoot)
	if err != nil {
		return faults.Wrap(faults.ErrValidation, "verify", "walk temp", "", err)
	}
	if len(tree.Files) > 0 {
		names := make([]string, 0, len(tree.Files))
		for _, f := range tree.Files {
			names = append(names, f.Rel)
		}
		return faults.Wrap(faults.ErrValidation, "verify", "check temp",
			fmt.Sprintf("temp directory should be empty but holds: %s", strings.Join(names, ", ")), nil)
	}
	return nil
}
